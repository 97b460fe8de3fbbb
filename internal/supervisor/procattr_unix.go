//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// configureProcAttr puts the child in its own process group so it can be
// signaled as a group.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup sends SIGTERM to the child's process group.
func (h *Handle) terminateGroup() {
	h.signalGroup(syscall.SIGTERM)
}

// killGroup sends SIGKILL to the child's process group.
func (h *Handle) killGroup() {
	h.signalGroup(syscall.SIGKILL)
}

func (h *Handle) signalGroup(sig syscall.Signal) {
	pid := h.cmd.Process.Pid
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		// Process already gone
		return
	}
	_ = syscall.Kill(-pgid, sig)
}
