//go:build windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// configureProcAttr creates the child in a new process group.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// terminateGroup asks the child to exit. Windows has no SIGTERM; Kill is
// the only portable option.
func (h *Handle) terminateGroup() {
	_ = h.cmd.Process.Kill()
}

// killGroup forcibly ends the child.
func (h *Handle) killGroup() {
	_ = h.cmd.Process.Kill()
}
