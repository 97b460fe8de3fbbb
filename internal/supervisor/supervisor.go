// Package supervisor manages the lifecycle of a monitored child command:
// spawn with stdin/stdout/stderr pipes, non-blocking output drains, liveness
// checks, and a finalize step that reaps the process exactly once.
package supervisor

import (
	"bufio"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/glueful/memwatch/internal/errors"
)

// lineBufferSize is the channel capacity for buffered output lines per
// stream. When full, the reader goroutine blocks, which propagates
// backpressure to the child through the OS pipe.
const lineBufferSize = 64

// maxLineBytes caps a single scanned output line.
const maxLineBytes = 1024 * 1024

// Handle is an exclusive reference to a spawned child process. It owns the
// three pipe endpoints and the exit-status slot. A Handle is not safe for
// concurrent use; the monitoring loop is its only caller.
type Handle struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	stdoutCh chan string
	stderrCh chan string

	readers sync.WaitGroup

	// done closes after both pipes hit EOF and the process has been waited
	// on. exitCode is written before done closes.
	done     chan struct{}
	exitCode int

	finalized bool
}

// Start launches argv with three pipes attached and its own process group.
// Returns a SPAWN-coded error if the OS cannot create the process.
func Start(argv []string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrSpawn,
			"No command given to supervise",
			"Pass the command and its arguments after the flags.")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	configureProcAttr(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpawn,
			"Couldn't create stdin pipe", "")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpawn,
			"Couldn't create stdout pipe", "")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpawn,
			"Couldn't create stderr pipe", "")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpawn,
			"Couldn't start command: "+argv[0],
			"Make sure the command exists and is executable.")
	}

	h := &Handle{
		cmd:      cmd,
		stdin:    stdin,
		stdoutCh: make(chan string, lineBufferSize),
		stderrCh: make(chan string, lineBufferSize),
		done:     make(chan struct{}),
	}

	h.readers.Add(2)
	go h.pump(stdout, h.stdoutCh)
	go h.pump(stderr, h.stderrCh)

	// Reap in the background once both streams hit EOF. Waiting after the
	// readers finish avoids os/exec closing the pipes under them.
	go func() {
		h.readers.Wait()
		h.exitCode = exitCodeFrom(cmd.Wait())
		close(h.done)
	}()

	return h, nil
}

// pump scans r line by line into ch, closing ch at EOF.
func (h *Handle) pump(r io.Reader, ch chan<- string) {
	defer h.readers.Done()
	defer close(ch)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		ch <- scanner.Text()
	}
}

// PID returns the OS process id of the child.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Alive reports whether the child is still running. Non-blocking.
// Must not be called after Finalize.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Drain returns whatever output lines are currently buffered on each
// stream, possibly none, without blocking. Must not be called after
// Finalize.
func (h *Handle) Drain() (stdout, stderr []string) {
	for {
		select {
		case line, ok := <-h.stdoutCh:
			if !ok {
				return stdout, append(stderr, h.drainChannel(h.stderrCh)...)
			}
			stdout = append(stdout, line)
		case line, ok := <-h.stderrCh:
			if !ok {
				return append(stdout, h.drainChannel(h.stdoutCh)...), stderr
			}
			stderr = append(stderr, line)
		default:
			return stdout, stderr
		}
	}
}

// drainChannel pulls everything immediately available from a possibly
// closed channel.
func (h *Handle) drainChannel(ch chan string) []string {
	var lines []string
	for {
		select {
		case line, ok := <-ch:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

// Finalize drains both streams to end-of-stream, closes the pipes, and
// retrieves the exit status. It must be called exactly once per handle; a
// second call returns an error.
//
// If the child is still running (duration expiry or interrupt), it is sent
// SIGTERM via its process group, escalating to SIGKILL after grace. The
// child's exit status is still collected so the reap happens exactly once.
func (h *Handle) Finalize(grace time.Duration) (stdout, stderr []string, exitCode int, err error) {
	if h.finalized {
		return nil, nil, 0, errors.New(errors.ErrSpawn,
			"Process handle already finalized",
			"Finalize must be called exactly once per spawned command.")
	}
	h.finalized = true

	if h.Alive() {
		h.terminateGroup()
	}

	if grace <= 0 {
		grace = 5 * time.Second
	}
	killTimer := time.NewTimer(grace)
	defer killTimer.Stop()

	outCh, errCh := h.stdoutCh, h.stderrCh
	for {
		select {
		case line, ok := <-outCh:
			if !ok {
				outCh = nil
				continue
			}
			stdout = append(stdout, line)
		case line, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			stderr = append(stderr, line)
		case <-killTimer.C:
			h.killGroup()
		case <-h.done:
			stdout = append(stdout, h.drainChannel(h.stdoutCh)...)
			stderr = append(stderr, h.drainChannel(h.stderrCh)...)
			_ = h.stdin.Close()
			return stdout, stderr, h.exitCode, nil
		}
	}
}

// exitCodeFrom extracts an exit code from cmd.Wait's result.
// A signal death reports as -1, matching (*os.ProcessState).ExitCode.
func exitCodeFrom(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
