package shellterm

import "golang.org/x/sys/unix"

// WaitEvent reports one child-state transition observed via wait4(2),
// classified through unix.WaitStatus's Exited/Signaled/Stopped/Continued
// predicates, which are a portable substitute for raw CLD_* codes.
type WaitEvent struct {
	Pid        int
	Exited     bool
	ExitStatus int
	Signaled   bool
	Stopped    bool
	Continued  bool
}

// Poll performs one wait4(-1, ...) call. When block is false, WNOHANG is
// set so the call returns immediately if nothing has changed; when true,
// the call blocks until a child changes state. ok is false when there is
// nothing to report (non-blocking call found no pending event). err is
// unix.ECHILD when the shell has no children left to wait for, which is
// not an error condition for the caller.
func Poll(block bool) (ev WaitEvent, ok bool, err error) {
	options := unix.WUNTRACED | unix.WCONTINUED
	if !block {
		options |= unix.WNOHANG
	}

	var status unix.WaitStatus
	pid, err := unix.Wait4(-1, &status, options, nil)
	if err != nil {
		return WaitEvent{}, false, err
	}
	if pid <= 0 {
		return WaitEvent{}, false, nil
	}

	ev = WaitEvent{Pid: pid}
	switch {
	case status.Exited():
		ev.Exited = true
		ev.ExitStatus = status.ExitStatus()
	case status.Signaled():
		ev.Signaled = true
	case status.Stopped():
		ev.Stopped = true
	case status.Continued():
		ev.Continued = true
	default:
		return WaitEvent{}, false, nil
	}
	return ev, true, nil
}

// ECHILD is re-exported for callers comparing Poll's error without
// importing golang.org/x/sys/unix themselves.
const ECHILD = unix.ECHILD
