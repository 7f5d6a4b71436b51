// Package shellterm wraps the POSIX primitives a job-control shell needs
// (tcsetpgrp, tcgetpgrp, child-state polling, termios save/restore with a
// drain) that have no standard-library equivalent. golang.org/x/sys/unix
// supplies the raw ioctls and wait call; the terminal-interactivity check
// reuses golang.org/x/term for termios-level work.
package shellterm

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// IsTerminal reports whether fd is a controlling TTY. Non-interactive
// execution is unsupported; callers use this at startup to fail fast.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Getpgrp returns the calling process's own process group id.
func Getpgrp() int {
	return unix.Getpgrp()
}

// Tcgetpgrp returns the process group currently owning the terminal's
// foreground, via the TIOCGPGRP ioctl.
func Tcgetpgrp(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

// Tcsetpgrp assigns the terminal's foreground process group, via the
// TIOCSPGRP ioctl. This is how the terminal is handed to a job's process
// group or reclaimed by the shell.
func Tcsetpgrp(fd int, pgid int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}

// Setpgid assigns pid's process group, matching POSIX setpgid(2). Both
// the parent and the child race to call this for a freshly forked
// process; whichever runs first wins, so ESRCH/EACCES/EPERM from losing
// that race are not errors.
func Setpgid(pid, pgid int) error {
	err := unix.Setpgid(pid, pgid)
	if err == unix.ESRCH || err == unix.EACCES || err == unix.EPERM {
		return nil
	}
	return err
}

// Kill sends a signal to every process in the group identified by a
// negative pgid, or to a single process for a positive pid — the usual
// POSIX kill(2) convention used to deliver SIGCONT to a job's pgid.
func Kill(pid int, sig unix.Signal) error {
	return unix.Kill(pid, sig)
}

// Termios is re-exported so callers outside this package never need to
// import golang.org/x/sys/unix directly for the terminal-attributes type.
type Termios = unix.Termios

// GetTermios reads the current terminal attributes (tcgetattr).
func GetTermios(fd int) (*Termios, error) {
	return unix.IoctlGetTermios(fd, unix.TCGETS)
}

// SetTermiosDrain installs terminal attributes after waiting for pending
// output to drain (tcsetattr(..., TCSADRAIN, ...)), the safe way to
// restore a resumed job's modes or the shell's own modes.
func SetTermiosDrain(fd int, t *Termios) error {
	return unix.IoctlSetTermios(fd, unix.TCSETSW, t)
}

// State bundles the terminal attributes a Job or Shell needs to restore
// later.
type State struct {
	termios Termios
}

// Capture snapshots fd's current terminal attributes.
func Capture(fd int) (*State, error) {
	t, err := GetTermios(fd)
	if err != nil {
		return nil, err
	}
	return &State{termios: *t}, nil
}

// Restore re-applies a previously captured State, draining first.
func Restore(fd int, st *State) error {
	if st == nil {
		return nil
	}
	t := st.termios
	return SetTermiosDrain(fd, &t)
}
