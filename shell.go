package lsh

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"lsh/shellterm"

	"golang.org/x/sys/unix"
)

// jobControlSignals are the signals a job-control shell must ignore in
// itself and that every forked child must reset to default before exec.
// Go's os/signal never installs a literal SIG_IGN disposition — it keeps
// the runtime's handler installed and drops the signal in userspace — so
// POSIX's "exec resets handled signals to SIG_DFL" rule already gives
// every exec'd child default disposition for these with no extra step on
// the child side. See DESIGN.md for this decision.
var jobControlSignals = []os.Signal{
	syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTSTP,
	syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGCHLD,
}

// Shell owns the controlling terminal, the shell's own pid/pgid, the
// saved terminal attributes, and the job registry — all bundled into one
// value passed explicitly to every operation instead of living behind
// package-level globals.
type Shell struct {
	Terminal int
	Pid      int
	Pgid     int

	Registry *JobRegistry
	Session  *Session

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	savedState *shellterm.State
}

// New performs the shell's startup signal discipline: claim the
// terminal's foreground group, ignore the job-control signals, place the
// shell in its own process group, and save terminal attributes. It fails
// if fd 0 is not a controlling TTY; non-interactive execution is
// unsupported.
func New() (*Shell, error) {
	terminal := int(os.Stdin.Fd())
	if !shellterm.IsTerminal(terminal) {
		return nil, fmt.Errorf("lsh: not running in interactive mode")
	}

	pgid := shellterm.Getpgrp()
	for {
		tcpgid, err := shellterm.Tcgetpgrp(terminal)
		if err != nil {
			return nil, fmt.Errorf("tcgetpgrp: %w", err)
		}
		if tcpgid == pgid {
			break
		}
		_ = shellterm.Kill(-pgid, unix.SIGTTIN)
	}

	signal.Ignore(jobControlSignals...)

	pid := os.Getpid()
	if err := shellterm.Setpgid(pid, pid); err != nil {
		return nil, fmt.Errorf("setpgid: %w", err)
	}
	pgid = pid

	if err := shellterm.Tcsetpgrp(terminal, pgid); err != nil {
		return nil, fmt.Errorf("tcsetpgrp: %w", err)
	}

	state, err := shellterm.Capture(terminal)
	if err != nil {
		return nil, fmt.Errorf("capture terminal attributes: %w", err)
	}

	return &Shell{
		Terminal:   terminal,
		Pid:        pid,
		Pgid:       pgid,
		Registry:   NewJobRegistry(),
		Session:    NewSession(),
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		savedState: state,
	}, nil
}

// claimTerminal hands terminal ownership to job's process group. Called
// as soon as a foreground job's pgid is known.
func (sh *Shell) claimTerminal(job *Job) error {
	return shellterm.Tcsetpgrp(sh.Terminal, job.Pgid)
}
