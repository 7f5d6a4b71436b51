package lsh

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"

	"lsh/parser"
	"lsh/shellterm"

	"golang.org/x/sys/unix"
)

// Launch turns a parsed Command into a running Job: it wires pipes and
// redirections across the pipeline, forks or runs each process in turn,
// and then hands the job to the foreground or background as requested.
func (sh *Shell) Launch(cmd *parser.Command, line string) *Job {
	job := sh.Registry.Create()
	job.Command = line
	if cmd.Foreground {
		sh.Registry.SetCurrent(job)
	}

	var tail *Process
	var pipeIn *os.File // previous iteration's pipe read end, or nil to inherit sh.Stdin

	for i, ps := range cmd.Procs {
		var pipeOutW, pipeOutR *os.File
		if i < len(cmd.Procs)-1 {
			r, w, err := os.Pipe()
			if err != nil {
				// A failed pipe() mid-pipeline leaves the job's wiring
				// unrecoverable; treat it as fatal rather than limp on
				// with a half-built pipeline.
				fmt.Fprintf(sh.Stderr, "lsh: pipe: %v\n", err)
				os.Exit(1)
			}
			pipeOutR, pipeOutW = r, w
		}

		var stdin io.Reader = sh.Stdin
		var stdout io.Writer = sh.Stdout
		var stderr io.Writer = sh.Stderr

		inFile := pipeIn
		if inFile != nil {
			stdin = inFile
		}
		if pipeOutW != nil {
			stdout = pipeOutW
		}

		var openedIn, openedOut, openedErr *os.File
		ok := true

		if ps.RedirIn != "" {
			f, err := os.Open(ps.RedirIn)
			if err != nil {
				fmt.Fprintf(sh.Stderr, "lsh: %s: %v\n", ps.RedirIn, err)
				ok = false
			} else {
				openedIn = f
				stdin = f
				if inFile != nil {
					inFile.Close()
					inFile = nil
				}
			}
		}
		if ok && ps.RedirOut != "" {
			f, err := os.OpenFile(ps.RedirOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				fmt.Fprintf(sh.Stderr, "lsh: %s: %v\n", ps.RedirOut, err)
				ok = false
			} else {
				openedOut = f
				stdout = f
				if pipeOutW != nil {
					pipeOutW.Close()
					pipeOutW = nil
				}
			}
		}
		if ok && ps.RedirErr != "" {
			f, err := os.OpenFile(ps.RedirErr, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				fmt.Fprintf(sh.Stderr, "lsh: %s: %v\n", ps.RedirErr, err)
				ok = false
			} else {
				openedErr = f
				stderr = f
			}
		}

		proc := &Process{Argv: append([]string(nil), ps.Argv...), Status: StatusRunning}
		if tail == nil {
			job.FirstProcess = proc
		} else {
			tail.Next = proc
		}
		tail = proc

		if !ok {
			proc.Status = StatusCompleted
		} else if fn, isBuiltin := LookupBuiltin(ps.Argv[0]); isBuiltin {
			fn(sh, ps.Argv, stdin, stdout, stderr)
			proc.Status = StatusCompleted
		} else {
			sh.spawn(job, proc, ps.Argv, stdin, stdout, stderr, cmd.Foreground)
		}

		if openedIn != nil {
			openedIn.Close()
		} else if inFile != nil {
			inFile.Close()
		}
		if openedOut != nil {
			openedOut.Close()
		}
		if pipeOutW != nil {
			pipeOutW.Close()
		}
		if openedErr != nil {
			openedErr.Close()
		}

		pipeIn = pipeOutR
	}

	if job.Pgid == 0 {
		// Nothing in the pipeline was forked (every process was a
		// builtin, a failed redirection or a command not found), so
		// there is no process group to hand the terminal to and the job
		// is already complete.
		return job
	}

	if cmd.Foreground {
		_ = sh.setForeground(job, false)
	} else {
		_ = sh.setBackground(job, false)
	}
	return job
}

// spawn forks (via os/exec) the external process described by argv,
// wiring the already-resolved stdin/stdout/stderr, establishing or
// joining the job's process group, and (for a foreground job) claiming
// the terminal as soon as the pgid is known.
func (sh *Shell) spawn(job *Job, proc *Process, argv []string, stdin io.Reader, stdout, stderr io.Writer, foreground bool) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		fmt.Fprintf(stderr, "lsh: %s: command not found\n", argv[0])
		proc.Status = StatusCompleted
		return
	}

	ecmd := exec.Command(path, argv[1:]...)
	ecmd.Stdin, ecmd.Stdout, ecmd.Stderr = stdin, stdout, stderr
	ecmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: job.Pgid}

	if err := ecmd.Start(); err != nil {
		// LookPath already ruled out "command not found"; a Start failure
		// here means the fork itself failed, which leaves the shell's
		// process accounting in an unknown state. Treat it as fatal.
		fmt.Fprintf(sh.Stderr, "lsh: fork: %v\n", err)
		os.Exit(1)
	}

	pid := ecmd.Process.Pid
	proc.Pid = pid
	log.Printf("spawned pid %d for job %d: %v", pid, job.ID, argv)

	// Both the parent (here) and the kernel (via SysProcAttr.Setpgid,
	// the closest Go gets to the child calling setpgid on itself
	// pre-exec) race to establish the group; whichever succeeds first
	// wins, and the loser's call is a harmless no-op.
	target := job.Pgid
	if target == 0 {
		target = pid
	}
	_ = shellterm.Setpgid(pid, target)

	if job.Pgid == 0 {
		job.Pgid = pid
	}

	if foreground {
		// Go's os/exec gives no pre-exec child hook without cgo, so the
		// tcsetpgrp call the C original issues from the child is issued
		// here by the parent instead, immediately after the pgid is
		// established. This is functionally equivalent: tcsetpgrp only
		// updates which pgrp the terminal driver treats as foreground,
		// and nothing reads from the terminal before this call returns.
		_ = sh.claimTerminal(job)
	}
}

// setForeground gives job the terminal, optionally resumes it with
// SIGCONT, waits for it to complete or stop, and then reclaims the
// terminal for the shell.
func (sh *Shell) setForeground(job *Job, sendContinue bool) error {
	if err := sh.claimTerminal(job); err != nil {
		return err
	}

	if sendContinue {
		if err := shellterm.Restore(sh.Terminal, job.savedTermState); err != nil {
			return err
		}
		if err := shellterm.Kill(-job.Pgid, unix.SIGCONT); err != nil {
			return err
		}
	}

	sh.waitForeground(job)

	if err := shellterm.Tcsetpgrp(sh.Terminal, sh.Pgid); err != nil {
		return err
	}
	if st, err := shellterm.Capture(sh.Terminal); err == nil {
		job.savedTermState = st
	}
	return shellterm.Restore(sh.Terminal, sh.savedState)
}

// setBackground optionally resumes job with SIGCONT; it never touches
// the terminal and never waits for the job.
func (sh *Shell) setBackground(job *Job, sendContinue bool) error {
	if !sendContinue {
		return nil
	}
	return shellterm.Kill(-job.Pgid, unix.SIGCONT)
}

// waitForeground blocks until job completes or stops: it repeatedly
// waits for any child-state transition, applies it to whichever job it
// belongs to, and stops once this particular job is done.
func (sh *Shell) waitForeground(job *Job) {
	for {
		ev, ok, err := shellterm.Poll(true)
		if err != nil {
			if errors.Is(err, shellterm.ECHILD) {
				sh.forceAllCompleted()
			}
			return
		}
		if !ok {
			continue
		}
		sh.applyWaitEvent(ev)
		if job.IsCompleted() || job.IsStopped() {
			return
		}
	}
}
