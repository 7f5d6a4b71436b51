package lsh

import (
	"errors"
	"fmt"
	"io"
	"log"

	"lsh/shellterm"
)

// UpdateJobStatuses drains every pending child-state transition via
// non-blocking polling. If the kernel reports ECHILD (no children left to
// wait for), every process not already Terminated is forced to
// Completed; this is not an error, just the kernel telling us there's
// nothing left to reap.
func (sh *Shell) UpdateJobStatuses() error {
	for {
		ev, ok, err := shellterm.Poll(false)
		if err != nil {
			if errors.Is(err, shellterm.ECHILD) {
				sh.forceAllCompleted()
				return nil
			}
			return err
		}
		if !ok {
			return nil
		}
		sh.applyWaitEvent(ev)
	}
}

func (sh *Shell) applyWaitEvent(ev shellterm.WaitEvent) {
	proc, ok := sh.Registry.FindByPid(ev.Pid)
	if !ok {
		return
	}
	log.Printf("reaped pid %d: exited=%v signaled=%v stopped=%v continued=%v", ev.Pid, ev.Exited, ev.Signaled, ev.Stopped, ev.Continued)

	switch {
	case ev.Exited:
		proc.Status = StatusCompleted
	case ev.Signaled:
		proc.Status = StatusTerminated
	case ev.Stopped:
		proc.Status = StatusStopped
	case ev.Continued:
		// A continue event arriving after a process has already exited
		// or been killed is stale and ignored.
		if proc.Status != StatusCompleted && proc.Status != StatusTerminated {
			proc.Status = StatusRunning
		}
	}
}

func (sh *Shell) forceAllCompleted() {
	for _, j := range sh.Registry.Jobs() {
		for p := j.FirstProcess; p != nil; p = p.Next {
			if p.Status != StatusTerminated {
				p.Status = StatusCompleted
			}
		}
	}
}

// CleanupJobs erases every completed job from the registry, printing its
// final status line first, then re-derives current as the new tail if it
// was just erased.
func (sh *Shell) CleanupJobs(w io.Writer) {
	for _, j := range sh.Registry.Jobs() {
		if j.IsCompleted() {
			printJobStatus(w, j)
			sh.Registry.Erase(j)
		}
	}

	if _, ok := sh.Registry.Current(); !ok {
		if tail := sh.Registry.tail(); tail != nil {
			sh.Registry.SetCurrent(tail)
		}
	}
}

func printJobStatus(w io.Writer, j *Job) {
	fmt.Fprintf(w, "[%d] %s %s\n", j.ID, j.Status(), j.Command)
}
