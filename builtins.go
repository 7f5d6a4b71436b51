package lsh

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// BuiltinFunc is a command implemented inside the shell process instead of
// via exec. It receives the pipeline's final wired descriptors, not the
// shell's own stdin/stdout/stderr, so e.g. `jobs | cat` works.
type BuiltinFunc func(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int

var builtins = map[string]BuiltinFunc{
	"exit": builtinExit,
	"cd":   builtinCd,
	"jobs": builtinJobs,
	"fg":   builtinFg,
	"bg":   builtinBg,
}

// LookupBuiltin reports whether name is a built-in and returns its
// implementation.
func LookupBuiltin(name string) (BuiltinFunc, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

func builtinExit(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	os.Exit(0)
	return 0
}

func builtinCd(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		fmt.Fprintln(stderr, "cd: expected argument")
		return 1
	}
	if err := os.Chdir(argv[1]); err != nil {
		fmt.Fprintf(stderr, "cd: %v\n", err)
		return 1
	}
	return 0
}

func builtinJobs(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := sh.UpdateJobStatuses(); err != nil {
		fmt.Fprintf(stderr, "jobs: %v\n", err)
	}

	current, _ := sh.Registry.Current()
	for _, j := range sh.Registry.Jobs() {
		if j == current {
			continue
		}
		fmt.Fprintf(stdout, "[%d] %s %s\n", j.ID, j.Status(), j.Command)
	}

	sh.CleanupJobs(stdout)
	return 0
}

// selectJob implements the shared id-or-current selection used by fg/bg:
// an explicit id picks that job, otherwise the current job is used.
func selectJob(sh *Shell, argv []string) (*Job, error) {
	if len(argv) < 2 {
		job, ok := sh.Registry.Current()
		if !ok {
			return nil, fmt.Errorf("no current job")
		}
		return job, nil
	}
	id, err := strconv.Atoi(argv[1])
	if err != nil {
		return nil, fmt.Errorf("%s: no such job", argv[1])
	}
	job, ok := sh.Registry.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%d: no such job", id)
	}
	return job, nil
}

func builtinFg(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	job, err := selectJob(sh, argv)
	if err != nil {
		fmt.Fprintf(stderr, "fg: %v\n", err)
		return 1
	}
	sh.Registry.SetCurrent(job)
	if err := sh.setForeground(job, true); err != nil {
		fmt.Fprintf(stderr, "fg: %v\n", err)
		return 1
	}
	return 0
}

func builtinBg(sh *Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	job, err := selectJob(sh, argv)
	if err != nil {
		fmt.Fprintf(stderr, "bg: %v\n", err)
		return 1
	}
	if err := sh.setBackground(job, true); err != nil {
		fmt.Fprintf(stderr, "bg: %v\n", err)
		return 1
	}
	return 0
}
