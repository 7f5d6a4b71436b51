// Command lsh is an interactive job-control shell.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"lsh"
	"lsh/parser"

	"github.com/chzyer/readline"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("")

	sh, err := lsh.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsh: %v\n", err)
		os.Exit(1)
	}
	log.Printf("session %s started at %s by user %d (%s)", sh.Session.SessionID, sh.Session.StartTime, sh.Session.UserID, sh.Session.UserName)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          lsh.Prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("lsh: readline: %v", err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(lsh.Prompt())

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			os.Exit(0)
		}
		if err != nil {
			log.Fatalf("lsh: %v", err)
		}

		if line == "" {
			continue
		}

		cmd, perr := parser.Parse(line)
		if perr != nil {
			fmt.Fprintln(os.Stderr, "lsh: syntax error")
			continue
		}

		sh.Launch(cmd, line)

		if err := sh.UpdateJobStatuses(); err != nil {
			fmt.Fprintf(os.Stderr, "lsh: %v\n", err)
		}
		sh.CleanupJobs(os.Stdout)
	}
}
