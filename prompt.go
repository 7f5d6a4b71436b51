package lsh

import (
	"fmt"
	"os"
)

// ANSI truecolor codes for the two halves of the prompt.
const (
	promptLshColor   = "22;198;12"
	promptCwdColor   = "56;114;242"
	promptCwdUnknown = "<unknown>"
)

// Prompt renders "lsh <cwd>$ " with the lsh segment in green and the cwd
// segment in blue, falling back to promptCwdUnknown when Getwd fails.
func Prompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = promptCwdUnknown
	}
	return fmt.Sprintf("\033[38;2;%smlsh \033[38;2;%sm%s\033[0m$ ", promptLshColor, promptCwdColor, cwd)
}
