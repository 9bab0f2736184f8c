package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm prompts on stdout and reads a yes/no answer from stdin.
func Confirm(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stdout, prompt)
}

// ConfirmFrom prompts on w and reads the answer from r. Only "y" and "yes"
// count as yes.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", StyleWarning.Render(prompt))
	line, _ := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}

// PromptInput asks for one line of input.
func PromptInput(prompt string) string {
	fmt.Printf("%s: ", StyleValue.Render(prompt))
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// DangerBox frames a warning the user must not skim past.
func DangerBox(content string) string {
	return StyleBanner.Render(content)
}
