// Package pager hands long output to the user's pager, the way less
// would be used manually. Output is fully rendered before the decision
// is made, so the line count is exact.
package pager

import (
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether the file descriptor is an interactive
// terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Threshold returns the line count above which paging starts. A
// positive configured value wins; otherwise the terminal height minus
// two is used, leaving room for the prompt. Zero means never page.
func Threshold(configured int, fd uintptr) int {
	if configured > 0 {
		return configured
	}
	_, height, err := term.GetSize(int(fd))
	if err != nil || height <= 2 {
		return 0
	}
	return height - 2
}

// Run pipes content through $PAGER, falling back to less -R so color
// escapes pass through. When the pager cannot start, the content is
// written to stdout directly rather than lost.
func Run(content string) error {
	command := os.Getenv("PAGER")
	if command == "" {
		command = "less -R"
	}

	parts := strings.Fields(command)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if _, werr := os.Stdout.WriteString(content); werr != nil {
			return werr
		}
		return err
	}
	return nil
}
