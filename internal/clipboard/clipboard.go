// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command found")

type command struct {
	name string
	args []string
}

var lookPath = exec.LookPath

// candidates lists the clipboard writers to try for goos, best first.
func candidates(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip"}}
	default:
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

func find(goos string) (command, error) {
	for _, c := range candidates(goos) {
		if _, err := lookPath(c.name); err == nil {
			return c, nil
		}
	}
	return command{}, ErrUnavailable
}

// Write copies text to the system clipboard.
func Write(text string) error {
	c, err := find(runtime.GOOS)
	if err != nil {
		return err
	}

	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", c.name, err)
	}
	return nil
}

// Available checks if clipboard functionality is available.
func Available() bool {
	_, err := find(runtime.GOOS)
	return err == nil
}
