package templates

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultEditors are probed in order when no editor is configured.
var DefaultEditors = []string{"nvim", "vim", "nano", "vi", "code"}

// Editors launches an external editor on a template copy.
type Editors struct {
	Preferred  string
	Candidates []string
	LookPath   func(string) (string, error) // nil means exec.LookPath
	Stdin      io.Reader
	Stdout     io.Writer
}

func (e *Editors) lookPath(name string) (string, error) {
	if e.LookPath != nil {
		return e.LookPath(name)
	}
	return exec.LookPath(name)
}

// Available returns the installed editors, the preferred one first.
func (e *Editors) Available() []string {
	candidates := e.Candidates
	if len(candidates) == 0 {
		candidates = DefaultEditors
	}
	var out []string
	if p := strings.TrimSpace(e.Preferred); p != "" {
		if _, err := e.lookPath(p); err == nil {
			out = append(out, p)
		}
	}
	for _, c := range candidates {
		if c == e.Preferred {
			continue
		}
		if _, err := e.lookPath(c); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// Edit runs editor on path and waits for it to exit.
func (e *Editors) Edit(ctx context.Context, editor, path string) error {
	bin, err := e.lookPath(editor)
	if err != nil {
		return fmt.Errorf("editor %s not found: %w", editor, err)
	}
	args := []string{path}
	if editor == "code" {
		args = []string{"--wait", path}
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stdout
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", editor, err)
	}
	return nil
}
