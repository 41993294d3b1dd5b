package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

// commandBackend pipes text to a platform clipboard command (pbcopy on macOS,
// xclip on Linux). Write-only: reading back is not possible, which is what
// puts the sync strategy into degraded mode.
type commandBackend struct {
	cmd  string
	args []string
}

// CommandWriter returns the pipe-to-command backend, or an error when no
// clipboard command exists for the current OS.
func CommandWriter() (Clipboard, error) {
	cmd, args := clipboardCmd(runtime.GOOS)
	if cmd == "" {
		return nil, fmt.Errorf("no clipboard command for %s", runtime.GOOS)
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return nil, fmt.Errorf("clipboard command: %w", err)
	}
	return &commandBackend{cmd: cmd, args: args}, nil
}

func clipboardCmd(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "pbcopy", nil
	case "linux":
		return "xclip", []string{"-selection", "clipboard"}
	default:
		return "", nil
	}
}

func (b *commandBackend) Name() string { return b.cmd + " (write-only)" }

func (*commandBackend) Caps() Caps {
	return Caps{WriteText: true}
}

func (*commandBackend) ReadAll() ([]clipdata.Item, error) {
	return nil, ErrUnsupported
}

// Write stores the first text representation; other representations cannot be
// expressed through a text pipe.
func (b *commandBackend) Write(items []clipdata.Item) error {
	for _, it := range items {
		if strings.HasPrefix(it.MIME, "text/") && it.Value.Kind == clipdata.KindText {
			return b.WriteText(it.Value.Text)
		}
	}
	return ErrUnsupported
}

func (b *commandBackend) WriteText(text string) error {
	c := exec.Command(b.cmd, b.args...)
	c.Stdin = strings.NewReader(text)
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", b.cmd, err)
	}
	return nil
}

func (*commandBackend) Close() {}
