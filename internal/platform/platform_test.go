package platform

import (
	"errors"
	"testing"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

func TestClipboardCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos     string
		wantCmd  string
		wantArgs int
	}{
		{"darwin", "pbcopy", 0},
		{"linux", "xclip", 2},
		{"windows", "", 0},
		{"plan9", "", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			cmd, args := clipboardCmd(tt.goos)
			if cmd != tt.wantCmd || len(args) != tt.wantArgs {
				t.Errorf("clipboardCmd(%q) = %q %v, want %q with %d args",
					tt.goos, cmd, args, tt.wantCmd, tt.wantArgs)
			}
		})
	}
}

func TestCommandBackendCaps(t *testing.T) {
	t.Parallel()

	b := &commandBackend{cmd: "pbcopy"}
	caps := b.Caps()
	if caps.Read || caps.Write || !caps.WriteText {
		t.Errorf("caps = %+v, want write-text only", caps)
	}
	if _, err := b.ReadAll(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ReadAll error = %v, want ErrUnsupported", err)
	}
}

func TestCommandBackendWrite_NoTextItem(t *testing.T) {
	t.Parallel()

	b := &commandBackend{cmd: "pbcopy"}
	items := []clipdata.Item{
		{MIME: "image/png", Value: clipdata.BinaryValue([]byte{1})},
	}
	if err := b.Write(items); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Write error = %v, want ErrUnsupported", err)
	}
}

func TestHeadlessBackend(t *testing.T) {
	t.Parallel()

	h := Headless()
	if caps := h.Caps(); caps.Read || caps.Write || caps.WriteText {
		t.Errorf("headless caps = %+v, want none", caps)
	}
	// Every operation is a silent no-op.
	if items, err := h.ReadAll(); err != nil || items != nil {
		t.Errorf("ReadAll = %v, %v, want nil, nil", items, err)
	}
	if err := h.WriteText("x"); err != nil {
		t.Errorf("WriteText error = %v, want nil", err)
	}
}
