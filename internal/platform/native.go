package platform

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.design/x/clipboard"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

type nativeBackend struct{}

// Native returns the full read/write backend, or an error when the display
// environment is unavailable (e.g. a headless server without X11 or Wayland).
func Native() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &nativeBackend{}, nil
}

func (*nativeBackend) Name() string { return "native" }

func (*nativeBackend) Caps() Caps {
	return Caps{Read: true, Write: true, WriteText: true}
}

func (*nativeBackend) ReadAll() ([]clipdata.Item, error) {
	var items []clipdata.Item
	if text := clipboard.Read(clipboard.FmtText); text != nil {
		items = append(items, clipdata.Item{
			MIME:  "text/plain",
			Value: clipdata.TextValue(string(text)),
		})
	}
	if img := clipboard.Read(clipboard.FmtImage); img != nil {
		items = append(items, clipdata.Item{
			MIME:  "image/png",
			Value: clipdata.BinaryValue(img),
		})
	}
	return items, nil
}

func (*nativeBackend) Write(items []clipdata.Item) error {
	for _, it := range items {
		switch {
		case strings.HasPrefix(it.MIME, "text/") && it.Value.Kind == clipdata.KindText:
			clipboard.Write(clipboard.FmtText, []byte(it.Value.Text))
		case it.MIME == "image/png" && it.Value.Kind == clipdata.KindBinary:
			clipboard.Write(clipboard.FmtImage, it.Value.Bytes)
		default:
			slog.Debug("skipping unsupported clipboard representation", "mime", it.MIME)
		}
	}
	return nil
}

func (*nativeBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (*nativeBackend) Close() {}
