// Package platform provides a unified interface to the local clipboard
// surface. Unlike build-constraint selection, backends are chosen at runtime
// by capability probing:
//
//	Native()        — golang.design/x/clipboard, full read/write
//	CommandWriter() — pbcopy / xclip pipe, text write only
//	Headless()      — no-op stub for environments without a clipboard
//
// The reported Caps drive the sync strategy selection in internal/clipsync.
package platform

import (
	"errors"
	"log/slog"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

// ErrUnsupported is returned by operations the active backend cannot perform.
var ErrUnsupported = errors.New("clipboard operation not supported by backend")

// Caps describes what the active backend can do.
type Caps struct {
	Read      bool // ReadAll is available
	Write     bool // Write is available
	WriteText bool // WriteText is available
}

// Clipboard is the local clipboard boundary.
type Clipboard interface {
	// Name returns a human-readable backend name.
	Name() string

	// Caps reports the backend's capabilities. Immutable for its lifetime.
	Caps() Caps

	// ReadAll returns the current clipboard contents, one item per available
	// representation. Returns nil, nil when the clipboard is empty or holds
	// only unsupported formats.
	ReadAll() ([]clipdata.Item, error)

	// Write replaces the clipboard contents with the given items.
	// Representations the backend cannot store are skipped.
	Write(items []clipdata.Item) error

	// WriteText replaces the clipboard contents with plain text.
	WriteText(text string) error

	// Close releases any resources held by the backend.
	Close()
}

// New probes backends in order of decreasing capability and returns the first
// one available.
func New() Clipboard {
	if c, err := Native(); err == nil {
		return c
	} else {
		slog.Warn("native clipboard unavailable", "err", err)
	}
	if c, err := CommandWriter(); err == nil {
		slog.Info("falling back to write-only clipboard backend", "backend", c.Name())
		return c
	}
	slog.Warn("no clipboard backend available, clipboard sync disabled")
	return Headless()
}
