// Package clipsync reconciles the local clipboard with the clipboard channel
// of a remote desktop session. One of two strategies is selected at startup
// from the platform backend's capabilities:
//
//	ModeStandard — periodic polling diff against last-known state, writes
//	               deferred through the focus gate.
//	ModeDegraded — paste-event interception for the outbound path and a
//	               gesture-gated retry-wait loop for the inbound path, used
//	               when the backend cannot read the clipboard.
//
// ModeUnsupported turns every clipboard operation into a no-op; key events
// still pass through to the remote session.
package clipsync

import "github.com/glamberson/IronRDP/internal/platform"

// Mode identifies the sync strategy. Chosen once, immutable for the Syncer's
// lifetime.
type Mode int

const (
	ModeUnsupported Mode = iota
	ModeDegraded
	ModeStandard
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeDegraded:
		return "degraded"
	default:
		return "unsupported"
	}
}

// DetectMode maps backend capabilities to a sync strategy: full read/write
// selects standard polling, text-write-only selects the degraded bridge, and
// anything less disables clipboard integration.
func DetectMode(c platform.Clipboard) Mode {
	caps := c.Caps()
	switch {
	case caps.Read && caps.Write:
		return ModeStandard
	case caps.WriteText:
		return ModeDegraded
	default:
		return ModeUnsupported
	}
}
