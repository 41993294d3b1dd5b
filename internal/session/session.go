// Package session connects the clipboard core to a remote desktop session
// broker over TCP. Messages are newline-delimited JSON with base64-encoded
// payloads; when a shared token is configured every message is additionally
// sealed with NaCl secretbox (see internal/crypto).
//
// The Channel type is the concrete realization of the remote-module boundary:
// outbound it implements clipsync.Desktop, inbound it dispatches session
// events to a registered Handler.
package session

import "github.com/glamberson/IronRDP/internal/clipdata"

// Handler receives the inbound session events the clipboard core registers
// for. clipsync.Syncer satisfies it.
type Handler interface {
	// RemoteClipboardChanged reports that the session pushed new clipboard
	// content.
	RemoteClipboardChanged(*clipdata.Data)
	// RemoteFormatListReceived reports that clipboard format negotiation
	// completed (degraded-mode release signal).
	RemoteFormatListReceived()
	// ForceClipboardUpdate asks for the current outbound snapshot to be
	// re-sent.
	ForceClipboardUpdate()
}
