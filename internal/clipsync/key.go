package clipsync

import "strings"

// KeyEvent is a single key transition reported by the host, destined for the
// remote session's input channel.
type KeyEvent struct {
	Key   string // logical key name, lower-case letter or named key
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Down  bool
}

// accel reports whether the platform accelerator modifier is held.
func (e KeyEvent) accel() bool { return e.Ctrl || e.Meta }

// IsPasteCombo reports whether this is the paste key combination going down.
func (e KeyEvent) IsPasteCombo() bool {
	return e.Down && e.accel() && strings.EqualFold(e.Key, "v")
}

// IsCopyCombo reports whether this is the copy or cut key combination going
// down.
func (e KeyEvent) IsCopyCombo() bool {
	return e.Down && e.accel() &&
		(strings.EqualFold(e.Key, "c") || strings.EqualFold(e.Key, "x"))
}

// KeyForwarder delivers key events to the remote session. The Syncer sits
// between the host's raw key stream and the forwarder so that paste
// combinations can be postponed while remote clipboard content is in flight.
type KeyForwarder interface {
	ForwardKey(KeyEvent)
}

// KeyForwarderFunc adapts a function to the KeyForwarder interface.
type KeyForwarderFunc func(KeyEvent)

func (f KeyForwarderFunc) ForwardKey(ev KeyEvent) { f(ev) }
