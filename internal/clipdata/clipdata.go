// Package clipdata defines the clipboard data model shared between the local
// platform boundary and the remote session: MIME-typed items, snapshots used
// for change detection, and the clipboard-data object handed to the session.
package clipdata

import "bytes"

// Kind discriminates the two value representations a clipboard entry may carry.
type Kind int

const (
	KindText Kind = iota
	KindBinary
)

// Value is a single clipboard value: either text or raw bytes, never both.
type Value struct {
	Kind  Kind
	Text  string
	Bytes []byte
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// BinaryValue returns a binary Value.
func BinaryValue(b []byte) Value {
	return Value{Kind: KindBinary, Bytes: b}
}

// Equal reports whether two values are identical. Text compares by string
// equality, binary by length and byte-wise equality. Values of mismatched
// representation are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	if v.Kind == KindText {
		return v.Text == o.Text
	}
	return bytes.Equal(v.Bytes, o.Bytes)
}

// Item is a single MIME-typed clipboard representation. Immutable once
// constructed.
type Item struct {
	MIME  string
	Value Value
}

// Snapshot maps MIME type → value, representing clipboard contents as last
// observed.
type Snapshot map[string]Value

// ToSnapshot flattens items into a MIME → value mapping for diffing. Later
// items win on duplicate MIME types.
func ToSnapshot(items []Item) Snapshot {
	snap := make(Snapshot, len(items))
	for _, it := range items {
		snap[it.MIME] = it.Value
	}
	return snap
}

// Equal reports whether two snapshots hold the same keys with equal values.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for mime, v := range s {
		ov, ok := o[mime]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
