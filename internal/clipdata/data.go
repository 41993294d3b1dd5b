package clipdata

import "strings"

// Data is the clipboard-data object exchanged with the remote session. It is
// an ordered collection of MIME-typed entries, built through the add
// primitives and consumed via Items.
type Data struct {
	items []Item
}

// New returns an empty clipboard-data object.
func New() *Data {
	return &Data{}
}

// AddText appends a text entry under the given MIME type.
func (d *Data) AddText(mime, text string) {
	d.items = append(d.items, Item{MIME: mime, Value: TextValue(text)})
}

// AddBinary appends a binary entry under the given MIME type.
func (d *Data) AddBinary(mime string, b []byte) {
	d.items = append(d.items, Item{MIME: mime, Value: BinaryValue(b)})
}

// IsEmpty reports whether no entries have been added.
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.items) == 0
}

// Items returns the entries in insertion order. The returned slice is shared;
// callers must not mutate it.
func (d *Data) Items() []Item {
	if d == nil {
		return nil
	}
	return d.items
}

// Snapshot flattens the entries into a MIME → value mapping.
func (d *Data) Snapshot() Snapshot {
	return ToSnapshot(d.Items())
}

// BuildData constructs a clipboard-data object from a snapshot: one entry per
// MIME type, text/* entries via AddText and image/* entries via AddBinary.
// Entries whose value representation does not match their MIME classification,
// and entries of any other MIME class, are dropped without error.
func BuildData(snap Snapshot) *Data {
	d := New()
	for mime, v := range snap {
		switch {
		case strings.HasPrefix(mime, "text/"):
			if v.Kind == KindText {
				d.AddText(mime, v.Text)
			}
		case strings.HasPrefix(mime, "image/"):
			if v.Kind == KindBinary && v.Bytes != nil {
				d.AddBinary(mime, v.Bytes)
			}
		}
	}
	return d
}
