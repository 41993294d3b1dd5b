package session

import (
	"encoding/base64"
	"testing"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

func TestItemsRoundTrip(t *testing.T) {
	t.Parallel()

	d := clipdata.New()
	d.AddText("text/plain", "hello")
	d.AddText("text/html", "<b>hello</b>")
	d.AddBinary("image/png", []byte{0x89, 0x50, 0x4e, 0x47})

	got := DecodeItems(EncodeItems(d))
	if !got.Snapshot().Equal(d.Snapshot()) {
		t.Errorf("round trip changed content: got %v, want %v", got.Snapshot(), d.Snapshot())
	}
}

func TestDecodeItems_DropsBadBase64(t *testing.T) {
	t.Parallel()

	items := []Item{
		{MIME: "text/plain", Data: "!!not base64!!"},
		{MIME: "text/plain", Data: base64.StdEncoding.EncodeToString([]byte("kept"))},
	}
	d := DecodeItems(items)
	want := clipdata.Snapshot{"text/plain": clipdata.TextValue("kept")}
	if !d.Snapshot().Equal(want) {
		t.Errorf("got %v, want only the valid item", d.Snapshot())
	}
}

func TestDecodeItems_IgnoresUnknownClass(t *testing.T) {
	t.Parallel()

	items := []Item{
		{MIME: "application/octet-stream", Data: base64.StdEncoding.EncodeToString([]byte{1, 2})},
	}
	if d := DecodeItems(items); !d.IsEmpty() {
		t.Errorf("unknown MIME class should be dropped, got %v", d.Items())
	}
}

func TestMessageEncodeDecode(t *testing.T) {
	t.Parallel()

	in := &Message{
		Type:   TypeClipboard,
		Source: "workstation",
		Items:  []Item{{MIME: "text/plain", Data: "aGk="}},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Type != in.Type || out.Source != in.Source || len(out.Items) != 1 || out.Items[0] != in.Items[0] {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte("{truncated")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
