package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glamberson/IronRDP/internal/clipdata"
	"github.com/glamberson/IronRDP/internal/clipsync"
)

// Type identifies the kind of message.
type Type string

const (
	TypeClipboard      Type = "CLIPBOARD"
	TypeClipboardEmpty Type = "CLIPBOARD_EMPTY"
	TypeFormatList     Type = "FORMAT_LIST"
	TypeForceUpdate    Type = "FORCE_UPDATE"
	TypeAuth           Type = "AUTH"
	TypeStatus         Type = "STATUS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypePing           Type = "PING"
	TypePong           Type = "PONG"
	TypeError          Type = "ERROR"
)

// Item is one clipboard representation on the wire. Data is always
// base64-encoded so binary content is safe inside JSON strings.
type Item struct {
	MIME string `json:"mime"`
	Data string `json:"data"`
}

// Message is the top-level wire envelope, one JSON object per line.
type Message struct {
	Type   Type   `json:"type"`
	Source string `json:"source,omitempty"`

	// CLIPBOARD
	Items []Item `json:"items,omitempty"`

	// AUTH — base64-encoded shared token
	Payload string `json:"payload,omitempty"`

	// STATUS_RESPONSE
	Status *clipsync.Status `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serializes the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserializes a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// EncodeItems converts a clipboard-data object to wire items.
func EncodeItems(d *clipdata.Data) []Item {
	items := d.Items()
	out := make([]Item, 0, len(items))
	for _, it := range items {
		var raw []byte
		if it.Value.Kind == clipdata.KindText {
			raw = []byte(it.Value.Text)
		} else {
			raw = it.Value.Bytes
		}
		out = append(out, Item{
			MIME: it.MIME,
			Data: base64.StdEncoding.EncodeToString(raw),
		})
	}
	return out
}

// DecodeItems converts wire items back to a clipboard-data object. Items are
// classified by MIME prefix: text/* entries decode to strings, image/* to raw
// bytes. A malformed or unclassifiable item is logged and dropped; the
// remaining items still decode.
func DecodeItems(items []Item) *clipdata.Data {
	d := clipdata.New()
	for _, it := range items {
		raw, err := base64.StdEncoding.DecodeString(it.Data)
		if err != nil {
			slog.Warn("dropping undecodable clipboard item", "mime", it.MIME, "err", err)
			continue
		}
		switch {
		case strings.HasPrefix(it.MIME, "text/"):
			d.AddText(it.MIME, string(raw))
		case strings.HasPrefix(it.MIME, "image/"):
			d.AddBinary(it.MIME, raw)
		default:
			slog.Debug("ignoring clipboard item of unknown class", "mime", it.MIME)
		}
	}
	return d
}
