package session

import (
	"net"
	"testing"

	"github.com/glamberson/IronRDP/internal/crypto"
)

func testKey(t *testing.T, token string) *crypto.Key {
	t.Helper()
	key, err := crypto.DeriveKey(token)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	return key
}

func connPair(t *testing.T, a, b *crypto.Key) (*Conn, *Conn) {
	t.Helper()
	ca, cb := net.Pipe()
	left, right := NewConn(ca, a), NewConn(cb, b)
	t.Cleanup(func() {
		left.Close()
		right.Close()
	})
	return left, right
}

func exchange(t *testing.T, w, r *Conn, msg *Message) (*Message, error) {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- w.WriteMsg(msg) }()
	got, err := r.ReadMsg()
	if werr := <-errc; werr != nil {
		t.Fatalf("WriteMsg: %v", werr)
	}
	return got, err
}

func TestConnRoundTrip_Plaintext(t *testing.T) {
	t.Parallel()

	left, right := connPair(t, nil, nil)
	in := &Message{Type: TypePing, Source: "a"}
	got, err := exchange(t, left, right, in)
	if err != nil {
		t.Fatalf("ReadMsg: %v", err)
	}
	if got.Type != TypePing || got.Source != "a" {
		t.Errorf("got %+v, want %+v", got, in)
	}
}

func TestConnRoundTrip_Sealed(t *testing.T) {
	t.Parallel()

	key := testKey(t, "shared-token")
	left, right := connPair(t, key, key)
	in := &Message{
		Type:  TypeClipboard,
		Items: []Item{{MIME: "text/plain", Data: "c2VjcmV0"}},
	}
	got, err := exchange(t, left, right, in)
	if err != nil {
		t.Fatalf("ReadMsg: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0] != in.Items[0] {
		t.Errorf("got %+v, want %+v", got, in)
	}
}

func TestConnRoundTrip_KeyMismatch(t *testing.T) {
	t.Parallel()

	left, right := connPair(t, testKey(t, "token-a"), testKey(t, "token-b"))
	if _, err := exchange(t, left, right, &Message{Type: TypePing}); err == nil {
		t.Error("expected open failure with mismatched keys")
	}
}

func TestConnRejectsSealedFromPlaintextPeer(t *testing.T) {
	t.Parallel()

	left, right := connPair(t, nil, testKey(t, "token"))
	if _, err := exchange(t, left, right, &Message{Type: TypePing}); err == nil {
		t.Error("expected failure reading plaintext with a sealing key set")
	}
}
