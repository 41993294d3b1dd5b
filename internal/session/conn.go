package session

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"net"
	"time"

	"github.com/glamberson/IronRDP/internal/crypto"
)

const (
	// maxMessageSize bounds a single wire line at 16 MiB; clipboard images
	// can be large, key and control traffic is tiny.
	maxMessageSize = 16 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// Conn frames Messages over a net.Conn: one newline-terminated line per
// message, either raw JSON or base64(secretbox(JSON)) when a key is set. The
// framing is identical either way, which keeps the read path trivial.
type Conn struct {
	nc  net.Conn
	br  *bufio.Reader
	key *crypto.Key // nil = plaintext
}

// NewConn wraps nc. A non-nil key seals every message.
func NewConn(nc net.Conn, key *crypto.Key) *Conn {
	return &Conn{
		nc:  nc,
		br:  bufio.NewReaderSize(nc, 64*1024),
		key: key,
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.nc.Close() }

// SetReadDeadline sets the read deadline d from now; zero clears it.
func (c *Conn) SetReadDeadline(d time.Duration) {
	if d == 0 {
		_ = c.nc.SetReadDeadline(time.Time{})
		return
	}
	_ = c.nc.SetReadDeadline(time.Now().Add(d))
}

// WriteMsg serializes, optionally seals, and writes one message line.
func (c *Conn) WriteMsg(msg *Message) error {
	raw, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	line := raw
	if c.key != nil {
		sealed, err := c.key.Seal(raw)
		if err != nil {
			return fmt.Errorf("seal: %w", err)
		}
		line = []byte(base64.StdEncoding.EncodeToString(sealed))
	}
	line = append(line, '\n')

	_ = c.nc.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err = c.nc.Write(line)
	_ = c.nc.SetWriteDeadline(time.Time{})
	return err
}

// ReadMsg reads one line, optionally opens it, and deserializes the message.
func (c *Conn) ReadMsg() (*Message, error) {
	line, err := c.br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) > maxMessageSize {
		return nil, fmt.Errorf("message too large (%d bytes)", len(line))
	}
	line = line[:len(line)-1]

	if c.key != nil {
		sealed, err := base64.StdEncoding.DecodeString(string(line))
		if err != nil {
			return nil, fmt.Errorf("base64 decode: %w", err)
		}
		if line, err = c.key.Open(sealed); err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
	}

	return Decode(line)
}
