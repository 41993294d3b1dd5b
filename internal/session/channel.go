package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/glamberson/IronRDP/internal/clipdata"
	"github.com/glamberson/IronRDP/internal/crypto"
)

const (
	dialTimeout    = 10 * time.Second
	reconnectDelay = time.Second
	maxReconnect   = 30 * time.Second
	authTimeout    = 10 * time.Second
)

// Config holds the session broker connection settings.
type Config struct {
	// Addr is the broker address (host:port).
	Addr string
	// Token is the shared secret; empty disables auth and sealing.
	Token string
	// Source identifies this client in broker peer lists.
	Source string
}

// Channel maintains the connection to the session broker, reconnecting with
// exponential back-off. Outbound it implements clipsync.Desktop; inbound
// events dispatch to the registered Handler.
type Channel struct {
	cfg     Config
	key     *crypto.Key
	handler Handler
	sendCh  chan *Message
}

// New creates a Channel. Call SetHandler before Run.
func New(cfg Config) (*Channel, error) {
	c := &Channel{
		cfg:    cfg,
		sendCh: make(chan *Message, 64),
	}
	if cfg.Token != "" {
		key, err := crypto.DeriveKey(cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("session key: %w", err)
		}
		c.key = key
	}
	return c, nil
}

// SetHandler registers the inbound event handler. Must be called before Run.
func (c *Channel) SetHandler(h Handler) { c.handler = h }

// ClipboardChanged implements clipsync.Desktop.
func (c *Channel) ClipboardChanged(d *clipdata.Data) {
	c.send(&Message{
		Type:   TypeClipboard,
		Source: c.cfg.Source,
		Items:  EncodeItems(d),
	})
}

// ClipboardChangedEmpty implements clipsync.Desktop.
func (c *Channel) ClipboardChangedEmpty() {
	c.send(&Message{Type: TypeClipboardEmpty, Source: c.cfg.Source})
}

// send queues a message without blocking. A full queue drops the message;
// clipboard traffic is last-value-wins, so a drop only costs staleness.
func (c *Channel) send(msg *Message) {
	select {
	case c.sendCh <- msg:
	default:
		slog.Warn("session send queue full, dropping", "type", msg.Type)
	}
}

// Run connects to the broker and pumps messages until ctx is cancelled,
// re-dialing with exponential back-off after every disconnect.
func (c *Channel) Run(ctx context.Context) {
	delay := reconnectDelay
	for {
		slog.Info("connecting to session broker", "addr", c.cfg.Addr)
		nc, err := (&net.Dialer{Timeout: dialTimeout}).DialContext(ctx, "tcp", c.cfg.Addr)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("session connect failed", "err", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			if delay < maxReconnect {
				delay *= 2
			}
			continue
		}
		delay = reconnectDelay
		slog.Info("session connected", "addr", c.cfg.Addr)

		c.runSession(ctx, NewConn(nc, c.key))
		if ctx.Err() != nil {
			return
		}
		slog.Warn("session disconnected, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// runSession authenticates and runs the read/write loops for one connection.
func (c *Channel) runSession(ctx context.Context, conn *Conn) {
	defer conn.Close()

	if c.cfg.Token != "" {
		conn.SetReadDeadline(authTimeout)
		err := conn.WriteMsg(&Message{
			Type:    TypeAuth,
			Source:  c.cfg.Source,
			Payload: base64.StdEncoding.EncodeToString([]byte(c.cfg.Token)),
		})
		conn.SetReadDeadline(0)
		if err != nil {
			slog.Error("session auth failed", "err", err)
			return
		}
	}

	sessionDone := make(chan struct{})
	defer close(sessionDone)

	// Writer
	go func() {
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-sessionDone:
				return
			case msg := <-c.sendCh:
				if err := conn.WriteMsg(msg); err != nil {
					slog.Error("session write failed", "err", err)
					conn.Close()
					return
				}
			}
		}
	}()

	// Reader
	for {
		msg, err := conn.ReadMsg()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				slog.Info("session connection closed", "err", err)
			}
			return
		}
		c.dispatch(msg)
	}
}

func (c *Channel) dispatch(msg *Message) {
	switch msg.Type {
	case TypeClipboard:
		d := DecodeItems(msg.Items)
		if d.IsEmpty() {
			return
		}
		slog.Debug("session clipboard push", "items", len(msg.Items))
		c.handler.RemoteClipboardChanged(d)

	case TypeFormatList:
		c.handler.RemoteFormatListReceived()

	case TypeForceUpdate:
		c.handler.ForceClipboardUpdate()

	case TypePing:
		c.send(&Message{Type: TypePong})

	case TypePong:
		// keep-alive response, nothing to do

	case TypeError:
		slog.Warn("session error", "error", msg.Error)

	default:
		slog.Warn("unexpected session message", "type", msg.Type)
	}
}
