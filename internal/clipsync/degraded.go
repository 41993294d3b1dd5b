package clipsync

import (
	"log/slog"
	"strings"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

// HandlePaste processes a paste event intercepted by the host (default
// handling already prevented). The first text representation is forwarded to
// the session; when no text item exists, the first image payload goes
// instead. At most one item is forwarded per event. Only the degraded bridge
// consumes paste events; in standard mode the poll loop covers the outbound
// path.
func (s *Syncer) HandlePaste(items []clipdata.Item) {
	if s.mode != ModeDegraded {
		return
	}

	for _, it := range items {
		if !strings.HasPrefix(it.MIME, "text/") {
			continue
		}
		if it.Value.Kind != clipdata.KindText {
			slog.Warn("dropping malformed paste item", "mime", it.MIME)
			continue
		}
		if it.Value.Text == "" {
			return
		}
		d := clipdata.New()
		d.AddText(it.MIME, it.Value.Text)
		s.sendOutbound(d)
		return
	}

	for _, it := range items {
		if !strings.HasPrefix(it.MIME, "image/") || it.Value.Kind != clipdata.KindBinary {
			continue
		}
		if len(it.Value.Bytes) == 0 {
			return
		}
		d := clipdata.New()
		d.AddBinary(it.MIME, it.Value.Bytes)
		s.sendOutbound(d)
		return
	}
}

// HandleKey routes one host key event. In standard and unsupported modes
// events pass straight through. The degraded bridge intercepts two gestures:
// a copy/cut combination starts the retry-wait chain that writes pending
// session content under user-gesture cover, and a paste combination opens a
// buffering window so the keystroke is not delivered before the session has
// finished negotiating clipboard formats. While a buffering window is open,
// every key event is queued to preserve input ordering.
func (s *Syncer) HandleKey(ev KeyEvent) {
	if s.mode != ModeDegraded {
		s.forwardKey(ev)
		return
	}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	if s.buffering {
		s.buffered = append(s.buffered, ev)
		s.mu.Unlock()
		return
	}

	switch {
	case ev.IsPasteCombo():
		s.buffering = true
		s.bufferGen++
		gen := s.bufferGen
		s.buffered = append(s.buffered, ev)
		s.mu.Unlock()
		s.afterFunc(s.cfg.PostponeTimeout, func() { s.releaseBufferedKeys(gen) })

	case ev.IsCopyCombo():
		s.retryGen++
		gen := s.retryGen
		s.retriesLeft = s.cfg.RetryBudget
		s.mu.Unlock()
		s.forwardKey(ev)
		s.afterFunc(s.cfg.RetryInterval, func() { s.retryTick(gen) })

	default:
		s.mu.Unlock()
		s.forwardKey(ev)
	}
}

// RemoteFormatListReceived signals that the session has delivered its
// clipboard formats; buffered key events replay immediately instead of
// waiting out the postponement timeout.
func (s *Syncer) RemoteFormatListReceived() {
	s.mu.Lock()
	gen := s.bufferGen
	s.mu.Unlock()
	s.releaseBufferedKeys(gen)
}

// releaseBufferedKeys replays the postponed key events in original order,
// exactly once. A stale generation (a newer buffering window superseded this
// one, or the window already released) is a no-op.
func (s *Syncer) releaseBufferedKeys(gen int) {
	s.mu.Lock()
	if s.destroyed || !s.buffering || gen != s.bufferGen {
		s.mu.Unlock()
		return
	}
	queued := s.buffered
	s.buffered = nil
	s.buffering = false
	s.mu.Unlock()

	for _, ev := range queued {
		s.forwardKey(ev)
	}
}

// retryTick is one firing of the gesture retry-wait chain. If session content
// is pending it is consumed and its text written to the local clipboard,
// ending the chain whether or not the write succeeds. Otherwise the chain
// reschedules itself until the budget is exhausted; running out is a silent
// miss. Stale generations no-op: a newer gesture supersedes, it does not
// cancel, older timers.
func (s *Syncer) retryTick(gen int) {
	s.mu.Lock()
	if s.destroyed || gen != s.retryGen {
		s.mu.Unlock()
		return
	}

	if s.pending != nil {
		d := s.pending
		s.pending = nil
		s.mu.Unlock()
		s.writePendingText(d)
		return
	}

	s.retriesLeft--
	remaining := s.retriesLeft
	s.mu.Unlock()

	if remaining > 0 {
		s.afterFunc(s.cfg.RetryInterval, func() { s.retryTick(gen) })
	}
}

// writePendingText writes the text/plain representation of a consumed pending
// payload, if one is present.
func (s *Syncer) writePendingText(d *clipdata.Data) {
	for _, it := range d.Items() {
		if it.MIME != "text/plain" || it.Value.Kind != clipdata.KindText {
			continue
		}
		if err := s.clip.WriteText(it.Value.Text); err != nil {
			slog.Warn("gesture clipboard write failed", "err", err)
		}
		return
	}
}
