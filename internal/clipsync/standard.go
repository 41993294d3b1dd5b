package clipsync

import (
	"log/slog"
	"strings"
	"time"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

// eligibleMIME reports whether a clipboard representation takes part in the
// polling diff. Other formats are ignored for the tick.
func eligibleMIME(mime string) bool {
	return strings.HasPrefix(mime, "text/") || mime == "image/png"
}

// pollLoop runs the standard-mode reconciliation. Each tick is scheduled only
// after the previous one completes, so at most one clipboard read is in
// flight and snapshot mutation is serialized.
func (s *Syncer) pollLoop() {
	t := time.NewTimer(s.cfg.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.pollOnce()
			s.mu.Lock()
			dead := s.destroyed
			s.mu.Unlock()
			if dead {
				return
			}
			t.Reset(s.cfg.PollInterval)
		}
	}
}

// pollOnce performs one reconciliation pass: read the local clipboard, diff
// each eligible representation against the last-known client snapshot, and on
// a genuine local change replace the whole snapshot and notify the session.
//
// A value that differs from the client snapshot but matches what the session
// last sent is the echo of a remote write landing on the local clipboard; it
// is adopted without flagging a change.
func (s *Syncer) pollOnce() {
	if !s.fstate.Focused() {
		return
	}

	items, err := s.clip.ReadAll()
	if err != nil {
		s.reportPollErr(err)
		return
	}
	s.clearPollErr()
	if len(items) == 0 {
		return
	}

	observed := make(clipdata.Snapshot)
	changed := false

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	for _, it := range items {
		if !eligibleMIME(it.MIME) {
			continue
		}
		observed[it.MIME] = it.Value

		if last, ok := s.state.lastClient[it.MIME]; ok && last.Equal(it.Value) {
			continue
		}
		if recv, ok := s.state.lastReceived[it.MIME]; ok && recv.Equal(it.Value) {
			// Remote write landed locally. Adopt, don't echo back.
			if s.state.lastClient == nil {
				s.state.lastClient = make(clipdata.Snapshot)
			}
			s.state.lastClient[it.MIME] = it.Value
			continue
		}
		changed = true
	}

	if !changed || len(observed) == 0 {
		s.mu.Unlock()
		return
	}

	// Full replace, never a per-key merge.
	s.state.lastClient = observed
	s.mu.Unlock()

	s.sendOutbound(clipdata.BuildData(observed))
}

// reportPollErr logs a read failure once per distinct error value; the same
// error repeating tick after tick stays quiet.
func (s *Syncer) reportPollErr(err error) {
	msg := err.Error()
	s.mu.Lock()
	repeat := msg == s.lastPollErr
	s.lastPollErr = msg
	s.mu.Unlock()
	if !repeat {
		slog.Warn("clipboard poll failed", "err", err)
	}
}

func (s *Syncer) clearPollErr() {
	s.mu.Lock()
	s.lastPollErr = ""
	s.mu.Unlock()
}
