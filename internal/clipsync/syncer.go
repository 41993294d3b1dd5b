package clipsync

import (
	"log/slog"
	"sync"
	"time"

	"github.com/glamberson/IronRDP/internal/clipdata"
	"github.com/glamberson/IronRDP/internal/focus"
	"github.com/glamberson/IronRDP/internal/platform"
)

// Reference timings from the original client. All overridable via Config.
const (
	defaultPollInterval    = 100 * time.Millisecond
	defaultRetryInterval   = 100 * time.Millisecond
	defaultRetryBudget     = 30
	defaultPostponeTimeout = time.Second
)

// Desktop is the outbound clipboard surface of the remote desktop session.
// The Syncer holds a single reference to it for its lifetime.
type Desktop interface {
	// ClipboardChanged delivers a non-empty clipboard-data object.
	ClipboardChanged(*clipdata.Data)
	// ClipboardChangedEmpty signals that there is nothing to share.
	ClipboardChangedEmpty()
}

// Config tunes the sync loops. Zero values select the reference defaults.
type Config struct {
	PollInterval    time.Duration // standard mode poll period
	RetryInterval   time.Duration // degraded mode retry-wait period
	RetryBudget     int           // degraded mode retry-wait firings per gesture
	PostponeTimeout time.Duration // degraded mode key-buffer release deadline
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = defaultRetryInterval
	}
	if c.RetryBudget <= 0 {
		c.RetryBudget = defaultRetryBudget
	}
	if c.PostponeTimeout <= 0 {
		c.PostponeTimeout = defaultPostponeTimeout
	}
	return c
}

// syncState holds the authoritative snapshots shared by both directions.
// Guarded by Syncer.mu; never partially updated mid-reconciliation.
type syncState struct {
	lastClient   clipdata.Snapshot // local contents as last pushed to the session
	lastReceived clipdata.Snapshot // session contents as last pulled in
	lastSent     *clipdata.Data    // most recent outbound payload, for force updates
}

// Syncer reconciles the local clipboard with the remote session's clipboard
// channel using the strategy selected by DetectMode.
type Syncer struct {
	mode    Mode
	clip    platform.Clipboard
	desktop Desktop
	keys    KeyForwarder
	fstate  focus.State
	gate    *focus.Gate
	cfg     Config

	// afterFunc schedules the retry-wait and key-postponement timers.
	// Replaced in tests to drive chains deterministically.
	afterFunc func(time.Duration, func()) *time.Timer

	mu          sync.Mutex
	state       syncState
	destroyed   bool
	lastPollErr string

	// Degraded-mode inbound: the most recent session payload awaiting a
	// user-gesture-driven write. Single holder; a newer payload replaces an
	// unconsumed older one.
	pending     *clipdata.Data
	retryGen    int
	retriesLeft int

	// Degraded-mode key postponement.
	buffering bool
	bufferGen int
	buffered  []KeyEvent

	done      chan struct{}
	closeOnce sync.Once
}

// New assembles a Syncer. keys may be nil when the host forwards input
// through another path; buffered replay is then dropped with a warning.
func New(mode Mode, clip platform.Clipboard, desktop Desktop, state focus.State, keys KeyForwarder, cfg Config) *Syncer {
	return &Syncer{
		mode:      mode,
		clip:      clip,
		desktop:   desktop,
		keys:      keys,
		fstate:    state,
		gate:      focus.NewGate(state),
		cfg:       cfg.withDefaults(),
		afterFunc: time.AfterFunc,
		done:      make(chan struct{}),
	}
}

// Mode returns the strategy selected at construction.
func (s *Syncer) Mode() Mode { return s.mode }

// Start launches the background work for the active strategy. Degraded and
// unsupported modes are purely event-driven and start nothing.
func (s *Syncer) Start() {
	if s.mode == ModeStandard {
		go s.pollLoop()
	}
}

// Close tears the Syncer down. Pending timers become no-ops; in-flight
// platform calls are not interrupted, their results are discarded.
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.destroyed = true
		s.mu.Unlock()
		close(s.done)
	})
}

// FocusGained drains the focus gate. The host calls this on every focus-gain
// event of its window.
func (s *Syncer) FocusGained() {
	s.gate.FocusGained()
}

// RemoteClipboardChanged handles a clipboard push from the session. In
// standard mode the payload is written to the local clipboard once focus
// allows; the received snapshot is recorded immediately so the next poll tick
// recognizes the value as remote-originated even before the deferred write
// runs. In degraded mode the payload is parked for the next copy gesture.
func (s *Syncer) RemoteClipboardChanged(d *clipdata.Data) {
	if s.mode == ModeUnsupported || d.IsEmpty() {
		return
	}

	if s.mode == ModeDegraded {
		s.mu.Lock()
		if !s.destroyed {
			s.pending = d
		}
		s.mu.Unlock()
		return
	}

	items := d.Items()
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.state.lastReceived = d.Snapshot()
	s.mu.Unlock()

	logItems("clipboard received from session", items)
	s.gate.RunWhenFocused(func() {
		if err := s.clip.Write(items); err != nil {
			slog.Warn("local clipboard write failed", "err", err)
		}
	})
}

// ForceClipboardUpdate re-sends the most recently transmitted payload, or an
// explicit empty notification when nothing has been sent yet. Failures are
// logged, never propagated.
func (s *Syncer) ForceClipboardUpdate() {
	if s.mode == ModeUnsupported {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("force clipboard update failed", "panic", r)
		}
	}()

	s.mu.Lock()
	last := s.state.lastSent
	s.mu.Unlock()

	if last != nil {
		s.desktop.ClipboardChanged(last)
	} else {
		s.desktop.ClipboardChangedEmpty()
	}
}

// sendOutbound records d as the last-sent payload and notifies the session.
// Empty payloads are never sent.
func (s *Syncer) sendOutbound(d *clipdata.Data) {
	if d.IsEmpty() {
		return
	}
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.state.lastSent = d
	s.mu.Unlock()

	logItems("clipboard sent to session", d.Items())
	s.desktop.ClipboardChanged(d)
}

func (s *Syncer) forwardKey(ev KeyEvent) {
	if s.keys == nil {
		slog.Warn("no key forwarder configured, dropping key event", "key", ev.Key)
		return
	}
	s.keys.ForwardKey(ev)
}

// Status is a point-in-time view of the Syncer, reported over the local IPC
// socket.
type Status struct {
	Mode              string   `json:"mode"`
	Backend           string   `json:"backend"`
	LastSentTypes     []string `json:"last_sent_types,omitempty"`
	LastReceivedTypes []string `json:"last_received_types,omitempty"`
	PendingWrite      bool     `json:"pending_write"`
}

// Status reports the current sync state.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Mode:         s.mode.String(),
		Backend:      s.clip.Name(),
		PendingWrite: s.pending != nil || s.gate.Pending() > 0,
	}
	for _, it := range s.state.lastSent.Items() {
		st.LastSentTypes = append(st.LastSentTypes, it.MIME)
	}
	for mime := range s.state.lastReceived {
		st.LastReceivedTypes = append(st.LastReceivedTypes, mime)
	}
	return st
}
