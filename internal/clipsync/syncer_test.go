package clipsync

import (
	"sync"
	"time"

	"testing"

	"github.com/glamberson/IronRDP/internal/clipdata"
	"github.com/glamberson/IronRDP/internal/platform"
)

// fakeClipboard is a scriptable platform.Clipboard.
type fakeClipboard struct {
	mu           sync.Mutex
	caps         platform.Caps
	items        []clipdata.Item
	readErr      error
	writes       [][]clipdata.Item
	textWrites   []string
	writeTextErr error
}

func (f *fakeClipboard) Name() string { return "fake" }

func (f *fakeClipboard) Caps() platform.Caps { return f.caps }

func (f *fakeClipboard) ReadAll() ([]clipdata.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, f.readErr
}

func (f *fakeClipboard) Write(items []clipdata.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, items)
	return nil
}

func (f *fakeClipboard) WriteText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeTextErr != nil {
		return f.writeTextErr
	}
	f.textWrites = append(f.textWrites, text)
	return nil
}

func (f *fakeClipboard) Close() {}

func (f *fakeClipboard) setItems(items ...clipdata.Item) {
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
}

// fakeDesktop records outbound notifications.
type fakeDesktop struct {
	mu      sync.Mutex
	sent    []*clipdata.Data
	empties int
}

func (f *fakeDesktop) ClipboardChanged(d *clipdata.Data) {
	f.mu.Lock()
	f.sent = append(f.sent, d)
	f.mu.Unlock()
}

func (f *fakeDesktop) ClipboardChangedEmpty() {
	f.mu.Lock()
	f.empties++
	f.mu.Unlock()
}

func (f *fakeDesktop) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeDesktop) lastSent() *clipdata.Data {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

// fakeFocus is a settable focus.State.
type fakeFocus struct{ focused bool }

func (f *fakeFocus) Focused() bool { return f.focused }

// keyRecorder captures forwarded key events.
type keyRecorder struct {
	mu   sync.Mutex
	keys []KeyEvent
}

func (r *keyRecorder) ForwardKey(ev KeyEvent) {
	r.mu.Lock()
	r.keys = append(r.keys, ev)
	r.mu.Unlock()
}

func (r *keyRecorder) forwarded() []KeyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]KeyEvent(nil), r.keys...)
}

// timerStub captures scheduled timer callbacks so tests can fire them
// deterministically.
type timerStub struct {
	mu    sync.Mutex
	queue []func()
}

func (ts *timerStub) afterFunc(_ time.Duration, f func()) *time.Timer {
	ts.mu.Lock()
	ts.queue = append(ts.queue, f)
	ts.mu.Unlock()
	return nil
}

// fireNext pops and runs the oldest scheduled callback. Returns false when
// nothing is scheduled.
func (ts *timerStub) fireNext() bool {
	ts.mu.Lock()
	if len(ts.queue) == 0 {
		ts.mu.Unlock()
		return false
	}
	f := ts.queue[0]
	ts.queue = ts.queue[1:]
	ts.mu.Unlock()
	f()
	return true
}

func (ts *timerStub) scheduled() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.queue)
}

type testRig struct {
	syncer  *Syncer
	clip    *fakeClipboard
	desktop *fakeDesktop
	focus   *fakeFocus
	keys    *keyRecorder
	timers  *timerStub
}

func newTestRig(t *testing.T, mode Mode, cfg Config) *testRig {
	t.Helper()
	rig := &testRig{
		clip:    &fakeClipboard{caps: platform.Caps{Read: true, Write: true, WriteText: true}},
		desktop: &fakeDesktop{},
		focus:   &fakeFocus{focused: true},
		keys:    &keyRecorder{},
		timers:  &timerStub{},
	}
	rig.syncer = New(mode, rig.clip, rig.desktop, rig.focus, rig.keys, cfg)
	rig.syncer.afterFunc = rig.timers.afterFunc
	t.Cleanup(rig.syncer.Close)
	return rig
}

func textItem(mime, s string) clipdata.Item {
	return clipdata.Item{MIME: mime, Value: clipdata.TextValue(s)}
}

func imageItem(mime string, b []byte) clipdata.Item {
	return clipdata.Item{MIME: mime, Value: clipdata.BinaryValue(b)}
}

func textData(mime, s string) *clipdata.Data {
	d := clipdata.New()
	d.AddText(mime, s)
	return d
}

func TestForceClipboardUpdate_ResendsLastSent(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t, ModeStandard, Config{})
	rig.clip.setItems(textItem("text/plain", "hello"))
	rig.syncer.pollOnce()
	if rig.desktop.sentCount() != 1 {
		t.Fatalf("sent = %d, want 1", rig.desktop.sentCount())
	}

	rig.syncer.ForceClipboardUpdate()
	if rig.desktop.sentCount() != 2 {
		t.Fatalf("sent after force = %d, want 2", rig.desktop.sentCount())
	}
	if !rig.desktop.lastSent().Snapshot().Equal(clipdata.Snapshot{"text/plain": clipdata.TextValue("hello")}) {
		t.Errorf("force update resent %v, want hello", rig.desktop.lastSent().Snapshot())
	}
	if rig.desktop.empties != 0 {
		t.Errorf("empties = %d, want 0", rig.desktop.empties)
	}
}

func TestForceClipboardUpdate_EmptyWhenNothingSent(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t, ModeStandard, Config{})
	rig.syncer.ForceClipboardUpdate()

	if rig.desktop.sentCount() != 0 {
		t.Errorf("sent = %d, want 0", rig.desktop.sentCount())
	}
	if rig.desktop.empties != 1 {
		t.Errorf("empties = %d, want 1", rig.desktop.empties)
	}
}

func TestUnsupportedMode_AllClipboardCallsNoOp(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t, ModeUnsupported, Config{})

	rig.syncer.RemoteClipboardChanged(textData("text/plain", "x"))
	rig.syncer.HandlePaste([]clipdata.Item{textItem("text/plain", "x")})
	rig.syncer.ForceClipboardUpdate()

	if rig.desktop.sentCount() != 0 || rig.desktop.empties != 0 {
		t.Errorf("desktop touched: sent=%d empties=%d", rig.desktop.sentCount(), rig.desktop.empties)
	}
	if len(rig.clip.writes) != 0 {
		t.Errorf("clipboard written %d times, want 0", len(rig.clip.writes))
	}

	// Key events still pass through.
	rig.syncer.HandleKey(KeyEvent{Key: "a", Down: true})
	if got := rig.keys.forwarded(); len(got) != 1 || got[0].Key != "a" {
		t.Errorf("forwarded = %v, want [a]", got)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t, ModeStandard, Config{})
	rig.clip.setItems(textItem("text/plain", "hello"))
	rig.syncer.pollOnce()
	rig.syncer.RemoteClipboardChanged(textData("text/plain", "from-remote"))

	st := rig.syncer.Status()
	if st.Mode != "standard" {
		t.Errorf("Mode = %q, want standard", st.Mode)
	}
	if len(st.LastSentTypes) != 1 || st.LastSentTypes[0] != "text/plain" {
		t.Errorf("LastSentTypes = %v, want [text/plain]", st.LastSentTypes)
	}
	if len(st.LastReceivedTypes) != 1 || st.LastReceivedTypes[0] != "text/plain" {
		t.Errorf("LastReceivedTypes = %v, want [text/plain]", st.LastReceivedTypes)
	}
}
