package clipsync

import (
	"testing"

	"github.com/glamberson/IronRDP/internal/platform"
)

func TestDetectMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		caps platform.Caps
		want Mode
	}{
		{"full access", platform.Caps{Read: true, Write: true, WriteText: true}, ModeStandard},
		{"read and write without text helper", platform.Caps{Read: true, Write: true}, ModeStandard},
		{"write-only text", platform.Caps{WriteText: true}, ModeDegraded},
		{"read without write", platform.Caps{Read: true}, ModeUnsupported},
		{"write without read", platform.Caps{Write: true, WriteText: true}, ModeDegraded},
		{"nothing", platform.Caps{}, ModeUnsupported},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectMode(&fakeClipboard{caps: tt.caps}); got != tt.want {
				t.Errorf("DetectMode(%+v) = %v, want %v", tt.caps, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if ModeStandard.String() != "standard" || ModeDegraded.String() != "degraded" || ModeUnsupported.String() != "unsupported" {
		t.Error("mode names changed")
	}
}
