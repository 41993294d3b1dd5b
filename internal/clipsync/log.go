package clipsync

import (
	"context"
	"log/slog"

	"github.com/glamberson/IronRDP/internal/clipdata"
)

// logItems logs a clipboard transfer at INFO (MIME types only) and DEBUG
// (text preview up to 120 chars, byte size for binary items).
func logItems(event string, items []clipdata.Item) {
	mimes := make([]string, len(items))
	for i, it := range items {
		mimes[i] = it.MIME
	}
	slog.Info(event, "types", mimes)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, it := range items {
		if it.Value.Kind == clipdata.KindText {
			preview := it.Value.Text
			if len(preview) > 120 {
				preview = preview[:120] + "…"
			}
			slog.Debug("clipboard item", "mime", it.MIME, "preview", preview)
		} else {
			slog.Debug("clipboard item", "mime", it.MIME, "size_bytes", len(it.Value.Bytes))
		}
	}
}
