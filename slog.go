package hlog

import (
	"context"
	"io"
	"log/slog"

	"github.com/phsym/console-slog"
)

// SlogHandler forwards admitted records to a slog.Handler, so hlog
// thresholds can front any slog backend. The logger name and, when known, the
// call site travel as attributes.
type SlogHandler struct {
	handler slog.Handler
}

// NewSlogHandler wraps h. A nil h falls back to the handler of slog.Default().
func NewSlogHandler(h slog.Handler) *SlogHandler {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &SlogHandler{handler: h}
}

// NewConsoleSlogHandler builds a SlogHandler over a colourised console-slog
// handler writing to w. hlog thresholds do the filtering, so every slog level
// is enabled.
func NewConsoleSlogHandler(w io.Writer) *SlogHandler {
	return NewSlogHandler(console.NewHandler(w, &console.HandlerOptions{Level: slog.LevelDebug}))
}

// Handle converts r to a slog.Record and passes it on.
func (h *SlogHandler) Handle(r *Record) {
	ctx := context.Background()
	level := toSlogLevel(r.Severity)
	if !h.handler.Enabled(ctx, level) {
		return
	}
	rec := slog.NewRecord(r.Time, level, r.Message, 0)
	rec.AddAttrs(slog.String("logger", r.Name))
	if r.Location != nil {
		rec.AddAttrs(
			slog.String("function", r.Location.FunctionName),
			slog.String("file", r.Location.FileName),
			slog.Int("line", r.Location.LineNumber),
		)
	}
	_ = h.handler.Handle(ctx, rec)
}

// toSlogLevel maps hlog severities onto slog levels; FATAL sits above ERROR.
func toSlogLevel(s Severity) slog.Level {
	switch {
	case s <= DebugIssuer:
		return slog.LevelDebug
	case s <= InfoIssuer:
		return slog.LevelInfo
	case s <= WarnIssuer:
		return slog.LevelWarn
	case s <= ErrorIssuer:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}
