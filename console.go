package hlog

import (
	"io"

	"github.com/sivaosorg/hlog/metrics"
)

// Console is the default Handler. DEBUG and INFO records go to the primary
// stream, WARN, ERROR and FATAL records to the diagnostic stream, each
// rendered with the owning Context's output template and terminated by a
// newline.
type Console struct {
	ctx    *Context
	stdout io.Writer
	stderr io.Writer
}

// NewConsole creates a console handler bound to c, writing to the streams
// configured with WithWriters (os.Stdout and os.Stderr by default).
func NewConsole(c *Context) *Console {
	return &Console{ctx: c, stdout: c.stdout, stderr: c.stderr}
}

// Handle renders r and writes it to the stream selected by its severity.
// Records with an unknown severity are reported as diagnostics and dropped.
func (h *Console) Handle(r *Record) {
	var w io.Writer
	switch r.Severity {
	case DebugIssuer, InfoIssuer:
		w = h.stdout
	case WarnIssuer, ErrorIssuer, FatalIssuer:
		w = h.stderr
	default:
		h.ctx.diag.Error("unknown severity level", "severity", int(r.Severity), "logger", r.Name)
		h.ctx.metrics.RecordDropped(r.Severity.String(), metrics.ReasonUnknownSeverity)
		return
	}

	b := getBuffer(h.ctx.allocator)
	defer putBuffer(b)

	rd := h.ctx.renderer()
	err := rd.expand(b, h.ctx.outputFormat, r)
	if err == nil {
		err = b.writeByte('\n')
	}
	if err != nil {
		h.ctx.diag.Error("failed to render log record", "logger", r.Name, "error", err)
		h.ctx.metrics.RecordDropped(r.Severity.String(), metrics.ReasonRender)
		return
	}

	// Write the line to the selected writer with locking if available.
	if lock, ok := w.(locker); ok {
		lock.Lock()
		defer lock.Unlock()
	}
	if _, err := w.Write(b.bytes()); err != nil {
		h.ctx.diag.Error("failed to write log record", "logger", r.Name, "error", err)
		h.ctx.metrics.RecordDropped(r.Severity.String(), metrics.ReasonWrite)
	}
}

// UpdateWriters safely replaces both output streams.
// If a current writer and its replacement both implement the locker interface
// but are not the same, the update is rejected (returns false) to avoid locking
// mismatches. Current writers are locked (if possible) during the update.
//
// Returns:
//   - true if the writers were successfully updated.
//   - false if either writer is nil or the locking behavior is incompatible.
func (h *Console) UpdateWriters(stdout, stderr io.Writer) bool {
	if stdout == nil || stderr == nil {
		return false
	}
	if !compatibleLockers(h.stdout, stdout) || !compatibleLockers(h.stderr, stderr) {
		return false
	}
	if outLock, ok := h.stdout.(locker); ok {
		outLock.Lock()
		defer outLock.Unlock()
	}
	if errLock, ok := h.stderr.(locker); ok && !sameLocker(h.stdout, h.stderr) {
		errLock.Lock()
		defer errLock.Unlock()
	}
	h.stdout, h.stderr = stdout, stderr
	return true
}

func compatibleLockers(current, next io.Writer) bool {
	currentLocker, hasLock := current.(locker)
	newLocker, newHasLock := next.(locker)
	return !hasLock || !newHasLock || currentLocker == newLocker
}

func sameLocker(a, b io.Writer) bool {
	la, ok := a.(locker)
	if !ok {
		return false
	}
	lb, ok := b.(locker)
	return ok && la == lb
}
