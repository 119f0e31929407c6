package hlog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Logger is a lightweight handle that emits records under one logger name
// through its Context, recording the caller's function, file and line.
type Logger struct {
	ctx  *Context
	name string
}

// Logger returns a handle for the named logger. The empty name is the root logger.
func (c *Context) Logger(name string) *Logger {
	return &Logger{ctx: c, name: name}
}

// Name returns the logger's dot-separated name.
func (l *Logger) Name() string {
	return l.name
}

// Child returns the logger named "<name>.<suffix>", or "<suffix>" for the root logger.
func (l *Logger) Child(suffix string) *Logger {
	if l.name == "" {
		return l.ctx.Logger(suffix)
	}
	return l.ctx.Logger(l.name + string(loggerSeparator) + suffix)
}

// SetLevel sets this logger's explicit threshold at runtime; UnsetIssuer
// makes it inherit from its ancestors again.
func (l *Logger) SetLevel(level Severity) error {
	return l.ctx.SetThreshold(l.name, level)
}

// GetLevel returns the effective threshold currently governing this logger.
func (l *Logger) GetLevel() Severity {
	level, err := l.ctx.GetEffectiveThreshold(l.name)
	if err != nil {
		return l.ctx.GetDefaultThreshold()
	}
	return level
}

// Enabled reports whether a record of the given severity would be emitted.
func (l *Logger) Enabled(level Severity) bool {
	return l.ctx.IsEnabledFor(l.name, level)
}

// Log emits a message at the given level. An optional Caller argument as the
// first parameter adds that many stack frames to skip when capturing the
// call site, which helps wrapper functions report their own caller.
//
// Example:
//
//	logger.Log(WarnIssuer, "disk almost full")
//	logger.Log(InfoIssuer, Caller(1), "message from a wrapper function")
func (l *Logger) Log(level Severity, msg ...any) {
	l.print(level, msg)
}

// Logf emits a formatted message at the given level.
func (l *Logger) Logf(level Severity, format string, args ...any) {
	l.output(0, level, format, args)
}

// Debug logs a debug-level message.
// An optional Caller argument may be provided as the first parameter to control the caller depth.
func (l *Logger) Debug(msg ...any) {
	l.print(DebugIssuer, msg)
}

// Debugf logs a formatted debug-level message.
//
// Example:
//
//	logger.Debugf("Debug value: %v", someValue)
func (l *Logger) Debugf(format string, args ...any) {
	l.output(0, DebugIssuer, format, args)
}

// Info logs an informational message.
// An optional Caller argument may be provided as the first parameter to control the caller depth.
func (l *Logger) Info(msg ...any) {
	l.print(InfoIssuer, msg)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.output(0, InfoIssuer, format, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg ...any) {
	l.print(WarnIssuer, msg)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.output(0, WarnIssuer, format, args)
}

// Error logs an error message.
func (l *Logger) Error(msg ...any) {
	l.print(ErrorIssuer, msg)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.output(0, ErrorIssuer, format, args)
}

// Fatal logs a fatal-level message. Unlike most loggers it neither panics nor
// exits; deciding to stop is left to the caller.
func (l *Logger) Fatal(msg ...any) {
	l.print(FatalIssuer, msg)
}

// Fatalf logs a formatted fatal-level message. It neither panics nor exits.
func (l *Logger) Fatalf(format string, args ...any) {
	l.output(0, FatalIssuer, format, args)
}

// print handles the msg ...any variants, where an optional leading Caller
// sets the extra skip depth. It must be called directly by an exported method.
func (l *Logger) print(level Severity, msg []any) {
	skip := 0
	if len(msg) > 0 {
		if depth, ok := msg[0].(Caller); ok {
			skip = int(depth)
			if skip < 0 {
				skip = 0
			} else if skip > 99 {
				skip = 99
			}
			msg = msg[1:]
		}
	}
	if len(msg) == 0 {
		return
	}
	// print adds one frame on top of output
	if len(msg) == 1 {
		if s, ok := msg[0].(string); ok {
			l.output(skip+1, level, "%s", []any{s})
			return
		}
	}
	l.output(skip+1, level, "%s", []any{fmt.Sprint(msg...)})
}

// output filters, captures the call site and dispatches. With skip 0 the
// reported call site is the caller of the exported method that called output.
func (l *Logger) output(skip int, level Severity, format string, args []any) {
	c := l.ctx
	if c == nil {
		return
	}
	c.autoInitialize()
	if !c.IsEnabledFor(l.name, level) {
		c.metrics.RecordFiltered(level.String())
		return
	}
	// skip [runtime.Caller, this function, the exported method]
	c.dispatch(callerLocation(skip+2), level, l.name, format, args)
}

// callerLocation captures the call site depth frames above its caller.
func callerLocation(depth int) *Location {
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return nil
	}
	loc := &Location{FileName: filepath.Base(file), LineNumber: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		loc.FunctionName = name[strings.LastIndexByte(name, '/')+1:]
	}
	return loc
}
