package hlog

import (
	"strconv"
	"strings"
	"time"
)

// renderer carries the per-context settings tokens need while expanding.
type renderer struct {
	severityNames []string
	timeFormat    string
	useUTC        bool
}

var defaultRenderer = renderer{severityNames: defaultSeverityNames}

type tokenFunc func(rd *renderer, b *buffer, r *Record) error

// tokens lists every placeholder the expander substitutes. Anything else in
// braces is copied through as literal text.
var tokens = map[string]tokenFunc{
	"severity": func(rd *renderer, b *buffer, r *Record) error {
		return b.writeString(rd.label(r.Severity))
	},
	"name": func(_ *renderer, b *buffer, r *Record) error {
		return b.writeString(r.Name)
	},
	"message": func(_ *renderer, b *buffer, r *Record) error {
		return b.writeString(r.Message)
	},
	"function_name": func(_ *renderer, b *buffer, r *Record) error {
		if r.Location == nil {
			return nil
		}
		return b.writeString(r.Location.FunctionName)
	},
	"file_name": func(_ *renderer, b *buffer, r *Record) error {
		if r.Location == nil {
			return nil
		}
		return b.writeString(r.Location.FileName)
	},
	"line_number": func(_ *renderer, b *buffer, r *Record) error {
		var scratch [20]byte
		line := 0
		if r.Location != nil {
			line = r.Location.LineNumber
		}
		return b.write(strconv.AppendInt(scratch[:0], int64(line), 10))
	},
	"time": func(rd *renderer, b *buffer, r *Record) error {
		var scratch [64]byte
		t := r.Time
		if rd.timeFormat != "" {
			if rd.useUTC {
				t = t.UTC()
			}
			return b.write(t.AppendFormat(scratch[:0], rd.timeFormat))
		}
		return b.write(appendSeconds(scratch[:0], t))
	},
	"time_as_nanoseconds": func(_ *renderer, b *buffer, r *Record) error {
		var scratch [20]byte
		return b.write(strconv.AppendInt(scratch[:0], r.Time.UnixNano(), 10))
	},
}

// appendSeconds renders t as Unix seconds with a nine digit fraction.
func appendSeconds(dst []byte, t time.Time) []byte {
	ns := t.UnixNano()
	sign := ""
	if ns < 0 {
		sign = "-"
		ns = -ns
	}
	dst = append(dst, sign...)
	dst = strconv.AppendInt(dst, ns/int64(time.Second), 10)
	dst = append(dst, '.')
	frac := ns % int64(time.Second)
	for div := int64(time.Second / 10); div > 0; div /= 10 {
		dst = append(dst, byte('0'+frac/div%10))
	}
	return dst
}

func (rd *renderer) label(s Severity) string {
	if i, ok := severityIndex(s); ok && i < len(rd.severityNames) {
		return rd.severityNames[i]
	}
	return s.String()
}

// expand renders tmpl against r into b in a single left-to-right pass.
// On error the content of b is undefined and must be discarded.
func (rd *renderer) expand(b *buffer, tmpl string, r *Record) error {
	for i := 0; i < len(tmpl); {
		open := indexByte(tmpl, '{', i)
		if open < 0 {
			return b.writeString(tmpl[i:])
		}
		if err := b.writeString(tmpl[i:open]); err != nil {
			return err
		}
		end := indexByte(tmpl, '}', open+1)
		if end < 0 {
			return b.writeString(tmpl[open:])
		}
		fn, ok := tokens[tmpl[open+1:end]]
		if !ok {
			// not a token: keep the brace and rescan from the next byte
			if err := b.writeByte('{'); err != nil {
				return err
			}
			i = open + 1
			continue
		}
		if err := fn(rd, b, r); err != nil {
			return err
		}
		i = end + 1
	}
	return nil
}

// indexByte is strings.IndexByte starting at from, returning an absolute index.
func indexByte(s string, c byte, from int) int {
	if i := strings.IndexByte(s[from:], c); i >= 0 {
		return from + i
	}
	return -1
}

// Render expands format against r with the default labels and the pooled
// allocator, returning the rendered line without a trailing newline.
//
// Example:
//
//	line, err := Render("{severity}-{name}", &Record{Severity: WarnIssuer, Name: "n"}) // "WARN-n"
func Render(format string, r *Record) (string, error) {
	return defaultRenderer.render(DefaultAllocator(), format, r)
}

func (rd *renderer) render(alloc Allocator, format string, r *Record) (string, error) {
	b := getBuffer(alloc)
	defer putBuffer(b)
	if err := rd.expand(b, format, r); err != nil {
		return "", err
	}
	return string(b.bytes()), nil
}
