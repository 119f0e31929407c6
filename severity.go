package hlog

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// String returns the uppercase name of the severity, "UNSET" and "DISABLE"
// for the threshold-only values, or the decimal value for anything else.
func (s Severity) String() string {
	switch s {
	case UnsetIssuer:
		return "UNSET"
	case DisableIssuer:
		return "DISABLE"
	}
	if i, ok := severityIndex(s); ok {
		return defaultSeverityNames[i]
	}
	return strconv.Itoa(int(s))
}

// IsLevel reports whether s is one of the five record severities.
func (s Severity) IsLevel() bool {
	_, ok := severityIndex(s)
	return ok
}

// IsThreshold reports whether s may be stored as a logger threshold.
func (s Severity) IsThreshold() bool {
	return s == UnsetIssuer || s == DisableIssuer || s.IsLevel()
}

// severityIndex maps a record severity to its position in the label table.
func severityIndex(s Severity) (int, bool) {
	if s < DebugIssuer || s > FatalIssuer || s%10 != 0 {
		return 0, false
	}
	return int(s/10) - 1, true
}

// ParseSeverity parses a severity name (case-insensitive) or its numeric value.
//
// Example:
//
//	level, err := ParseSeverity("warn") // WarnIssuer
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unset", "":
		return UnsetIssuer, nil
	case "debug":
		return DebugIssuer, nil
	case "info":
		return InfoIssuer, nil
	case "warn", "warning":
		return WarnIssuer, nil
	case "error", "err":
		return ErrorIssuer, nil
	case "fatal":
		return FatalIssuer, nil
	case "disable", "off":
		return DisableIssuer, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Severity(n).IsThreshold() {
		return UnsetIssuer, errors.Wrapf(ErrInvalidArgument, "unknown severity %q", s)
	}
	return Severity(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SetValue lets cleanenv fill a Severity field from an environment variable.
func (s *Severity) SetValue(value string) error {
	return s.UnmarshalText([]byte(value))
}

// UnmarshalYAML decodes a severity written either as a name or a number.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Wrapf(ErrInvalidArgument, "severity at line %d must be a scalar", value.Line)
	}
	return s.UnmarshalText([]byte(value.Value))
}
