package hlog

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// thresholdRegistry holds the explicit per-logger thresholds. Absence of an
// entry means the logger inherits from its ancestors.
type thresholdRegistry struct {
	entries *xsync.MapOf[string, Severity]
}

func newThresholdRegistry() *thresholdRegistry {
	return &thresholdRegistry{entries: xsync.NewMapOf[string, Severity]()}
}

func (r *thresholdRegistry) set(name string, level Severity) {
	if level == UnsetIssuer {
		r.entries.Delete(name)
		return
	}
	r.entries.Store(name, level)
}

func (r *thresholdRegistry) get(name string) (Severity, error) {
	level, ok := r.entries.Load(name)
	if !ok {
		return UnsetIssuer, nil
	}
	if level == UnsetIssuer || !level.IsThreshold() {
		return UnsetIssuer, errors.Wrapf(ErrRegistryCorruption, "logger %q holds severity %d", name, int(level))
	}
	return level, nil
}

func (r *thresholdRegistry) size() int {
	return r.entries.Size()
}

func (r *thresholdRegistry) clear() {
	r.entries.Clear()
}

// validateName rejects names that could never come from a C-style string and
// would otherwise be silently truncated by downstream consumers.
func validateName(name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return errors.Wrapf(ErrInvalidArgument, "logger name %q contains a NUL byte", name)
	}
	return nil
}

// SetThreshold sets the explicit threshold of the named logger. An empty name
// sets the default threshold instead. Setting UnsetIssuer removes the explicit
// entry so the logger inherits again.
func (c *Context) SetThreshold(name string, level Severity) error {
	if c == nil {
		return errors.Wrap(ErrInvalidArgument, "nil logging context")
	}
	c.autoInitialize()
	if err := validateName(name); err != nil {
		return err
	}
	if !level.IsThreshold() {
		return errors.Wrapf(ErrInvalidArgument, "invalid severity threshold %d", int(level))
	}
	if name == "" {
		if level == UnsetIssuer {
			return errors.Wrap(ErrInvalidArgument, "the default threshold cannot be unset")
		}
		c.defaultThreshold = level
		return nil
	}
	c.registry.set(name, level)
	return nil
}

// GetThreshold returns the explicit threshold of the named logger, UnsetIssuer
// when none is set, or the default threshold for the empty name. Ancestors are
// not consulted.
func (c *Context) GetThreshold(name string) (Severity, error) {
	if c == nil {
		return UnsetIssuer, errors.Wrap(ErrInvalidArgument, "nil logging context")
	}
	c.autoInitialize()
	if err := validateName(name); err != nil {
		return UnsetIssuer, err
	}
	if name == "" {
		return c.defaultThreshold, nil
	}
	return c.registry.get(name)
}

// GetEffectiveThreshold resolves the threshold that governs the named logger:
// its own explicit threshold if set, otherwise the one of its closest ancestor
// ("a.b" then "a" for "a.b.c"), otherwise the default threshold.
//
// Consecutive dots produce empty segments: the ancestors of "a..b" are "a."
// and "a". An empty prefix (from a leading dot) is the root logger.
func (c *Context) GetEffectiveThreshold(name string) (Severity, error) {
	if c == nil {
		return UnsetIssuer, errors.Wrap(ErrInvalidArgument, "nil logging context")
	}
	c.autoInitialize()
	if err := validateName(name); err != nil {
		return UnsetIssuer, err
	}
	for prefix := name; prefix != ""; {
		level, err := c.registry.get(prefix)
		if err != nil {
			return UnsetIssuer, err
		}
		if level != UnsetIssuer {
			return level, nil
		}
		i := strings.LastIndexByte(prefix, loggerSeparator)
		if i < 0 {
			break
		}
		prefix = prefix[:i]
	}
	return c.defaultThreshold, nil
}

// IsEnabledFor reports whether a record of the given severity from the named
// logger passes the filter. If the threshold cannot be resolved the default
// threshold applies.
func (c *Context) IsEnabledFor(name string, severity Severity) bool {
	if c == nil {
		return false
	}
	threshold, err := c.GetEffectiveThreshold(name)
	if err != nil {
		threshold = c.defaultThreshold
	}
	return severity >= threshold
}
