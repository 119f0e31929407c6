package hlog

// Default is the process-wide Context used by the package-level functions.
// It writes DEBUG and INFO lines to os.Stdout, everything else to os.Stderr,
// and initialises itself from the environment on first use.
var Default = New()

// Initialize initialises the Default context. See Context.Initialize.
func Initialize() error {
	return Default.Initialize()
}

// Shutdown returns the Default context to its uninitialised state.
func Shutdown() error {
	return Default.Shutdown()
}

// Emit logs through the Default context. See Context.Emit.
func Emit(loc *Location, severity Severity, name, format string, args ...any) {
	Default.Emit(loc, severity, name, format, args...)
}

// SetDefaultThreshold sets the default threshold of the Default context.
func SetDefaultThreshold(level Severity) {
	Default.SetDefaultThreshold(level)
}

// GetDefaultThreshold returns the default threshold of the Default context.
func GetDefaultThreshold() Severity {
	return Default.GetDefaultThreshold()
}

// SetThreshold sets a logger threshold on the Default context.
func SetThreshold(name string, level Severity) error {
	return Default.SetThreshold(name, level)
}

// GetThreshold returns a logger's explicit threshold on the Default context.
func GetThreshold(name string) (Severity, error) {
	return Default.GetThreshold(name)
}

// GetEffectiveThreshold resolves a logger's threshold on the Default context.
func GetEffectiveThreshold(name string) (Severity, error) {
	return Default.GetEffectiveThreshold(name)
}

// IsEnabledFor reports whether the Default context would emit the record.
func IsEnabledFor(name string, severity Severity) bool {
	return Default.IsEnabledFor(name, severity)
}

// InstallHandler replaces the output handler of the Default context.
func InstallHandler(h Handler) {
	Default.InstallHandler(h)
}

// GetHandler returns the output handler of the Default context.
func GetHandler() Handler {
	return Default.GetHandler()
}

// Get returns a Logger for name on the Default context.
func Get(name string) *Logger {
	return Default.Logger(name)
}

// Debugf logs a formatted debug-level message on the root logger of the Default context.
func Debugf(format string, args ...any) {
	root().output(0, DebugIssuer, format, args)
}

// Infof logs a formatted informational message on the root logger of the Default context.
func Infof(format string, args ...any) {
	root().output(0, InfoIssuer, format, args)
}

// Warnf logs a formatted warning message on the root logger of the Default context.
func Warnf(format string, args ...any) {
	root().output(0, WarnIssuer, format, args)
}

// Errorf logs a formatted error message on the root logger of the Default context.
func Errorf(format string, args ...any) {
	root().output(0, ErrorIssuer, format, args)
}

// Fatalf logs a formatted fatal-level message on the root logger of the Default context.
func Fatalf(format string, args ...any) {
	root().output(0, FatalIssuer, format, args)
}

func root() *Logger {
	return &Logger{ctx: Default}
}
