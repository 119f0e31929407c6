package hlog

// Predefined severity levels for logging. The numeric values leave room between
// levels and define both the filtering order and the label table index.
const (
	// UnsetIssuer marks a logger without an explicit threshold; it never filters.
	UnsetIssuer Severity = 0

	// DebugIssuer represents debug-level messages for development diagnostics
	DebugIssuer Severity = 10

	// InfoIssuer indicates normal operational messages for tracking progress
	InfoIssuer Severity = 20

	// WarnIssuer signifies potential issues that don't disrupt core functionality
	WarnIssuer Severity = 30

	// ErrorIssuer denotes failures in specific operations or components
	ErrorIssuer Severity = 40

	// FatalIssuer represents critical errors the application cannot recover from
	FatalIssuer Severity = 50

	// DisableIssuer is a threshold-only level that silences a logger and its descendants
	DisableIssuer Severity = 60
)

const (
	// DefaultOutputFormat is the console template used when none is configured.
	DefaultOutputFormat = "[{severity}] [{name}]: {message} ({function_name}() at {file_name}:{line_number})"

	// EnvOutputFormat names the environment variable that seeds the console template.
	EnvOutputFormat = "HLOG_CONSOLE_OUTPUT_FORMAT"

	// EnvDefaultSeverity names the environment variable that seeds the default threshold.
	EnvDefaultSeverity = "HLOG_DEFAULT_SEVERITY"

	// InitialBufferSize is the fixed capacity used for messages and rendered
	// lines before any heap growth happens.
	InitialBufferSize = 1024

	// loggerSeparator splits logger names into ancestor segments.
	loggerSeparator = '.'
)

// defaultSeverityNames holds the labels rendered by the {severity} token, in
// Debug, Info, Warn, Error, Fatal order.
var defaultSeverityNames = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
