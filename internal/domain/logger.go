package domain

// LogLevel determines which messages a Logger outputs based on severity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Logger receives diagnostics from the pool, slot controllers and collection.
//
// The library treats logging as best-effort: misuse conditions such as a
// double release are logged and ignored rather than surfaced as errors, so a
// production collection is never crashed over a bookkeeping slip.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
