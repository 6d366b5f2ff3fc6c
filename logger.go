package playerpool

import (
	"fmt"
	"os"
	"time"

	"github.com/nikitachicherindev/playerpool/internal/domain"
)

// DefaultLogger prints diagnostics to the standard streams, filtered by a
// minimum severity. NewPool and NewCollection install one at info level when
// a config carries no Logger.
type DefaultLogger struct {
	level domain.LogLevel
}

// NewDefaultLogger creates a logger that prints messages at or above level.
func NewDefaultLogger(level domain.LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

var severity = map[domain.LogLevel]int{
	domain.LogLevelDebug: 0,
	domain.LogLevelInfo:  1,
	domain.LogLevelWarn:  2,
	domain.LogLevelError: 3,
}

func (l *DefaultLogger) enabled(level domain.LogLevel) bool {
	return severity[level] >= severity[l.level]
}

func (l *DefaultLogger) print(w *os.File, level domain.LogLevel, msg string) {
	fmt.Fprintf(w, "[PLAYERPOOL-%s] %s: %s\n",
		time.Now().Format(time.RFC3339), level, msg)
}

// Debug prints msg when the logger runs at debug level.
func (l *DefaultLogger) Debug(msg string) {
	if l.enabled(domain.LogLevelDebug) {
		l.print(os.Stdout, domain.LogLevelDebug, msg)
	}
}

// Info prints msg at debug and info levels.
func (l *DefaultLogger) Info(msg string) {
	if l.enabled(domain.LogLevelInfo) {
		l.print(os.Stdout, domain.LogLevelInfo, msg)
	}
}

// Warn prints msg at every level except error.
func (l *DefaultLogger) Warn(msg string) {
	if l.enabled(domain.LogLevelWarn) {
		l.print(os.Stdout, domain.LogLevelWarn, msg)
	}
}

// Error prints err to stderr regardless of the configured level.
func (l *DefaultLogger) Error(err error) {
	l.print(os.Stderr, domain.LogLevelError, err.Error())
}
