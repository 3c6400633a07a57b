package femglue

import "sync/atomic"

// Logger defines the interface for femglue logging.
// Messages carry structured key-value pairs:
//
//	logger.Info("config loaded", "path", path, "precision", cfg.Precision)
//
// The interface is satisfied by thin adapters around slog, zerolog, zap and
// similar libraries. The library itself logs nothing until SetLogger is called.
type Logger interface {
	// Info logs an informational message, e.g. a configuration file being loaded.
	Info(msg string, args ...any)

	// Error logs an error that was handled rather than returned.
	Error(msg string, args ...any)

	// Warn logs an unusual condition, e.g. falling back to default configuration.
	Warn(msg string, args ...any)

	// Debug logs detailed diagnostic information.
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

type loggerHolder struct{ Logger }

var packageLogger atomic.Pointer[loggerHolder]

// SetLogger installs the logger used by the package. A nil logger silences output.
func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	packageLogger.Store(&loggerHolder{l})
}

// GetLogger returns the logger installed with SetLogger.
func GetLogger() Logger {
	if h := packageLogger.Load(); h != nil {
		return h.Logger
	}
	return nopLogger{}
}
