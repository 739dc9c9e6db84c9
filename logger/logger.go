// Package logger holds the process-wide logger the library writes to.
// The default is a no-op logger, so importing applications see nothing
// unless they install one:
//
//	l, _ := zap.NewDevelopment()
//	logger.Set(l)
package logger

import "go.uber.org/zap"

var log = zap.NewNop()

// Set replaces the package logger. Passing nil restores the no-op logger.
// Call it once at startup, before using the library from multiple
// goroutines.
func Set(l *zap.Logger) {
	if l == nil {
		log = zap.NewNop()
		return
	}
	log = l
}

// L returns the current logger
func L() *zap.Logger {
	return log
}

// S returns the current logger in sugared form
func S() *zap.SugaredLogger {
	return log.Sugar()
}
