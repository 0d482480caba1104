package treechart

import (
	"fmt"
	"log"
)

// Logger defines an interface for writing log messages.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger struct{}

var _ Logger = DefaultLogger{}

// Infof implements the Logger.Infof interface.
func (DefaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, "[treechart] "+fmt.Sprintf(format, args...))
}

// Errorf implements the Logger.Errorf interface.
func (DefaultLogger) Errorf(format string, args ...interface{}) {
	_ = log.Output(2, "[treechart] ERROR: "+fmt.Sprintf(format, args...))
}

// NoopLogger discards everything.
type NoopLogger struct{}

// Infof implements the Logger.Infof interface.
func (NoopLogger) Infof(string, ...interface{}) {}

// Errorf implements the Logger.Errorf interface.
func (NoopLogger) Errorf(string, ...interface{}) {}
