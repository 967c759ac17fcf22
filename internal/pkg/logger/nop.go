package logger

import "fee_tracker/internal/app/port"

type nopLogger struct{}

// NewNop returns a port.Logger that discards everything. Used by tests.
func NewNop() port.Logger { return nopLogger{} }

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
