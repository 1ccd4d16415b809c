package logger

// NoOpLogger discards every entry. Fatal does not exit.
type NoOpLogger struct{}

// Discard is a ready-to-use NoOpLogger instance.
var Discard Logger = NoOpLogger{}

var _ Logger = NoOpLogger{}

func (NoOpLogger) Debug(string, map[string]interface{}) {}
func (NoOpLogger) Info(string, map[string]interface{})  {}
func (NoOpLogger) Warn(string, map[string]interface{})  {}
func (NoOpLogger) Error(string, map[string]interface{}) {}
func (NoOpLogger) Fatal(string, map[string]interface{}) {}

// WithField returns the receiver unchanged.
func (l NoOpLogger) WithField(string, interface{}) Logger { return l }

// WithFields returns the receiver unchanged.
func (l NoOpLogger) WithFields(map[string]interface{}) Logger { return l }

// Sync has nothing to flush.
func (NoOpLogger) Sync() error { return nil }
