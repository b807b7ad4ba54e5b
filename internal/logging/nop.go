package logging

// NopLogger discards everything. Tests use it to keep output quiet.
type NopLogger struct{}

// NewNopLogger returns a Logger that drops all messages.
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}

func (n NopLogger) WithError(error) Logger { return n }

func (n NopLogger) WithField(string, interface{}) Logger { return n }
