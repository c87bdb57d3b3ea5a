package logger

// Logger is the structured logging contract shared by all components.
// The component tag identifies the emitting subsystem ("pipeline",
// "capture", "catalog", ...).
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type nopLogger struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(component, message string, fields map[string]interface{})   {}
func (nopLogger) Info(component, message string, fields map[string]interface{})    {}
func (nopLogger) Warning(component, message string, fields map[string]interface{}) {}
func (nopLogger) Error(component string, err error, fields map[string]interface{}) {}
