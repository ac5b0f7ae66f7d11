package port

// Fields carries structured key/value data into a log entry.
type Fields map[string]interface{}

// LoggerPort is the logging contract the core depends on. Adapters decide the
// sink (stdout, fluent-bit, fan-out).
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields returns a child logger that attaches the fields to every entry.
	WithFields(fields Fields) LoggerPort
}
