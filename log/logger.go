// Package log provides structured logging for the scheduler and
// worker, annotated with call identity (root id, memo key, task name)
// on every entry.
//
// Two logger variants are available:
//   - Logger: non-sugared zap.Logger for the worker's hot path
//   - SugaredLogger: printf-style logging for CLI surfaces
//
// Use Logger.Sugar() to obtain a SugaredLogger when needed.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with call-identity context attached to
// every entry. Use this on the worker's hot path where performance
// matters.
type Logger struct {
	zap *zap.Logger
}

// SugaredLogger wraps zap.SugaredLogger for printf-style logging on
// CLI/debug surfaces where convenience matters more than performance.
type SugaredLogger struct {
	sugar *zap.SugaredLogger
}

// Fields identifies the call a log entry concerns. Each field is
// omitted from the encoded output when empty, so a logger built
// before a root id is known (e.g. at scheduler construction) still
// produces valid entries.
type Fields struct {
	RootID   string
	MemoKey  string
	TaskName string
}

// New creates a logger annotated with f, writing JSON lines to stderr.
func New(f Fields) *Logger {
	return newWithWriter(f, os.Stderr)
}

// WithOutput returns a new logger that writes to w instead. The new
// logger starts from a fresh core: call-identity fields already
// attached to l (via New or WithFields) are not carried over.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
	return &Logger{zap: l.zap.WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }))}
}

// WithFields returns a new logger with additional call-identity
// context merged in, for use when a worker learns a call's root id
// partway through handling a message.
func (l *Logger) WithFields(f Fields) *Logger {
	return &Logger{zap: l.zap.With(fieldsToZap(f)...)}
}

func newWithWriter(f Fields, w io.Writer) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
	return &Logger{zap: zap.New(core).With(fieldsToZap(f)...)}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
}

func fieldsToZap(f Fields) []zap.Field {
	var fields []zap.Field
	if f.RootID != "" {
		fields = append(fields, zap.String("root_id", f.RootID))
	}
	if f.MemoKey != "" {
		fields = append(fields, zap.String("memo_key", f.MemoKey))
	}
	if f.TaskName != "" {
		fields = append(fields, zap.String("task_name", f.TaskName))
	}
	return fields
}

// Debug logs a debug message with additional structured fields.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message with additional structured fields.
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message with additional structured fields.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message with additional structured fields.
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sugar returns a SugaredLogger for printf-style logging.
func (l *Logger) Sugar() *SugaredLogger {
	return &SugaredLogger{sugar: l.zap.Sugar()}
}

// Debugf logs a debug message with printf-style formatting.
func (s *SugaredLogger) Debugf(template string, args ...any) {
	s.sugar.Debugf(template, args...)
}

// Infof logs an info message with printf-style formatting.
func (s *SugaredLogger) Infof(template string, args ...any) {
	s.sugar.Infof(template, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (s *SugaredLogger) Warnf(template string, args ...any) {
	s.sugar.Warnf(template, args...)
}

// Errorf logs an error message with printf-style formatting.
func (s *SugaredLogger) Errorf(template string, args ...any) {
	s.sugar.Errorf(template, args...)
}

// With returns a SugaredLogger with additional context fields.
func (s *SugaredLogger) With(args ...any) *SugaredLogger {
	return &SugaredLogger{sugar: s.sugar.With(args...)}
}
