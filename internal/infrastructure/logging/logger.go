package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface used across the command layer
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// DefaultConfig returns production logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Development: false,
		OutputPaths: []string{"stdout"},
	}
}

// ZapLogger implements Logger on top of zap
type ZapLogger struct {
	base *zap.Logger
}

// New creates a new logger with the provided configuration.
func New(cfg Config) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	encoding := "json"
	encoderCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoding = "console"
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	base, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{base: base}, nil
}

// NewWithCore wraps an existing zap core, mostly for tests
func NewWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{base: zap.New(core)}
}

// NewDefaultLogger creates a new default logger instance
func NewDefaultLogger() Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		return NewNopLogger()
	}
	return logger
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() Logger {
	return &ZapLogger{base: zap.NewNop()}
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

// toZapFields converts the variadic fields slice to zap fields
// Expected format: key1, value1, key2, value2, ...
func toZapFields(fields []interface{}) []zap.Field {
	result := make([]zap.Field, 0, (len(fields)+1)/2)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			// Odd number of fields, keep the last one under an index key
			result = append(result, zap.Any(fmt.Sprintf("field_%d", i/2), fields[i]))
			break
		}

		key, ok := fields[i].(string)
		if !ok {
			result = append(result,
				zap.Any(fmt.Sprintf("field_%d", i/2), fields[i]),
				zap.Any(fmt.Sprintf("field_%d_value", i/2), fields[i+1]))
			continue
		}

		if err, isErr := fields[i+1].(error); isErr {
			result = append(result, zap.NamedError(key, err))
			continue
		}
		result = append(result, zap.Any(key, fields[i+1]))
	}

	return result
}

func (l *ZapLogger) Debug(msg string, fields ...interface{}) {
	l.base.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields ...interface{}) {
	l.base.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...interface{}) {
	l.base.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...interface{}) {
	l.base.Error(msg, toZapFields(fields)...)
}

// CodedError interface for error classification (to avoid circular imports)
type CodedError interface {
	Error() string
	GetCode() string
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogError logs a failed command with its error classification and context
func LogError(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{"operation", operation}

	if coded, ok := err.(CodedError); ok {
		fields = append(fields,
			"error_code", coded.GetCode(),
			"timestamp", coded.GetTimestamp(),
		)
		for k, v := range coded.GetContext() {
			fields = append(fields, k, v)
		}
	} else {
		fields = append(fields, "error_type", fmt.Sprintf("%T", err))
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Error(fmt.Sprintf("Command failed: %s", err.Error()), fields...)
}

// LogOperation logs a completed command for monitoring
func LogOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Info(fmt.Sprintf("Command completed: %s", operation), fields...)
}
