package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide structured logger. Nil until Init or Set.
	Logger *zap.Logger
	// Sugar wraps Logger for printf-style calls.
	Sugar *zap.SugaredLogger
)

// ServiceName is attached to every log entry
const ServiceName = "incident-kpis"

// LogLevel is a level name as written in configuration.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var levels = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

// Config selects level, encoding and sink. OutputPath is stdout, stderr or a file.
type Config struct {
	Level      LogLevel
	Format     string
	OutputPath string
}

func DefaultConfig() *Config {
	return &Config{Level: LogLevelInfo, Format: FormatConsole, OutputPath: "stdout"}
}

// Init builds the global logger from cfg. A nil cfg uses DefaultConfig.
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sink, err := openSink(cfg.OutputPath)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, parseLogLevel(cfg.Level))
	Set(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", ServiceName)))
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	if format == FormatJSON {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "timestamp"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func openSink(path string) (zapcore.WriteSyncer, error) {
	switch path {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

// Set replaces the global logger. Tests use it to install zaptest loggers.
func Set(l *zap.Logger) {
	Logger = l
	Sugar = l.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// parseLogLevel falls back to info for unknown names.
func parseLogLevel(level LogLevel) zapcore.Level {
	if l, ok := levels[strings.ToLower(string(level))]; ok {
		return l
	}
	return zapcore.InfoLevel
}

// helper and sugared report the caller of the wrappers below, not the wrappers.
func helper() *zap.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.WithOptions(zap.AddCallerSkip(1))
}

func sugared() *zap.SugaredLogger {
	if Sugar == nil {
		return nil
	}
	return Sugar.WithOptions(zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	if l := helper(); l != nil {
		l.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if l := helper(); l != nil {
		l.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if l := helper(); l != nil {
		l.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if l := helper(); l != nil {
		l.Error(msg, fields...)
	}
}

func Debugf(template string, args ...interface{}) {
	if s := sugared(); s != nil {
		s.Debugf(template, args...)
	}
}

func Infof(template string, args ...interface{}) {
	if s := sugared(); s != nil {
		s.Infof(template, args...)
	}
}

func Warnf(template string, args ...interface{}) {
	if s := sugared(); s != nil {
		s.Warnf(template, args...)
	}
}

func Errorf(template string, args ...interface{}) {
	if s := sugared(); s != nil {
		s.Errorf(template, args...)
	}
}

// Fatalf logs and exits the process.
func Fatalf(template string, args ...interface{}) {
	if s := sugared(); s != nil {
		s.Fatalf(template, args...)
	}
}
