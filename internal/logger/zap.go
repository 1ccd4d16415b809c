package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logger configuration options
type Config struct {
	LogLevel LogLevel

	// FilePath receives every entry at or above LogLevel
	FilePath string
	// ErrorFilePath receives only error and fatal entries
	ErrorFilePath string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	UseConsole  bool
	Development bool
}

// ZapLogger provides a concrete implementation of the Logger using zap.
type ZapLogger struct {
	zap *zap.Logger
	cfg Config
}

// Compile-time check to ensure ZapLogger implements the Logger.
var _ Logger = (*ZapLogger)(nil)

// NewZapLogger creates a new Zap logger satisfying the Logger.
// It builds the underlying zap logger based on the configuration.
func NewZapLogger(config Config) (*ZapLogger, error) {
	config = withDefaults(config)

	zapLogger, err := buildZapLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	return &ZapLogger{
		zap: zapLogger,
		cfg: config,
	}, nil
}

// NewFromZap wraps an already configured zap logger.
func NewFromZap(z *zap.Logger) *ZapLogger {
	return &ZapLogger{zap: z, cfg: withDefaults(Config{})}
}

func withDefaults(config Config) Config {
	if config.MaxAgeDays <= 0 {
		config.MaxAgeDays = DefaultMaxAgeDays
	}
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = DefaultMaxSizeMB
	}
	if config.MaxBackups < 0 {
		config.MaxBackups = DefaultMaxBackups
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	return config
}

// buildZapLogger sets up the underlying zap logger instance.
func buildZapLogger(config Config) (*zap.Logger, error) {
	minLogLevel := parseLogLevel(config.LogLevel)

	var encoderConfig zapcore.EncoderConfig
	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	var cores []zapcore.Core

	newLumberjackWriter := func(filename string) (zapcore.WriteSyncer, error) {
		if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", filepath.Dir(filename), err)
		}

		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   true,
		}), nil
	}

	if config.FilePath != "" {
		writer, err := newLumberjackWriter(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed creating log writer: %w", err)
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, writer, minLogLevel))
	}

	if config.ErrorFilePath != "" {
		writer, err := newLumberjackWriter(config.ErrorFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed creating error log writer: %w", err)
		}

		errorPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		})
		cores = append(cores, zapcore.NewCore(jsonEncoder, writer, errorPriority))
	}

	// stdout belongs to command output such as `themes export`
	if config.UseConsole {
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), minLogLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	core := zapcore.NewTee(cores...)

	zapOpts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)}

	if config.Development {
		zapOpts = append(zapOpts, zap.Development())
	}

	return zap.New(core, zapOpts...), nil
}

func mapToZapFields(fields map[string]interface{}) []zap.Field {
	if fields == nil {
		return nil
	}
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok && k == ErrorKey {
			zapFields = append(zapFields, zap.Error(err))
			continue
		}
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// Debug logs a message at debug level
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zap.Debug(msg, mapToZapFields(fields)...)
}

// Info logs a message at info level
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zap.Info(msg, mapToZapFields(fields)...)
}

// Warn logs a message at warn level
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zap.Warn(msg, mapToZapFields(fields)...)
}

// Error logs a message at error level
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.zap.Error(msg, mapToZapFields(fields)...)
}

// Fatal logs a message at fatal level
func (l *ZapLogger) Fatal(msg string, fields map[string]interface{}) {
	l.zap.Fatal(msg, mapToZapFields(fields)...)
}

// WithField adds a single structured field to the logger context.
func (l *ZapLogger) WithField(key string, value interface{}) Logger {
	return &ZapLogger{
		zap: l.zap.With(mapToZapFields(map[string]interface{}{key: value})...),
		cfg: l.cfg,
	}
}

// WithFields creates a new logger instance with additional fields
func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZapLogger{
		zap: l.zap.With(mapToZapFields(fields)...),
		cfg: l.cfg,
	}
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}

func parseLogLevel(levelStr LogLevel) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
