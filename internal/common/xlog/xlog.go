// Package xlog is a context aware structured logger built on zap.
//
// Every log line carries the correlation id stored in the context through
// package ctxdata, so a whole batch run can be followed with one id.
package xlog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/miblum/go-fund-notice/internal/common/xlog/ctxdata"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

type options struct {
	level      zapcore.Level
	outputs    []string
	env        string
	withCaller bool
	callerSkip int
}

type Option func(*options)

// WithLogToOption sets the output sink, a comma separated list of
// "stdout", "stderr" or file paths.
func WithLogToOption(logTo string) Option {
	return func(o *options) {
		if strings.TrimSpace(logTo) == "" {
			return
		}
		o.outputs = strings.Split(logTo, ",")
	}
}

// WithLogEnvOption selects the encoder: console for local, json otherwise.
func WithLogEnvOption(env string) Option {
	return func(o *options) {
		o.env = strings.ToLower(env)
	}
}

func WithCaller(enabled bool) Option {
	return func(o *options) {
		o.withCaller = enabled
	}
}

func AddCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

func DebugLogLevel() Option {
	return func(o *options) { o.level = zapcore.DebugLevel }
}

func InfoLogLevel() Option {
	return func(o *options) { o.level = zapcore.InfoLevel }
}

// LevelFromString maps a configured level name, unknown names fall back to info.
func LevelFromString(level string) Option {
	return func(o *options) {
		switch strings.ToLower(level) {
		case "debug":
			o.level = zapcore.DebugLevel
		case "warn", "warning":
			o.level = zapcore.WarnLevel
		case "error":
			o.level = zapcore.ErrorLevel
		default:
			o.level = zapcore.InfoLevel
		}
	}
}

// Init builds the global logger. It must be called once at startup.
func Init(appName string, opts ...Option) error {
	o := &options{
		level:   zapcore.InfoLevel,
		outputs: []string{"stdout"},
	}
	for _, opt := range opts {
		opt(o)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoding := "json"
	if o.env == "local" || o.env == "" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoding = "console"
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(o.level),
		DisableCaller:     !o.withCaller,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       o.outputs,
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields:     map[string]interface{}{"app": appName},
	}

	logger, err := cfg.Build(zap.AddCallerSkip(o.callerSkip))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	global.Store(logger)
	return nil
}

// InitForTest installs a development logger that only prints warnings and above.
func InitForTest() {
	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zapcore.WarnLevel))
	if err != nil {
		logger = zap.NewNop()
	}
	global.Store(logger)
}

// Logger returns the underlying zap logger, e.g. for integrations that need one.
func Logger() *zap.Logger {
	return global.Load()
}

func Sync() {
	_ = global.Load().Sync()
}

func withContext(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	if id := ctxdata.GetCorrelationId(ctx); id != "" {
		fields = append(fields, String("correlationId", id))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	global.Load().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	global.Load().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	global.Load().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	global.Load().Error(msg, withContext(ctx, fields)...)
}

func Panic(ctx context.Context, msg string, fields ...Field) {
	global.Load().Panic(msg, withContext(ctx, fields)...)
}

func Fatal(ctx context.Context, msg string, fields ...Field) {
	global.Load().Fatal(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	Debug(ctx, fmt.Sprintf(format, args...))
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	Info(ctx, fmt.Sprintf(format, args...))
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	Warn(ctx, fmt.Sprintf(format, args...))
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	Error(ctx, fmt.Sprintf(format, args...))
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	Fatal(ctx, fmt.Sprintf(format, args...))
}
