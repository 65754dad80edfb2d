package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value wrapper over zap's sugared logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Options controls how New builds the root logger.
type Options struct {
	// Mode is "production" (JSON) or "development" (console, colourised levels).
	Mode  string
	Level string
	// Sinks receive a JSON copy of every entry, e.g. a Logstash TCP writer.
	Sinks []io.Writer
}

func New(opts Options) *Logger {
	level := parseLevel(opts.Level, opts.Mode)

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Mode, "development") {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		encoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	for _, sink := range opts.Sinks {
		if sink == nil {
			continue
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(sink), level))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{sugar: base.Sugar()}
}

// NewWriter builds a JSON logger writing to w. Handy in tests that assert on output.
func NewWriter(w io.Writer, level string) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(w), parseLevel(level, "production"))
	return &Logger{sugar: zap.New(core).Sugar()}
}

func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// With returns a child logger that always carries the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sugar: l.sugar.With(kv...)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.sugar.Fatalw(msg, kv...) }

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func parseLevel(raw, mode string) zap.AtomicLevel {
	if strings.TrimSpace(raw) == "" {
		if strings.EqualFold(mode, "development") {
			return zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zap.NewAtomicLevelAt(lvl)
}
