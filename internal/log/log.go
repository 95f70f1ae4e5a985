// Package log is the process-wide structured logger of the bindings.
package log

import (
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DebugLevel = zap.DebugLevel
	InfoLevel  = zap.InfoLevel
	WarnLevel  = zap.WarnLevel
	ErrorLevel = zap.ErrorLevel
)

// Options configures NewLogger. Outputs accepts "stdout", "stderr" or a
// file path; file outputs are rotated.
type Options struct {
	Level      string
	Outputs    []string
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu       sync.Mutex
	log      *zap.SugaredLogger
	logLevel zap.AtomicLevel
)

func logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		return log
	}
	l, level, err := NewLogger(Options{Level: "info", Outputs: []string{"stderr"}})
	if err != nil {
		panic(err)
	}
	log, logLevel = l, level
	return log
}

// NewLogger builds a console logger writing to every output in opts.
func NewLogger(opts Options) (*zap.SugaredLogger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, level, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
	}
	outputs := opts.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(outputs))
	for _, out := range outputs {
		switch out {
		case "stdout":
			syncers = append(syncers, zapcore.Lock(os.Stdout))
		case "stderr":
			syncers = append(syncers, zapcore.Lock(os.Stderr))
		default:
			maxSize := opts.MaxSizeMB
			if maxSize <= 0 {
				maxSize = 100
			}
			syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
				Filename:   out,
				MaxSize:    maxSize,
				MaxBackups: opts.MaxBackups,
			}))
		}
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		TimeKey:     "timestamp",
		EncodeTime: func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(ts.Local().Format(time.RFC3339))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return l.Sugar(), level, nil
}

// Replace installs l as the default logger.
func Replace(l *zap.SugaredLogger, level zap.AtomicLevel) {
	mu.Lock()
	defer mu.Unlock()
	log, logLevel = l, level
}

// Configure replaces the default logger with one built from opts.
func Configure(opts Options) error {
	l, level, err := NewLogger(opts)
	if err != nil {
		return err
	}
	Replace(l, level)
	return nil
}

// SetLevel changes the level of the default logger.
func SetLevel(level zapcore.Level) {
	logger()
	mu.Lock()
	defer mu.Unlock()
	logLevel.SetLevel(level)
}

func Debugw(msg string, kv ...interface{}) {
	logger().Debugw(msg, kv...)
}

func Infow(msg string, kv ...interface{}) {
	logger().Infow(msg, kv...)
}

func Warnw(msg string, kv ...interface{}) {
	logger().Warnw(msg, kv...)
}

// Errorw logs at error level. A pkg/errors stack trace carried by one of
// the values is appended to the message.
func Errorw(msg string, kv ...interface{}) {
	for i := 1; i < len(kv); i += 2 {
		if st, ok := kv[i].(interface{ StackTrace() errors.StackTrace }); ok {
			kv = append(kv, "stack", st.StackTrace())
			break
		}
	}
	logger().Errorw(msg, kv...)
}
