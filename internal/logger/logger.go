// Package logger provides structured logging for blobscan using zap.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/blobscan/internal/config"
)

// Logger wraps zap.SugaredLogger with blobscan context helpers.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New builds a Logger from the logging section of the config.
// Reports own stdout, so logs default to stderr.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, parseLevel(cfg.Level))
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{SugaredLogger: base.Sugar(), base: base}, nil
}

// parseLevel maps a config level to zap, treating unknown names as info.
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// openSink resolves an output name. A file path is appended to and also
// echoed to stderr.
func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}

	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(f), zapcore.Lock(os.Stderr)), nil
}

// WithRun tags entries with the run id shared with the report.
func (l *Logger) WithRun(id string) *Logger {
	return l.WithFields(map[string]interface{}{"run_id": id})
}

// WithImage tags entries with the source image path.
func (l *Logger) WithImage(path string) *Logger {
	return l.WithFields(map[string]interface{}{"image": path})
}

// WithComponent tags entries with a component id.
func (l *Logger) WithComponent(id int) *Logger {
	return l.WithFields(map[string]interface{}{"component": id})
}

// WithFields returns a Logger carrying the given key/value pairs.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), base: l.base}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
