// Package logger emits the sync decision events.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the zap logger behind a SyncLogger is built.
type Options struct {
	DryRun  bool
	Quiet   bool
	Verbose bool
	// Format is "console" (default) or "json".
	Format string
}

// SyncLogger reports every decision the engine takes. In dry-run mode each
// action message carries a "(dryrun)" prefix.
type SyncLogger struct {
	z        *zap.Logger
	IsDryRun bool
}

// New builds a SyncLogger writing to stdout, errors included.
func New(opts Options) (*SyncLogger, error) {
	level := zapcore.InfoLevel
	switch {
	case opts.Quiet:
		level = zapcore.WarnLevel
	case opts.Verbose:
		level = zapcore.DebugLevel
	}

	encoding := "console"
	if opts.Format == "json" {
		encoding = "json"
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			MessageKey:     "msg",
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	if encoding == "json" {
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return Wrap(z, opts.DryRun), nil
}

// Wrap turns an existing zap logger into a SyncLogger.
func Wrap(z *zap.Logger, dryRun bool) *SyncLogger {
	return &SyncLogger{z: z, IsDryRun: dryRun}
}

// Nop returns a SyncLogger that discards everything.
func Nop() *SyncLogger {
	return Wrap(zap.NewNop(), false)
}

func (l *SyncLogger) action(msg string) string {
	if l.IsDryRun {
		return "(dryrun) " + msg
	}
	return msg
}

func (l *SyncLogger) Upload(localPath, title string) {
	l.z.Info(l.action("upload"), zap.String("path", localPath), zap.String("title", title))
}

func (l *SyncLogger) Delete(title, id string) {
	l.z.Info(l.action("delete"), zap.String("title", title), zap.String("id", id))
}

func (l *SyncLogger) Download(title, dest string) {
	l.z.Info(l.action("download"), zap.String("title", title), zap.String("dest", dest))
}

func (l *SyncLogger) Rename(id, from, to string) {
	l.z.Info(l.action("rename"), zap.String("id", id), zap.String("from", from), zap.String("to", to))
}

func (l *SyncLogger) Reorder(setID string, items int) {
	l.z.Info(l.action("reorder set by title"), zap.String("set", setID), zap.Int("items", items))
}

func (l *SyncLogger) CreateSet(name, id, url string) {
	l.z.Info(l.action("create set"), zap.String("name", name), zap.String("id", id), zap.String("url", url))
}

func (l *SyncLogger) Skip(key, reason string) {
	l.z.Debug("skip", zap.String("key", key), zap.String("reason", reason))
}

func (l *SyncLogger) Info(msg string, fields ...zap.Field) {
	l.z.Info(msg, fields...)
}

func (l *SyncLogger) Warn(msg string, fields ...zap.Field) {
	l.z.Warn(msg, fields...)
}

// Error logs a failed operation on target.
func (l *SyncLogger) Error(operation, target string, err error) {
	l.z.Error(operation+" failed", zap.String("target", target), zap.Error(err))
}

func (l *SyncLogger) Debug(message string) {
	l.z.Debug(message)
}

// Sync flushes buffered entries.
func (l *SyncLogger) Sync() error {
	return l.z.Sync()
}
