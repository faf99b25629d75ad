package main

import (
	"io"
	"log/slog"

	"github.com/npratt/iqfit/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TUILoggerResult contains the results of setting up logging for TUI mode.
type TUILoggerResult struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *TUILoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupTUILogger creates a logger that writes to a rotating file instead of
// stderr, so log output never corrupts the player screen.
func SetupTUILogger(path string, level slog.Leveler, rotationCfg config.LogRotationConfig) *TUILoggerResult {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotationCfg.MaxSizeMB,
		MaxBackups: rotationCfg.MaxBackups,
		MaxAge:     rotationCfg.MaxAgeDays,
		Compress:   rotationCfg.Compress,
	}

	return &TUILoggerResult{
		Logger:   SetupLoggerWithWriter(w, level),
		LogFile:  w,
		FilePath: path,
	}
}

// SetupLoggerWithWriter creates a JSON logger that writes to w.
func SetupLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
