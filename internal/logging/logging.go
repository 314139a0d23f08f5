package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a logrus logger that also owns its rotated log file.
type Logger struct {
	*logrus.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to stdout and to a rotated file in dir.
func New(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create logs folder failed: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "homework-notifier.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	logger, err := NewWithWriter(io.MultiWriter(os.Stdout, file), level)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	logger.file = file
	return logger, nil
}

// NewWithWriter creates a logger writing only to w.
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{Logger: l}, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	l, _ := NewWithWriter(io.Discard, "panic")
	return l
}

func (l *Logger) Close() {
	if l.file == nil {
		return
	}
	_ = l.file.Close()
}
