package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level defines logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled printf-style messages to stdout and, optionally,
// to a log file. Stdout output is colorized per level, file output is plain.
type Logger struct {
	level Level
	file  *os.File

	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
}

// ParseLevel converts a config string ("debug", "info", "warn", "error")
// to a Level. Unknown values default to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// New creates a logger. If filePath is non-empty, messages are also
// appended to that file.
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level:      ParseLevel(level),
		debugColor: color.New(color.FgHiBlack),
		infoColor:  color.New(color.FgGreen),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed),
	}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file %s: %w", filePath, err)
		}
		l.file = f
	}

	return l, nil
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) log(level Level, tag string, c *color.Color, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)

	c.Fprintf(os.Stdout, "%s [%s] %s\n", ts, tag, msg)

	if l.file != nil {
		fmt.Fprintf(l.file, "%s [%s] %s\n", ts, tag, msg)
	}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, "DEBUG", l.debugColor, format, v...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, "INFO", l.infoColor, format, v...)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, "WARN", l.warnColor, format, v...)
}

// Error logs an error-level message.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, "ERROR", l.errorColor, format, v...)
}

// Fatal logs an error-level message and terminates the process.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelError, "FATAL", l.errorColor, format, v...)
	if l.file != nil {
		l.file.Close()
	}
	os.Exit(1)
}
