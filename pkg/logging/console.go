package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ConsoleLogger writes colorized log lines to a terminal stream.
// Used for --verbose output alongside (or instead of) file logging.
type ConsoleLogger struct {
	writer io.Writer
	level  Level
	fields Fields
	mu     sync.Mutex
}

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgCyan),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
}

// NewConsoleLogger creates a console logger writing to stderr
func NewConsoleLogger(level Level) *ConsoleLogger {
	return &ConsoleLogger{writer: os.Stderr, level: level}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{
		writer: l.writer,
		level:  l.level,
		fields: mergeFields(l.fields, fields),
	}
}

// Close does nothing; the console stream is not owned by the logger
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tag := levelColors[level].Sprintf("[%s]", level.String())
	line := fmt.Sprintf("%s %s", tag, msg)
	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}
	for k, v := range mergeFields(l.fields, fields) {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	fmt.Fprintln(l.writer, line)
}
