// Package logger provides the levelled stderr logger used by the CLI
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level defines log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "NONE"
	}
}

// ParseLevel converts a level name to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	}
	return LevelInfo, fmt.Errorf("logger: unknown level %q", name)
}

// Logger writes "[time LEVEL] component: message" lines
type Logger struct {
	mu        *sync.Mutex
	out       io.Writer
	useColors bool
	level     Level
	component string
	now       func() time.Time
}

// New creates a Logger at info level
func New(out io.Writer, useColors bool) *Logger {
	return &Logger{
		mu:        &sync.Mutex{},
		out:       out,
		useColors: useColors,
		level:     LevelInfo,
		now:       time.Now,
	}
}

// WithLevel sets the log level and returns the logger
func (l *Logger) WithLevel(level Level) *Logger {
	l.level = level
	return l
}

// Level returns the current threshold
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level && l.level != LevelNone
}

// Named returns a logger sharing the output and level that prefixes every
// message with component.
func (l *Logger) Named(component string) *Logger {
	child := *l
	if l.component != "" {
		component = l.component + "." + component
	}
	child.component = component
	return &child
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, color.CyanString, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, color.BlueString, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, color.YellowString, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, color.RedString, format, args...)
}

func (l *Logger) log(level Level, paint func(string, ...interface{}) string, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	prefix := level.String()
	if l.useColors {
		prefix = paint(prefix)
	}

	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		msg = l.component + ": " + msg
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s %s] %s\n", l.now().Format("15:04:05.000"), prefix, msg)
}
