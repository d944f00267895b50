package common

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Logger interface {
	Log(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// logger prints "<time> [component] LEVEL message" lines, colored when the output is a terminal
type logger struct {
	mu        sync.Mutex
	out       io.Writer
	component string

	info, warn, fail *color.Color
}

func NewLogger(component string) Logger {
	return NewLoggerWithOutput(component, color.Output)
}

func NewLoggerWithOutput(component string, out io.Writer) Logger {
	return &logger{
		out:       out,
		component: component,
		info:      color.New(color.FgCyan),
		warn:      color.New(color.FgYellow),
		fail:      color.New(color.FgRed, color.Bold),
	}
}

func (l *logger) Log(format string, args ...interface{}) {
	l.write(l.info, "INFO", format, args...)
}

func (l *logger) Warn(format string, args ...interface{}) {
	l.write(l.warn, "WARN", format, args...)
}

func (l *logger) Error(format string, args ...interface{}) {
	l.write(l.fail, "ERROR", format, args...)
}

func (l *logger) write(c *color.Color, level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.out, "%s [%s] %s %s\n", time.Now().UTC().Format(time.RFC3339), l.component, c.Sprint(level), msg)
}
