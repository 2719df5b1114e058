package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// timestampLayout is the layout of activity log timestamps.
const timestampLayout = "2006-01-02 15:04:05"

type Logger struct {
	Verbose bool
	Debug   bool

	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer

	// File receives timestamped activity lines when set.
	File io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

// OpenFile opens path for appending activity lines, creating it and its
// directory if needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (l Logger) Infof(msg string, args ...any) {
	l.record("INFO", msg, args...)
	if l.Verbose || l.Debug {
		fmt.Fprintf(l.stdout(), color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.record("DEBUG", msg, args...)
		fmt.Fprintf(l.stdout(), color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.record("WARNING", msg, args...)
	fmt.Fprintf(l.stderr(), color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.record("ERROR", msg, args...)
	fmt.Fprintf(l.stderr(), color.RedString("[error] ")+msg+"\n", args...)
}

// ErrorfAndReturn logs the message as an error and returns it as an error value.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return fmt.Errorf(msg, args...)
}

// record appends a timestamped line to the activity log. Write failures
// are ignored so logging never fails the operation.
func (l Logger) record(level, msg string, args ...any) {
	if l.File == nil {
		return
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	line := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintf(l.File, "%s - %s - %s\n", now().Format(timestampLayout), level, line)
}

func (l Logger) stdout() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) stderr() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return os.Stderr
}
