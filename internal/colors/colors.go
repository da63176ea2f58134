// Package colors provides color output utilities for the CLI commands.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	quiet        = false
	logger       Logger
	mu           sync.RWMutex

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	// colorize is decided once from the real stdout.
	colorize = isTerminal(os.Stdout)
)

func init() {
	if val := os.Getenv("CLIPTRAY_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
	if os.Getenv("NO_COLOR") != "" {
		colorize = false
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success console output. Logging is unaffected.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetColor forces ANSI colors on or off.
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorize = enabled
}

func paint(color, s string) string {
	if !colorize {
		return s
	}
	return color + s + Reset
}

func write(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		// Last resort; the console itself is broken.
		fmt.Fprintln(os.Stderr, line)
	}
}

func currentLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	mu.RLock()
	defer mu.RUnlock()
	write(stderr, paint(Red, "Error:")+" "+msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	mu.RLock()
	defer mu.RUnlock()
	write(stderr, paint(Yellow, "Warning:")+" "+msg)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg, "type", "success")
	}
	mu.RLock()
	defer mu.RUnlock()
	if quiet {
		return
	}
	write(stdout, paint(Green, checkmark)+" "+msg)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	mu.RLock()
	defer mu.RUnlock()
	if quiet {
		return
	}
	write(stdout, paint(Blue, msg))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	mu.RLock()
	defer mu.RUnlock()
	write(stderr, paint(Cyan, "Debug:")+" "+msg)
}
