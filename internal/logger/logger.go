// Package logger configures the process-wide logrus logger. Interactive runs
// send log output to a file so it never lands on the TUI's screen; the serve
// command keeps it on stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var rootLogger = logrus.StandardLogger()

// DefaultPath returns the log file used when none is configured:
// $XDG_STATE_HOME/termfolio/termfolio.log, or ~/.local/state/... without it.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "termfolio", "termfolio.log"), nil
}

// Configure sets the plain formatter and the level named by level
// ("debug", "info", ...). An unknown level is an error and leaves the
// current one in place.
func Configure(level string) error {
	root().SetFormatter(PlainFormatter{})
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root().SetLevel(lvl)
	return nil
}

// SetupFile redirects the root logger to logPath (DefaultPath when empty)
// and returns the file so the caller can close it.
func SetupFile(logPath string) (io.Closer, string, error) {
	if logPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, "", err
		}
		logPath = p
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, "", err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", err
	}
	root().SetOutput(f)
	return f, logPath, nil
}

// SetOutput sends the root logger to w.
func SetOutput(w io.Writer) {
	root().SetOutput(w)
}

// SetRoot replaces the shared logger; nil restores the standard one.
func SetRoot(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	rootLogger = l
}

// Named returns an entry tagged with component.
func Named(component string) *logrus.Entry {
	entry := logrus.NewEntry(root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

// PlainFormatter writes [timestamp] [LEVEL] [component] message k=v ...
type PlainFormatter struct{}

func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	parts := make([]string, 0, 5)
	parts = append(parts,
		fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339)),
		fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
	if c, ok := entry.Data["component"].(string); ok && c != "" {
		parts = append(parts, fmt.Sprintf("[%s]", c))
	}
	parts = append(parts, entry.Message)
	if f := formatFields(entry.Data); f != "" {
		parts = append(parts, f)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
