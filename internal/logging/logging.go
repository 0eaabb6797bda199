// Package logging builds the logrus loggers shared by the solvers and the CLI.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)

	return l
}()

// Discard returns a logger that drops everything. Solvers use it when the
// caller supplied none.
func Discard() logrus.FieldLogger {
	return discard
}

// New returns a text logger writing to w at the named level
// ("debug", "info", "warn", ...).
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})

	return l, nil
}

// DebugEnabled reports whether l would emit a Debug entry, so callers can
// skip building expensive fields. Unknown FieldLogger implementations are
// assumed to want everything.
func DebugEnabled(l logrus.FieldLogger) bool {
	switch v := l.(type) {
	case *logrus.Logger:
		return v.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return v.Logger.IsLevelEnabled(logrus.DebugLevel)
	default:
		return true
	}
}
