// Package rlog centralizes logging for the Rox toolchain on top of
// logrus, grounded on the same dependency golox's vm/compiler.go imports.
// Every record is rendered "[LEVEL] message" per spec.md §6, and the VM's
// optional trace feature logs through this package at Debug level rather
// than writing to stderr directly.
package rlog

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// bracketFormatter renders "[LEVEL] message" with no timestamp, matching
// the plain log line format spec.md §6 requires.
type bracketFormatter struct{}

func (bracketFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// New builds a logger at the given level ("error", "warn", "info", "debug").
// An unrecognized level falls back to "info".
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(bracketFormatter{})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return l
}
