// Package shell writes user-facing diagnostics for the compete CLI.
package shell

import (
	"fmt"
	"io"
	"os"
	"sync"

	pkgerrors "compete/pkg/errors"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// ColorChoice selects whether diagnostics are colored.
type ColorChoice string

const (
	ColorAuto   ColorChoice = "auto"
	ColorAlways ColorChoice = "always"
	ColorNever  ColorChoice = "never"
)

// ParseColorChoice parses "auto", "always" or "never".
func ParseColorChoice(s string) (ColorChoice, error) {
	switch c := ColorChoice(s); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	case "":
		return ColorAuto, nil
	default:
		return "", pkgerrors.Newf(pkgerrors.InvalidValue, "invalid color choice %q (expected auto, always or never)", s)
	}
}

// Shell writes warnings and status lines to an error stream.
type Shell struct {
	mu     sync.Mutex
	err    io.Writer
	warn   *color.Color
	status *color.Color
	log    *zap.Logger
}

// New creates a shell writing to w. A nil logger disables mirroring.
func New(w io.Writer, choice ColorChoice, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	warn := color.New(color.FgYellow, color.Bold)
	status := color.New(color.FgGreen, color.Bold)
	switch choice {
	case ColorAlways:
		warn.EnableColor()
		status.EnableColor()
	case ColorNever:
		warn.DisableColor()
		status.DisableColor()
	}
	return &Shell{err: w, warn: warn, status: status, log: log}
}

// Stderr creates a shell on os.Stderr.
func Stderr(choice ColorChoice, log *zap.Logger) *Shell {
	return New(os.Stderr, choice, log)
}

// Warn prints "warning: <msg>".
func (s *Shell) Warn(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Warn(msg)
	if _, err := fmt.Fprintf(s.err, "%s %s\n", s.warn.Sprint("warning:"), msg); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.WarningFailed)
	}
	return nil
}

// Status prints a right-aligned, cargo-style status line.
func (s *Shell) Status(verb, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info(msg, zap.String("status", verb))
	if _, err := fmt.Fprintf(s.err, "%s %s\n", s.status.Sprintf("%12s", verb), msg); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.InternalError)
	}
	return nil
}
