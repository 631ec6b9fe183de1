// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package console

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

// Config selects what reaches the terminal.
type Config struct {
	// Quiet drops everything below error.
	Quiet bool
	// Debug adds debug records to standard output.
	Debug bool
	// Color forces styling on or off for both streams. Nil detects it
	// separately for each stream.
	Color *bool
}

// NewLogger returns a logger that writes errors to stderr and, unless
// quiet, lower levels to stdout.
func NewLogger(stdout, stderr io.Writer, cfg Config) *slog.Logger {
	handlers := []slog.Handler{
		NewHandler(stderr, &HandlerOptions{Level: slog.LevelError, Color: colorEnabled(stderr, cfg.Color)}),
	}
	if !cfg.Quiet {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		handlers = append(handlers, NewHandler(stdout, &HandlerOptions{
			Level: level,
			Below: slog.LevelError,
			Color: colorEnabled(stdout, cfg.Color),
		}))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// colorEnabled reports whether w should get styled output: only terminals
// do, and never when NO_COLOR is set or TERM is dumb.
func colorEnabled(w io.Writer, force *bool) bool {
	if force != nil {
		return *force
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
