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

// Package console renders slog records as prefixed, human readable lines
// for command line use.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// HandlerOptions configure a Handler.
type HandlerOptions struct {
	// Level is the minimum level written. Defaults to slog.LevelInfo.
	Level slog.Leveler
	// Below, when set, is the level at and above which records are dropped.
	Below slog.Leveler
	// Color enables bold colored messages for warnings and errors.
	Color bool
}

// Handler writes one `<level>:   message key=value` line per record line.
type Handler struct {
	opts   HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

func NewHandler(w io.Writer, opts *HandlerOptions) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if level < h.opts.Level.Level() {
		return false
	}
	return h.opts.Below == nil || level < h.opts.Below.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(h.paint(r.Level, r.Message))

	for _, a := range h.attrs {
		appendAttr(&sb, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, prefix, a)
		return true
	})

	tag := levelTag(r.Level)
	var out strings.Builder
	for _, line := range strings.Split(sb.String(), "\n") {
		out.WriteString(tag)
		out.WriteString(line)
		out.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, out.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	prefix := strings.Join(h.groups, ".")
	h2.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func (h *Handler) paint(level slog.Level, msg string) string {
	if !h.opts.Color {
		return msg
	}
	var c *color.Color
	switch {
	case level >= slog.LevelError:
		c = color.New(color.Bold, color.FgRed)
	case level >= slog.LevelWarn:
		c = color.New(color.Bold, color.FgYellow)
	default:
		return msg
	}
	c.EnableColor()
	// Color each line on its own so prefixes stay unstyled.
	lines := strings.Split(msg, "\n")
	for i, l := range lines {
		lines[i] = c.Sprint(l)
	}
	return strings.Join(lines, "\n")
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error:   "
	case level >= slog.LevelWarn:
		return "warn:    "
	case level >= slog.LevelInfo:
		return "info:    "
	default:
		return "debug:   "
	}
}

func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(sb, key, ga)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := fmt.Sprint(v.Any())
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
