package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// TextHandler writes one line per record for a terminal or a log file:
//
//	2026-10-18 14:03:07 WARN authentication failed attempt=3f2c user=alice status=PAM_AUTH_ERR
//
// Attributes bound with WithAttrs are rendered once, when bound. Group names
// become dotted key prefixes, so a group "cognito" holding "region" prints
// as cognito.region=...
type TextHandler struct {
	level  slog.Leveler
	w      io.Writer
	mu     *sync.Mutex
	color  bool
	prefix string // "" or "group.sub."
	bound  []byte // pre-rendered WithAttrs output
}

// NewTextHandler creates a TextHandler writing to w. A nil level means INFO.
func NewTextHandler(w io.Writer, level slog.Leveler, color bool) *TextHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &TextHandler{level: level, w: w, mu: &sync.Mutex{}, color: color}
}

func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, 256)
	if !r.Time.IsZero() {
		line = r.Time.AppendFormat(line, time.DateTime)
		line = append(line, ' ')
	}
	line = h.appendLevel(line, r.Level)
	line = append(line, ' ')
	line = append(line, r.Message...)
	line = append(line, h.bound...)
	r.Attrs(func(a slog.Attr) bool {
		line = h.appendAttr(line, h.prefix, a)
		return true
	})
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(line)
	return err
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	c.bound = append([]byte(nil), h.bound...)
	for _, a := range attrs {
		c.bound = h.appendAttr(c.bound, h.prefix, a)
	}
	return &c
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func (h *TextHandler) appendLevel(line []byte, level slog.Level) []byte {
	name, color := "ERROR", colorRed
	switch {
	case level < slog.LevelInfo:
		name, color = "DEBUG", colorGray
	case level < slog.LevelWarn:
		name, color = "INFO", colorGreen
	case level < slog.LevelError:
		name, color = "WARN", colorYellow
	}
	if !h.color {
		return append(line, name...)
	}
	line = append(line, color...)
	line = append(line, name...)
	return append(line, colorReset...)
}

// appendAttr renders a as " key=value". Empty attributes and empty groups
// render nothing; a group with an empty key is inlined.
func (h *TextHandler) appendAttr(line []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return line
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			line = h.appendAttr(line, prefix, ga)
		}
		return line
	}

	line = append(line, ' ')
	if h.color {
		line = append(line, colorCyan...)
	}
	line = append(line, prefix...)
	line = append(line, a.Key...)
	if h.color {
		line = append(line, colorReset...)
	}
	line = append(line, '=')
	return appendValue(line, a.Value)
}

func appendValue(line []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendString(line, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(line, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(line, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(line, v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(line, v.Bool())
	case slog.KindDuration:
		return append(line, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(line, time.RFC3339)
	default:
		return appendString(line, fmt.Sprint(v.Any()))
	}
}

// appendString quotes s when it is empty or would break key=value parsing.
func appendString(line []byte, s string) []byte {
	if s == "" {
		return strconv.AppendQuote(line, s)
	}
	for _, r := range s {
		if r == '=' || r == '"' || r == utf8.RuneError || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return strconv.AppendQuote(line, s)
		}
	}
	return append(line, s...)
}
