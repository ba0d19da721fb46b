package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

// syslogSink is the subset of *syslog.Writer used by SyslogHandler.
type syslogSink interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Close() error
}

// SyslogHandler implements slog.Handler on top of a syslog connection.
//
// Records are rendered as logfmt (or JSON) without a timestamp, since
// syslog stamps them, and sent with the priority matching their level.
type SyslogHandler struct {
	w     syslogSink
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

// NewSyslogHandler creates a SyslogHandler writing to w.
func NewSyslogHandler(w syslogSink, opts *slog.HandlerOptions, json bool) *SyslogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	buf := new(bytes.Buffer)
	hopts := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: dropTime,
	}

	var inner slog.Handler
	if json {
		inner = slog.NewJSONHandler(buf, hopts)
	} else {
		inner = slog.NewTextHandler(buf, hopts)
	}
	return &SyslogHandler{w: w, mu: &sync.Mutex{}, buf: buf, inner: inner}
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// Enabled reports whether the handler handles records at the given level
func (h *SyslogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle renders r and sends it with the matching syslog priority.
func (h *SyslogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		h.mu.Unlock()
		return err
	}
	line := strings.TrimRight(h.buf.String(), "\n")
	h.mu.Unlock()

	switch {
	case r.Level < slog.LevelInfo:
		return h.w.Debug(line)
	case r.Level < slog.LevelWarn:
		return h.w.Info(line)
	case r.Level < slog.LevelError:
		return h.w.Warning(line)
	default:
		return h.w.Err(line)
	}
}

// WithAttrs returns a new handler with additional attrs
func (h *SyslogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SyslogHandler{w: h.w, mu: h.mu, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new handler with a group name
func (h *SyslogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SyslogHandler{w: h.w, mu: h.mu, buf: h.buf, inner: h.inner.WithGroup(name)}
}
