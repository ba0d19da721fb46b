package logger

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syslogRecord struct {
	priority string
	line     string
}

// fakeSyslog records what would be sent to the syslog daemon.
type fakeSyslog struct {
	mu      sync.Mutex
	records []syslogRecord
	closed  bool
}

func (f *fakeSyslog) add(p, m string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, syslogRecord{p, m})
	return nil
}

func (f *fakeSyslog) Debug(m string) error   { return f.add("debug", m) }
func (f *fakeSyslog) Info(m string) error    { return f.add("info", m) }
func (f *fakeSyslog) Warning(m string) error { return f.add("warning", m) }
func (f *fakeSyslog) Err(m string) error     { return f.add("err", m) }
func (f *fakeSyslog) Close() error           { f.closed = true; return nil }

func TestSyslogHandler(t *testing.T) {
	t.Run("PriorityFollowsLevel", func(t *testing.T) {
		sink := &fakeSyslog{}
		l := slog.New(NewSyslogHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug}, false))

		l.Debug("d")
		l.Info("i")
		l.Warn("w")
		l.Error("e")

		require.Len(t, sink.records, 4)
		assert.Equal(t, "debug", sink.records[0].priority)
		assert.Equal(t, "info", sink.records[1].priority)
		assert.Equal(t, "warning", sink.records[2].priority)
		assert.Equal(t, "err", sink.records[3].priority)
	})

	t.Run("NoTimestampNoNewline", func(t *testing.T) {
		sink := &fakeSyslog{}
		l := slog.New(NewSyslogHandler(sink, nil, false))

		l.Info("authentication failed", KeyUser, "alice", KeyStatus, "PAM_AUTH_ERR")

		require.Len(t, sink.records, 1)
		line := sink.records[0].line
		assert.NotContains(t, line, "time=")
		assert.NotContains(t, line, "\n")
		assert.Contains(t, line, `msg="authentication failed"`)
		assert.Contains(t, line, "user=alice")
		assert.Contains(t, line, "status=PAM_AUTH_ERR")
	})

	t.Run("LevelFilter", func(t *testing.T) {
		sink := &fakeSyslog{}
		l := slog.New(NewSyslogHandler(sink, &slog.HandlerOptions{Level: slog.LevelWarn}, false))

		l.Info("dropped")
		l.Warn("kept")

		require.Len(t, sink.records, 1)
		assert.Contains(t, sink.records[0].line, "kept")
	})

	t.Run("JSONWithAttrs", func(t *testing.T) {
		sink := &fakeSyslog{}
		l := slog.New(NewSyslogHandler(sink, nil, true)).With(KeyAttempt, "a1")

		l.Info("ok")

		require.Len(t, sink.records, 1)
		assert.Contains(t, sink.records[0].line, `"attempt":"a1"`)
		assert.NotContains(t, sink.records[0].line, `"time"`)
	})

	t.Run("PackageLoggerRoutesToSink", func(t *testing.T) {
		fake := &fakeSyslog{}

		mu.Lock()
		original := sink
		sink = fake
		mu.Unlock()
		reconfigure()
		defer func() {
			mu.Lock()
			sink = original
			mu.Unlock()
			reconfigure()
		}()

		SetLevel("INFO")
		Warn("config rejected", KeyOption, "region")

		require.Len(t, fake.records, 1)
		assert.Equal(t, "warning", fake.records[0].priority)
		assert.Contains(t, fake.records[0].line, "option=region")
	})
}
