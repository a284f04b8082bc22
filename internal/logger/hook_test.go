package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(cfg *LogConfig, out *syncBuffer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(NewFilterHook(cfg))
	h := NewAsyncHookWithWriters([]io.Writer{out}, 10)
	l.AddHook(h)
	l.SetOutput(io.Discard)
	return l, h
}

func TestAsyncHook_WritesAfterClose(t *testing.T) {
	out := &syncBuffer{}
	l, h := newTestLogger(&LogConfig{}, out)

	l.Info("first")
	assert.NoError(t, h.Close())
	assert.Contains(t, out.String(), "first")

	l.Info("second")
	assert.Contains(t, out.String(), "second")
}

func TestFilterHook_ModuleAllowList(t *testing.T) {
	out := &syncBuffer{}
	l, h := newTestLogger(&LogConfig{FilterModules: "sequence"}, out)

	l.WithField("module", "sequence").Info("kept")
	l.WithField("module", "business").Info("dropped")
	l.WithField("module", "business").Warn("warned")
	l.Info("unscoped")
	assert.NoError(t, h.Close())

	s := out.String()
	assert.Contains(t, s, "kept")
	assert.NotContains(t, s, "dropped")
	assert.Contains(t, s, "warned")
	assert.Contains(t, s, "unscoped")
}

func TestFilterHook_WildcardAllowsAll(t *testing.T) {
	h := NewFilterHook(&LogConfig{FilterModules: "*"})
	entry := logrus.NewEntry(logrus.New()).WithField("module", "anything")
	assert.True(t, h.Allows(entry))
}
