package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// filteredKey marks entries dropped by FilterHook.
const filteredKey = "_filtered"

// AsyncHook writes entries on a background goroutine so that slow writers never block a
// request. When the buffer is full new entries are dropped.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters starts the writer goroutine. bufferSize <= 0 means 1000.
//
// Parameters:
//   - writers: every formatted entry is written to each of them in order
//   - bufferSize: queued entries; when the queue is full new entries are dropped
//
// Returns:
//   - *AsyncHook: running; Close it to drain the queue
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	h.wg.Add(1)
	go h.processEntries()
	return h
}

// Levels implements logrus.Hook.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. It never blocks.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if filtered, _ := entry.Data[filteredKey].(bool); filtered {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		// after Close, write synchronously
		return h.write(entry)
	}

	select {
	case h.entries <- entry.Dup():
	default:
	}
	return nil
}

func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// the logger cannot log its own failure
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			_ = h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) error {
	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return err
	}
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
	return nil
}

// Close stops accepting entries and waits for the queue to drain.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// FilterHook marks entries from modules outside the allow-list. Warnings and errors always
// pass.
type FilterHook struct {
	allowedModules map[string]bool
}

// NewFilterHook builds the hook from cfg.FilterModules.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	h := &FilterHook{allowedModules: map[string]bool{}}
	for _, m := range strings.Split(cfg.FilterModules, ",") {
		if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
			h.allowedModules[m] = true
		}
	}
	if h.allowedModules["*"] {
		h.allowedModules = map[string]bool{}
	}
	return h
}

// Levels implements logrus.Hook.
func (h *FilterHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}
}

// Fire implements logrus.Hook.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !h.Allows(entry) {
		entry.Data[filteredKey] = true
	}
	return nil
}

// Allows reports whether entry passes the module filter.
func (h *FilterHook) Allows(entry *logrus.Entry) bool {
	if len(h.allowedModules) == 0 {
		return true
	}
	module, ok := entry.Data["module"].(string)
	if !ok {
		return true
	}
	return h.allowedModules[strings.ToLower(module)]
}
