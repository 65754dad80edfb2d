package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LogstashWriter forwards newline-delimited JSON log entries to a Logstash TCP
// input. It satisfies zapcore.WriteSyncer so it can be teed next to stdout.
// Entries written while the endpoint is unreachable are dropped and counted;
// a write never blocks the request path for longer than the write timeout.
type LogstashWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	dial          func(network, addr string, timeout time.Duration) (net.Conn, error)
	now           func() time.Time

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool

	dropped atomic.Uint64
}

type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.dialTimeout = d }
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.writeTimeout = d }
}

// WithRetryInterval sets the cool-down after a failed dial or write. Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) { w.retryInterval = d }
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		dial:          net.DialTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write reports success for dropped entries so the logger never surfaces
// transport failures to the caller.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	payload := make([]byte, len(p), len(p)+1)
	copy(payload, p)
	if payload[len(payload)-1] != '\n' {
		payload = append(payload, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	if err := w.connectLocked(); err != nil {
		w.dropped.Add(1)
		return len(p), nil
	}

	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(w.now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(payload); err != nil {
		w.dropped.Add(1)
		w.resetLocked()
		w.backoffLocked()
	}
	return len(p), nil
}

// Sync is a no-op; entries are flushed on every Write.
func (w *LogstashWriter) Sync() error {
	return nil
}

// Dropped returns how many entries were discarded since the writer was created.
func (w *LogstashWriter) Dropped() uint64 {
	return w.dropped.Load()
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.resetLocked()
}

func (w *LogstashWriter) connectLocked() error {
	if w.conn != nil {
		return nil
	}
	if !w.nextRetry.IsZero() && w.now().Before(w.nextRetry) {
		return errCoolingDown
	}

	conn, err := w.dial("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.backoffLocked()
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}

func (w *LogstashWriter) resetLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) backoffLocked() {
	if w.retryInterval <= 0 {
		w.nextRetry = time.Time{}
		return
	}
	w.nextRetry = w.now().Add(w.retryInterval)
}

var errCoolingDown = errors.New("logstash: retry cooldown in effect")
