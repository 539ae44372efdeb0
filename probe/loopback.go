package probe

import (
	"errors"
	"sync"
	"time"
)

// Loopback is a scriptable fake Probe used by tests. Callers queue up the
// bytes the target is supposed to reply with (QueueBytes) or a simulated
// timeout (QueueTimeout), then drive the engine under test and inspect
// Sent() to assert the exact wire trace.
type Loopback struct {
	mu    sync.Mutex
	sent  [][]byte
	queue []loopbackEvent

	timeout time.Duration
	power   bool
	boot0   bool
	boot1   bool
	reset   bool // true == released
}

type loopbackEvent struct {
	data    []byte
	timeout bool
}

// NewLoopback returns a Loopback with the reset line released (idle) and
// power off, matching a freshly-constructed probe.
func NewLoopback() *Loopback {
	return &Loopback{reset: true}
}

// QueueBytes schedules b to be handed out by subsequent Recv calls, possibly
// split across several calls the way a real link would deliver it.
func (l *Loopback) QueueBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := append([]byte(nil), b...)
	l.queue = append(l.queue, loopbackEvent{data: cp})
}

// QueueTimeout appends a simulated timeout to the queue: the Recv call that
// reaches it, after everything queued before it, fails with ErrTimeout,
// regardless of what is queued behind it.
func (l *Loopback) QueueTimeout() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, loopbackEvent{timeout: true})
}

// Sent returns every byte slice passed to Send, in order.
func (l *Loopback) Sent() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.sent))
	copy(out, l.sent)
	return out
}

// SentBytes flattens every recorded Send call into one slice, for tests that
// only care about the overall wire trace.
func (l *Loopback) SentBytes() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []byte
	for _, s := range l.sent {
		out = append(out, s...)
	}
	return out
}

func (l *Loopback) Send(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := append([]byte(nil), data...)
	l.sent = append(l.sent, cp)
	return nil
}

func (l *Loopback) Recv(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, ErrTimeout
	}
	ev := l.queue[0]
	if ev.timeout {
		l.queue = l.queue[1:]
		return nil, ErrTimeout
	}
	if len(ev.data) < n {
		return nil, errors.New("probe: loopback has fewer queued bytes than requested")
	}
	out := ev.data[:n]
	if len(ev.data) == n {
		l.queue = l.queue[1:]
	} else {
		l.queue[0] = loopbackEvent{data: ev.data[n:]}
	}
	return out, nil
}

func (l *Loopback) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = nil
	return nil
}

func (l *Loopback) SetTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeout = d
}

// Timeout returns the most recently configured receive timeout, so tests
// can assert it was restored after a temporary raise.
func (l *Loopback) Timeout() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timeout
}

func (l *Loopback) SetPower(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.power = on
	return nil
}

func (l *Loopback) SetBoot(boot0, boot1 bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.boot0 = boot0
	l.boot1 = boot1
	return nil
}

func (l *Loopback) SetReset(released bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset = released
	return nil
}
