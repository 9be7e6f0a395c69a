package manager

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"urlcheck/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Metrics holds the queue and processing counts of a Limiter.
type Metrics struct {
	QueueSize              int
	ProcessingCount        int
	LastLogTime            time.Time
	queueSizeChanged       bool
	processingCountChanged bool
	mu                     sync.Mutex
}

// Limiter bounds the number of predictions forwarded upstream at once.
type Limiter struct {
	name     string
	sem      chan struct{}
	wait     time.Duration
	metrics  *Metrics
	interval time.Duration
	closed   chan struct{}
	once     sync.Once
}

// NewLimiter creates a Limiter allowing size concurrent holders. Callers queue
// for at most wait before giving up. The metrics monitor starts immediately.
func NewLimiter(name string, size int, wait time.Duration) *Limiter {
	if size <= 0 {
		log.Warnf("Limiter '%s' has invalid size %d. Setting to default size %d.", name, size, 10)
		size = 10
	}
	l := &Limiter{
		name:     name,
		sem:      make(chan struct{}, size),
		wait:     wait,
		metrics:  &Metrics{},
		interval: 500 * time.Millisecond,
		closed:   make(chan struct{}),
	}
	go l.monitorMetrics()
	return l
}

// Acquire waits for a slot. It returns a release func and true on success, or
// false when the wait elapsed or ctx was cancelled first.
func (l *Limiter) Acquire(ctx context.Context) (func(), bool) {
	l.metrics.incrementQueue()

	// A free slot is taken without racing the timer, so a short or zero
	// wait never rejects while capacity is available.
	select {
	case l.sem <- struct{}{}:
		return l.acquired(), true
	default:
	}

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		return l.acquired(), true
	case <-timer.C:
		l.metrics.decrementQueue()
		return nil, false
	case <-ctx.Done():
		l.metrics.decrementQueue()
		return nil, false
	}
}

// acquired records a taken slot and returns its release func.
func (l *Limiter) acquired() func() {
	l.metrics.incrementProcessing()
	l.metrics.decrementQueue()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.metrics.decrementProcessing()
			<-l.sem
		})
	}
}

// Snapshot returns the current queued and processing counts.
func (l *Limiter) Snapshot() (queued, processing int) {
	l.metrics.mu.Lock()
	defer l.metrics.mu.Unlock()
	return l.metrics.QueueSize, l.metrics.ProcessingCount
}

// monitorMetrics logs the counts at most once a second, and only when they changed.
func (l *Limiter) monitorMetrics() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.closed:
			return
		case <-ticker.C:
		}

		m := l.metrics
		m.mu.Lock()
		currentTime := time.Now()
		if (m.queueSizeChanged || m.processingCountChanged) &&
			currentTime.Sub(m.LastLogTime) >= time.Second {
			log.Infof("Limiter: %s | Queued: %d | Processing: %d",
				l.name, m.QueueSize, m.ProcessingCount)
			m.LastLogTime = currentTime
			m.resetChangeFlags()
		}
		m.mu.Unlock()
	}
}

// Shutdown stops the metrics monitor. Held slots stay valid.
func (l *Limiter) Shutdown() {
	l.once.Do(func() {
		close(l.closed)
	})
}

// Methods for Metrics

func (m *Metrics) incrementQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueSize++
	m.queueSizeChanged = true
}

func (m *Metrics) decrementQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueueSize > 0 {
		m.QueueSize--
		m.queueSizeChanged = true
	}
}

func (m *Metrics) incrementProcessing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessingCount++
	m.processingCountChanged = true
}

func (m *Metrics) decrementProcessing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ProcessingCount > 0 {
		m.ProcessingCount--
		m.processingCountChanged = true
	}
}

func (m *Metrics) resetChangeFlags() {
	m.queueSizeChanged = false
	m.processingCountChanged = false
}
