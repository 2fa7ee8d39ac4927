package layout

import (
	"context"
	"sync"
)

// SaveFunc writes a layout to the external store.
type SaveFunc func(ctx context.Context, layout PersistedLayout) error

// PersistQueue serializes layout writes for one session. Mutations enqueue the
// full layout; a single worker issues writes in order, coalescing to the
// latest enqueued state so a slow early write can never clobber a later one.
// Write failures are recorded through telemetry and never rolled back locally.
type PersistQueue struct {
	save      SaveFunc
	telemetry Telemetry

	mu      sync.Mutex
	latest  *PersistedLayout
	pending int

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// NewPersistQueue starts the worker goroutine for one session.
func NewPersistQueue(save SaveFunc, telemetry Telemetry) *PersistQueue {
	q := &PersistQueue{
		save:      save,
		telemetry: normalizeTelemetry(telemetry),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue schedules the layout for persistence, replacing any earlier state
// from this session that has not been written yet.
func (q *PersistQueue) Enqueue(l PersistedLayout) {
	q.mu.Lock()
	q.latest = &l
	q.pending++
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pending reports how many enqueued mutations have not been flushed yet.
func (q *PersistQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// Close flushes any queued write and stops the worker.
func (q *PersistQueue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *PersistQueue) run() {
	for {
		select {
		case <-q.done:
			q.flush()
			return
		case <-q.wake:
			q.flush()
		}
	}
}

func (q *PersistQueue) flush() {
	for {
		q.mu.Lock()
		l := q.latest
		count := q.pending
		q.latest = nil
		q.mu.Unlock()
		if l == nil {
			return
		}
		if err := q.save(context.Background(), *l); err != nil {
			q.telemetry.Record(context.Background(), "layout.persist.error", map[string]any{
				"error": err.Error(),
			})
		}
		q.mu.Lock()
		q.pending -= count
		q.mu.Unlock()
	}
}
