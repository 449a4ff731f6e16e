// ABOUTME: Serialized queue for fire-and-forget side effects.
// ABOUTME: Context pushes and release invocations run here; Flush lets tests drain it.

package ownership

import (
	"context"
	"log/slog"
)

const effectQueueSize = 64

// effectQueue runs queued side effects on a single background worker.
// Callers never observe effect results; tests call flush to wait for the
// queue to drain instead of sleeping.
type effectQueue struct {
	ch     chan func(ctx context.Context)
	ctx    context.Context
	logger *slog.Logger
}

func newEffectQueue(ctx context.Context, logger *slog.Logger) *effectQueue {
	q := &effectQueue{
		ch:     make(chan func(ctx context.Context), effectQueueSize),
		ctx:    ctx,
		logger: logger,
	}
	go q.run()
	return q
}

func (q *effectQueue) run() {
	for {
		select {
		case fn := <-q.ch:
			fn(q.ctx)
		case <-q.ctx.Done():
			return
		}
	}
}

// enqueue schedules an effect. If the coordinator is closed the effect is
// dropped; every effect is best-effort by contract.
func (q *effectQueue) enqueue(fn func(ctx context.Context)) {
	select {
	case q.ch <- fn:
	case <-q.ctx.Done():
		q.logger.Debug("effect dropped after close")
	}
}

// flush blocks until every effect enqueued before the call has run.
func (q *effectQueue) flush(ctx context.Context) error {
	done := make(chan struct{})
	q.enqueue(func(context.Context) { close(done) })

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return q.ctx.Err()
	}
}
