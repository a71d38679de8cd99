package stream

import (
	"context"
	"sync"
)

const defaultEmitterBuffer = 64

// Emitter is a hot, multi-subscriber stream source. Each Emit call fans out
// to every active subscription. Subscribers that fall behind their buffer
// drop values rather than blocking the emitter.
type Emitter[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event[T]
	nextID uint64
	buffer int
	closed bool
	err    error
}

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterOptions)

type emitterOptions struct {
	buffer int
}

// WithBuffer sets the per-subscriber buffer size.
func WithBuffer(n int) EmitterOption {
	return func(o *emitterOptions) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// NewEmitter creates an emitter with no subscribers.
func NewEmitter[T any](opts ...EmitterOption) *Emitter[T] {
	o := emitterOptions{buffer: defaultEmitterBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	return &Emitter[T]{
		subs:   make(map[uint64]chan Event[T]),
		buffer: o.buffer,
	}
}

// Emit delivers v to every active subscriber and reports how many accepted
// it. A subscriber with a full buffer is skipped. Emit after Close or Fail
// is a no-op.
func (e *Emitter[T]) Emit(v T) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0
	}
	delivered := 0
	for _, sub := range e.subs {
		select {
		case sub <- Event[T]{Val: v}:
			delivered++
		default:
			// Subscriber buffer full, drop for this subscriber.
		}
	}
	return delivered
}

// Close completes the stream for all subscribers.
func (e *Emitter[T]) Close() {
	e.terminate(nil)
}

// Fail terminates the stream for all subscribers with err. Subscribers
// receive any still-buffered values first, then the terminal error.
func (e *Emitter[T]) Fail(err error) {
	e.terminate(err)
}

func (e *Emitter[T]) terminate(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.err = err
	for _, sub := range e.subs {
		close(sub)
	}
	e.subs = nil
}

// Stream returns a stream view of the emitter. Each subscription receives
// values emitted after it subscribes.
func (e *Emitter[T]) Stream() *Stream[T] {
	return &Stream[T]{subscribe: e.subscribeFn}
}

func (e *Emitter[T]) subscribeFn(ctx context.Context) <-chan Event[T] {
	out := make(chan Event[T])

	e.mu.Lock()
	if e.closed {
		err := e.err
		e.mu.Unlock()
		go func() {
			defer close(out)
			if err != nil {
				send(ctx, out, Event[T]{Err: err})
			}
		}()
		return out
	}
	sub := make(chan Event[T], e.buffer)
	id := e.nextID
	e.nextID++
	e.subs[id] = sub
	e.mu.Unlock()

	go func() {
		defer close(out)
		defer e.drop(id)
		for {
			select {
			case ev, open := <-sub:
				if !open {
					e.mu.Lock()
					err := e.err
					e.mu.Unlock()
					if err != nil {
						send(ctx, out, Event[T]{Err: err})
					}
					return
				}
				if !send(ctx, out, ev) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (e *Emitter[T]) drop(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	delete(e.subs, id)
}
