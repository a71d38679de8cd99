package stream

import "context"

// Event carries one delivery on a stream: a value, or a terminal error.
// An event with Err set is the last delivery before the channel closes.
type Event[T any] struct {
	Val T
	Err error
}

// Stream is a lazy push-based source of values.
// Each Subscribe call starts an independent delivery of the stream.
type Stream[T any] struct {
	subscribe func(ctx context.Context) <-chan Event[T]
}

// Subscribe starts delivery. The returned channel closes when the stream
// completes, after a terminal error event, or when ctx is cancelled.
// Cancelling ctx tears down the whole operator chain behind this stream.
func (s *Stream[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	return s.subscribe(ctx)
}

// --- Constructors ---

// New creates a stream driven by a producer function. The producer runs in
// its own goroutine once the stream is subscribed. emit returns false when
// the subscription is gone; the producer should stop then. A non-nil return
// error is delivered as the stream's terminal error.
func New[T any](producer func(ctx context.Context, emit func(T) bool) error) *Stream[T] {
	return &Stream[T]{
		subscribe: func(ctx context.Context) <-chan Event[T] {
			out := make(chan Event[T])
			go func() {
				defer close(out)
				emit := func(v T) bool {
					return send(ctx, out, Event[T]{Val: v})
				}
				if err := producer(ctx, emit); err != nil {
					send(ctx, out, Event[T]{Err: err})
				}
			}()
			return out
		},
	}
}

// FromChannel creates a stream that delivers every value received on ch
// until ch is closed. The channel is consumed, so the stream supports only
// one subscription; use an Emitter for fan-out.
func FromChannel[T any](ch <-chan T) *Stream[T] {
	return New(func(ctx context.Context, emit func(T) bool) error {
		for {
			select {
			case v, open := <-ch:
				if !open {
					return nil
				}
				if !emit(v) {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// FromSlice creates a stream that delivers the items in order, then completes.
func FromSlice[T any](items []T) *Stream[T] {
	return New(func(_ context.Context, emit func(T) bool) error {
		for _, v := range items {
			if !emit(v) {
				return nil
			}
		}
		return nil
	})
}

// --- Terminals ---

// Collect subscribes and gathers all values until the stream completes.
// On a terminal error the values delivered so far are returned with it.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var result []T
	for ev := range s.Subscribe(ctx) {
		if ev.Err != nil {
			return result, ev.Err
		}
		result = append(result, ev.Val)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// Drain subscribes and pushes each value into sink until the stream
// completes. A sink error stops delivery and is returned.
func Drain[T any](ctx context.Context, s *Stream[T], sink func(context.Context, T) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for ev := range s.Subscribe(ctx) {
		if ev.Err != nil {
			return ev.Err
		}
		if err := sink(ctx, ev.Val); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// send delivers ev unless the subscription context ends first.
func send[T any](ctx context.Context, ch chan<- Event[T], ev Event[T]) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
