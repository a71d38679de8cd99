package stream

import (
	"context"
	"sync"
)

// Map transforms each value using fn. An fn error terminates the stream.
func Map[I, O any](s *Stream[I], fn func(context.Context, I) (O, error)) *Stream[O] {
	return &Stream[O]{
		subscribe: func(ctx context.Context) <-chan Event[O] {
			mapCtx, cancel := context.WithCancel(ctx)
			in := s.Subscribe(mapCtx)
			out := make(chan Event[O])
			go func() {
				defer close(out)
				defer cancel()
				for ev := range in {
					if ev.Err != nil {
						send(ctx, out, Event[O]{Err: ev.Err})
						return
					}
					o, err := fn(ctx, ev.Val)
					if err != nil {
						send(ctx, out, Event[O]{Err: err})
						return
					}
					if !send(ctx, out, Event[O]{Val: o}) {
						return
					}
				}
			}()
			return out
		},
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](s *Stream[T], fn func(T) bool) *Stream[T] {
	return &Stream[T]{
		subscribe: func(ctx context.Context) <-chan Event[T] {
			filterCtx, cancel := context.WithCancel(ctx)
			in := s.Subscribe(filterCtx)
			out := make(chan Event[T])
			go func() {
				defer close(out)
				defer cancel()
				for ev := range in {
					if ev.Err != nil {
						send(ctx, out, ev)
						return
					}
					if !fn(ev.Val) {
						continue
					}
					if !send(ctx, out, ev) {
						return
					}
				}
			}()
			return out
		},
	}
}

// Take completes the stream after n values. The upstream subscription is
// torn down as soon as the limit is reached.
func Take[T any](s *Stream[T], n int) *Stream[T] {
	return &Stream[T]{
		subscribe: func(ctx context.Context) <-chan Event[T] {
			takeCtx, cancel := context.WithCancel(ctx)
			in := s.Subscribe(takeCtx)
			out := make(chan Event[T])
			go func() {
				defer close(out)
				defer cancel()
				remaining := n
				for ev := range in {
					if ev.Err != nil {
						send(ctx, out, ev)
						return
					}
					if remaining <= 0 {
						return
					}
					if !send(ctx, out, ev) {
						return
					}
					remaining--
					if remaining == 0 {
						return
					}
				}
			}()
			return out
		},
	}
}

// Merge combines multiple streams concurrently. Values are delivered as they
// arrive from any source; relative order across sources is NOT preserved.
// The first terminal error wins and tears down the remaining sources.
func Merge[T any](streams ...*Stream[T]) *Stream[T] {
	return &Stream[T]{
		subscribe: func(ctx context.Context) <-chan Event[T] {
			mergeCtx, cancel := context.WithCancel(ctx)
			out := make(chan Event[T])

			var mu sync.Mutex
			failed := false
			// Serializes deliveries so nothing follows a terminal error.
			forward := func(ev Event[T]) bool {
				mu.Lock()
				defer mu.Unlock()
				if failed {
					return false
				}
				if !send(ctx, out, ev) {
					return false
				}
				if ev.Err != nil {
					failed = true
					cancel()
					return false
				}
				return true
			}

			var wg sync.WaitGroup
			for _, s := range streams {
				in := s.Subscribe(mergeCtx)
				wg.Add(1)
				go func(in <-chan Event[T]) {
					defer wg.Done()
					for ev := range in {
						if !forward(ev) {
							return
						}
					}
				}(in)
			}

			go func() {
				wg.Wait()
				cancel()
				close(out)
			}()
			return out
		},
	}
}

// CombineLatest pairs the latest value of each input through fn. An output
// is produced on every input event once both inputs have produced at least
// one value. The stream completes when both inputs complete; either input's
// terminal error terminates the output.
func CombineLatest[A, B, O any](a *Stream[A], b *Stream[B], fn func(A, B) O) *Stream[O] {
	return &Stream[O]{
		subscribe: func(ctx context.Context) <-chan Event[O] {
			clCtx, cancel := context.WithCancel(ctx)
			as := a.Subscribe(clCtx)
			bs := b.Subscribe(clCtx)
			out := make(chan Event[O])

			go func() {
				defer close(out)
				defer cancel()

				var latestA A
				var latestB B
				haveA, haveB := false, false

				for as != nil || bs != nil {
					select {
					case ev, open := <-as:
						if !open {
							as = nil
							continue
						}
						if ev.Err != nil {
							send(ctx, out, Event[O]{Err: ev.Err})
							return
						}
						latestA, haveA = ev.Val, true
					case ev, open := <-bs:
						if !open {
							bs = nil
							continue
						}
						if ev.Err != nil {
							send(ctx, out, Event[O]{Err: ev.Err})
							return
						}
						latestB, haveB = ev.Val, true
					case <-ctx.Done():
						return
					}
					if haveA && haveB {
						if !send(ctx, out, Event[O]{Val: fn(latestA, latestB)}) {
							return
						}
					}
				}
			}()
			return out
		},
	}
}
