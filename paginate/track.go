package paginate

import (
	"context"

	"github.com/kbukum/streamkit/stream"
)

// TrackOption configures the cursor tracker.
type TrackOption func(*trackOptions)

type trackOptions struct {
	startPage int
}

// WithStartPage sets the first page number of each epoch. Default 1.
func WithStartPage(page int) TrackOption {
	return func(o *trackOptions) {
		o.startPage = page
	}
}

// Track combines a reset stream and a next stream into a stream of page
// requests. Any reset value (re)starts paging and is carried into every
// request until the next reset; any next value advances the page counter.
//
// A request is produced on every input event once both inputs have produced
// at least one value, in input arrival order. Page numbers within one epoch
// form the strictly increasing sequence startPage, startPage+1, ... and the
// counter restarts at startPage on every reset. An error on either input
// propagates unchanged and terminates the output.
func Track[T, N any](reset *stream.Stream[T], next *stream.Stream[N], size int, opts ...TrackOption) *stream.Stream[Request[T]] {
	o := trackOptions{startPage: 1}
	for _, opt := range opts {
		opt(&o)
	}

	return stream.New(func(ctx context.Context, emit func(Request[T]) bool) error {
		trackCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		resets := reset.Subscribe(trackCtx)
		nexts := next.Subscribe(trackCtx)

		page := o.startPage
		var payload T
		havePayload, haveNext := false, false

		for resets != nil || nexts != nil {
			fire := false
			select {
			case ev, open := <-resets:
				if !open {
					resets = nil
					continue
				}
				if ev.Err != nil {
					return ev.Err
				}
				payload, havePayload = ev.Val, true
				page = o.startPage
				fire = haveNext
			case ev, open := <-nexts:
				if !open {
					nexts = nil
					continue
				}
				if ev.Err != nil {
					return ev.Err
				}
				haveNext = true
				fire = havePayload
			case <-ctx.Done():
				return nil
			}
			if !fire {
				continue
			}
			if !emit(Request[T]{Payload: payload, Page: page, Size: size}) {
				return nil
			}
			page++
		}
		return nil
	})
}
