// Package stream provides composable, push-based stream operators.
//
// A Stream is lazy: no work happens until Subscribe is called. Subscribing
// starts the producer and returns a channel of events; the producer pushes
// values to the subscriber as they are produced, and the channel closes when
// the stream completes, fails, or the subscription context is cancelled.
//
// An Event carries either a value or a terminal error. An event with Err set
// is the last delivery on a subscription.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Take: complete after n values
//   - Merge: combine multiple streams concurrently
//   - CombineLatest: pair the latest values of two streams
//
// # Terminals
//
//   - Collect: gather all values into a slice
//   - Drain: push each value into a sink function
//
// # Usage
//
//	src := stream.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := stream.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	evens := stream.Filter(doubled, func(n int) bool { return n%2 == 0 })
//	results, _ := stream.Collect(ctx, evens)
//
// For hot, multi-subscriber sources use Emitter, which fans out each Emit
// call to every active subscription.
package stream
