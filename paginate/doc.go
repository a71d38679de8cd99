// Package paginate implements an incremental, cursor-based pagination engine
// over push-based streams.
//
// Two pieces compose in sequence. Track turns a "reset" stream and a "load
// next page" stream into a stream of page requests, keeping a page counter
// that restarts on every reset. A Pager consumes those requests, calls a
// caller-supplied fetch function per admitted request, and maintains an
// accumulating buffer of results which it emits as snapshots: once
// immediately when a fetch starts (optionally padded with placeholder
// slots), and again when the fetch settles.
//
//	resets := stream.NewEmitter[Query]()
//	nexts := stream.NewEmitter[struct{}]()
//
//	requests := paginate.Track(resets.Stream(), nexts.Stream(), 20)
//	pager := paginate.NewPager(fetchArticles)
//	snapshots := pager.Apply(requests)
//
//	for ev := range snapshots.Subscribe(ctx) {
//	    render(ev.Val)
//	}
//
// A request is admitted only while the buffer length is an exact multiple of
// the page size; a short page therefore closes the current epoch to further
// fetches until the next reset. A newly admitted request supersedes any
// fetch still in flight (latest wins), and a failed fetch is logged and
// treated as an empty page rather than terminating the output stream.
package paginate
