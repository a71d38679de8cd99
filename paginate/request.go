package paginate

import "context"

// Request describes one page to fetch. Payload carries the most recent
// reset value unchanged; Page and Size are owned by the cursor tracker.
type Request[T any] struct {
	Payload T
	Page    int
	Size    int
}

// Slot is one element of a buffer snapshot: a fetched value, or a
// placeholder padding the buffer to page size before data arrives.
type Slot[D any] struct {
	Value  D
	Filled bool
}

// Values extracts the filled values from a buffer snapshot, dropping
// placeholders.
func Values[D any](slots []Slot[D]) []D {
	vals := make([]D, 0, len(slots))
	for _, s := range slots {
		if s.Filled {
			vals = append(vals, s.Value)
		}
	}
	return vals
}

// Fetcher fetches one page of results for a request. It must return the
// complete page or an error; the pager cancels ctx when the request is
// superseded or the subscription is torn down.
type Fetcher[T, D any] func(ctx context.Context, req Request[T]) ([]D, error)
