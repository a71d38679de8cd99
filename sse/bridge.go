package sse

import (
	"context"
	"encoding/json"

	"github.com/kbukum/streamkit/paginate"
	"github.com/kbukum/streamkit/stream"
)

// Bind drains a pager's snapshot stream into the hub, encoding each
// snapshot as JSON. It blocks until the stream completes or ctx is
// cancelled, then closes the hub. A terminal stream error is returned
// after the hub is closed.
func Bind[D any](ctx context.Context, hub *Hub, snapshots *stream.Stream[[]paginate.Slot[D]]) error {
	defer hub.Close()
	return stream.Drain(ctx, snapshots, func(_ context.Context, snap []paginate.Slot[D]) error {
		data, err := EncodeSnapshot(snap)
		if err != nil {
			return err
		}
		hub.Publish(data)
		return nil
	})
}

// EncodeSnapshot encodes a buffer snapshot as a JSON array, with
// placeholder slots encoded as null.
func EncodeSnapshot[D any](snap []paginate.Slot[D]) ([]byte, error) {
	vals := make([]any, len(snap))
	for i, s := range snap {
		if s.Filled {
			vals[i] = s.Value
		}
	}
	return json.Marshal(vals)
}
