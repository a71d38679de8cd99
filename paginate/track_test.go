package paginate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/streamkit/stream"
)

type query struct {
	Term string
}

func recvRequest(t *testing.T, ch <-chan stream.Event[Request[query]]) Request[query] {
	t.Helper()
	select {
	case ev, open := <-ch:
		if !open {
			t.Fatal("request stream completed unexpectedly")
		}
		if ev.Err != nil {
			t.Fatalf("request stream failed: %v", ev.Err)
		}
		return ev.Val
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for request")
	}
	return Request[query]{}
}

func expectSilence(t *testing.T, ch <-chan stream.Event[Request[query]]) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("expected no request, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrack_PagesIncreaseWithinEpoch(t *testing.T) {
	resets := make(chan query)
	nexts := make(chan struct{})
	requests := Track(stream.FromChannel(resets), stream.FromChannel(nexts), 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := requests.Subscribe(ctx)

	resets <- query{Term: "go"}
	expectSilence(t, out)

	nexts <- struct{}{}
	req := recvRequest(t, out)
	if req.Page != 1 || req.Size != 2 || req.Payload.Term != "go" {
		t.Fatalf("first request = %+v, want page 1 size 2 term go", req)
	}

	nexts <- struct{}{}
	if req := recvRequest(t, out); req.Page != 2 {
		t.Fatalf("second request page = %d, want 2", req.Page)
	}

	nexts <- struct{}{}
	if req := recvRequest(t, out); req.Page != 3 {
		t.Fatalf("third request page = %d, want 3", req.Page)
	}
}

func TestTrack_ResetRestartsCounter(t *testing.T) {
	resets := make(chan query)
	nexts := make(chan struct{})
	requests := Track(stream.FromChannel(resets), stream.FromChannel(nexts), 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := requests.Subscribe(ctx)

	resets <- query{Term: "a"}
	nexts <- struct{}{}
	recvRequest(t, out)
	nexts <- struct{}{}
	recvRequest(t, out)

	// A reset itself produces a request once both inputs are primed.
	resets <- query{Term: "b"}
	req := recvRequest(t, out)
	if req.Page != 1 {
		t.Fatalf("page after reset = %d, want 1", req.Page)
	}
	if req.Payload.Term != "b" {
		t.Fatalf("payload after reset = %q, want b", req.Payload.Term)
	}

	nexts <- struct{}{}
	if req := recvRequest(t, out); req.Page != 2 {
		t.Fatalf("page after reset+next = %d, want 2", req.Page)
	}
}

func TestTrack_StartPageOption(t *testing.T) {
	resets := make(chan query)
	nexts := make(chan struct{})
	requests := Track(stream.FromChannel(resets), stream.FromChannel(nexts), 5, WithStartPage(0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := requests.Subscribe(ctx)

	resets <- query{}
	nexts <- struct{}{}
	if req := recvRequest(t, out); req.Page != 0 {
		t.Fatalf("first page = %d, want 0", req.Page)
	}
	nexts <- struct{}{}
	if req := recvRequest(t, out); req.Page != 1 {
		t.Fatalf("second page = %d, want 1", req.Page)
	}
}

func TestTrack_NextBeforeResetPrimes(t *testing.T) {
	resets := make(chan query)
	nexts := make(chan struct{})
	requests := Track(stream.FromChannel(resets), stream.FromChannel(nexts), 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := requests.Subscribe(ctx)

	nexts <- struct{}{}
	resets <- query{Term: "late"}
	req := recvRequest(t, out)
	if req.Page != 1 || req.Payload.Term != "late" {
		t.Fatalf("request = %+v, want page 1 term late", req)
	}
}

func TestTrack_UpstreamErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	failing := stream.New(func(_ context.Context, _ func(query) bool) error {
		return boom
	})
	nexts := make(chan struct{})
	requests := Track(failing, stream.FromChannel(nexts), 2)

	_, err := stream.Collect(context.Background(), requests)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestTrack_CompletesWhenInputsComplete(t *testing.T) {
	resets := make(chan query)
	nexts := make(chan struct{})
	requests := Track(stream.FromChannel(resets), stream.FromChannel(nexts), 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := requests.Subscribe(ctx)

	resets <- query{}
	nexts <- struct{}{}
	recvRequest(t, out)

	close(resets)
	close(nexts)
	select {
	case _, open := <-out:
		if open {
			t.Fatal("expected completion, got another event")
		}
	case <-time.After(time.Second):
		t.Fatal("request stream did not complete")
	}
}
