package stream

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitter_FanOut(t *testing.T) {
	e := NewEmitter[int]()
	ctx := context.Background()

	s1 := e.Stream().Subscribe(ctx)
	s2 := e.Stream().Subscribe(ctx)

	if n := e.Emit(42); n != 2 {
		t.Fatalf("expected 2 deliveries, got %d", n)
	}
	if ev := <-s1; ev.Val != 42 {
		t.Errorf("subscriber 1 got %d, want 42", ev.Val)
	}
	if ev := <-s2; ev.Val != 42 {
		t.Errorf("subscriber 2 got %d, want 42", ev.Val)
	}

	e.Close()
	if _, open := <-s1; open {
		t.Error("subscriber 1 not completed after Close")
	}
	if _, open := <-s2; open {
		t.Error("subscriber 2 not completed after Close")
	}
}

func TestEmitter_EmitAfterClose(t *testing.T) {
	e := NewEmitter[int]()
	e.Close()
	if n := e.Emit(1); n != 0 {
		t.Errorf("expected 0 deliveries after close, got %d", n)
	}
}

func TestEmitter_FailDeliversTerminalError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEmitter[int]()

	sub := e.Stream().Subscribe(context.Background())
	e.Emit(1)
	e.Fail(boom)

	if ev := <-sub; ev.Err != nil || ev.Val != 1 {
		t.Fatalf("expected buffered value first, got %+v", ev)
	}
	ev, open := <-sub
	if !open {
		t.Fatal("expected terminal error event before close")
	}
	if !errors.Is(ev.Err, boom) {
		t.Fatalf("expected boom, got %v", ev.Err)
	}
	if _, open := <-sub; open {
		t.Fatal("expected channel closed after terminal error")
	}
}

func TestEmitter_SubscribeAfterFail(t *testing.T) {
	boom := errors.New("boom")
	e := NewEmitter[int]()
	e.Fail(boom)

	_, err := Collect(context.Background(), e.Stream())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestEmitter_UnsubscribeOnCancel(t *testing.T) {
	e := NewEmitter[int]()
	ctx, cancel := context.WithCancel(context.Background())
	sub := e.Stream().Subscribe(ctx)

	e.Emit(1)
	<-sub
	cancel()

	// The subscriber drops out once its relay notices the cancellation.
	deadline := time.After(time.Second)
	for {
		if e.Emit(2) == 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("subscriber still registered after cancel")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestEmitter_SlowSubscriberDrops(t *testing.T) {
	e := NewEmitter[int](WithBuffer(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := e.Stream().Subscribe(ctx)

	// Nobody reads sub, so the 1-slot buffer fills after the relay picks
	// up the first value.
	if n := e.Emit(1); n != 1 {
		t.Fatalf("first emit: expected 1 delivery, got %d", n)
	}

	deadline := time.After(time.Second)
	for e.Emit(2) != 0 {
		select {
		case <-deadline:
			t.Fatal("emitter never dropped for a saturated subscriber")
		case <-time.After(5 * time.Millisecond):
		}
	}
	_ = sub
}
