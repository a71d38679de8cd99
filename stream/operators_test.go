package stream

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestMap(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	evens := Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4}) {
		t.Errorf("got %v, want [2 4]", got)
	}
}

func TestTake(t *testing.T) {
	got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2, 3, 4, 5}), 3))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestTake_MoreThanAvailable(t *testing.T) {
	got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2}), 10))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestTake_StopsInfiniteSource(t *testing.T) {
	counter := New(func(_ context.Context, emit func(int) bool) error {
		n := 0
		for emit(n) {
			n++
		}
		return nil
	})
	got, err := Collect(context.Background(), Take(counter, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("got %v, want [0 1 2 3]", got)
	}
}

func TestMerge(t *testing.T) {
	merged := Merge(FromSlice([]int{1, 2, 3}), FromSlice([]int{4, 5, 6}))
	got, err := Collect(context.Background(), merged)
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(got)
	if !intSliceEqual(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("got %v, want all of 1..6", got)
	}
}

func TestMerge_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	failing := New(func(_ context.Context, _ func(int) bool) error {
		return boom
	})
	endless := New(func(_ context.Context, emit func(int) bool) error {
		for emit(0) {
		}
		return nil
	})
	_, err := Collect(context.Background(), Merge(failing, endless))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCombineLatest_PrimingAndPairs(t *testing.T) {
	a := make(chan string)
	b := make(chan int)
	combined := CombineLatest(FromChannel(a), FromChannel(b), func(s string, n int) string {
		return s + ":" + string(rune('0'+n))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := combined.Subscribe(ctx)

	// One input alone produces nothing.
	a <- "x"
	b <- 1
	if ev := <-out; ev.Val != "x:1" {
		t.Fatalf("got %q, want x:1", ev.Val)
	}
	a <- "y"
	if ev := <-out; ev.Val != "y:1" {
		t.Fatalf("got %q, want y:1", ev.Val)
	}
	b <- 2
	if ev := <-out; ev.Val != "y:2" {
		t.Fatalf("got %q, want y:2", ev.Val)
	}

	close(a)
	close(b)
	if _, open := <-out; open {
		t.Fatal("expected completion after both inputs closed")
	}
}

func TestCombineLatest_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	failing := New(func(_ context.Context, _ func(int) bool) error {
		return boom
	})
	steady := FromSlice([]string{"a"})
	_, err := Collect(context.Background(), CombineLatest(steady, failing, func(s string, n int) string {
		return s
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
