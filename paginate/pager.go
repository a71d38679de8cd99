package paginate

import (
	"context"
	"math"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/resilience"
	"github.com/kbukum/streamkit/stream"
)

// Pager is the load-more engine. It maps each admitted page request to a
// fetch call and maintains an accumulating buffer of results for the
// current epoch.
type Pager[T, D any] struct {
	fetch Fetcher[T, D]
	opts  pagerOptions
}

// NewPager creates a pager around a fetch function.
func NewPager[T, D any](fetch Fetcher[T, D], opts ...PagerOption) *Pager[T, D] {
	o := defaultPagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager[T, D]{fetch: fetch, opts: o}
}

// fetchResult carries the outcome of one dispatched fetch back into the
// engine loop. It is the explicit per-request result boundary: the engine
// never sees the fetch error escape past settle.
type fetchResult[D any] struct {
	page  int
	id    string
	items []D
	err   error
	took  time.Duration
}

// Apply transforms a stream of page requests into a stream of buffer
// snapshots. Each subscription owns isolated engine state; subscribing
// twice paginates twice, independently.
//
// Every admitted request produces at least one emission (the optimistic
// snapshot) and a second once its fetch settles, unless a newer admitted
// request supersedes it first. An error on the request stream terminates
// the output; a fetch error does not.
func (p *Pager[T, D]) Apply(requests *stream.Stream[Request[T]]) *stream.Stream[[]Slot[D]] {
	return stream.New(func(ctx context.Context, emit func([]Slot[D]) bool) error {
		pagerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		in := requests.Subscribe(pagerCtx)

		var (
			buffer      []Slot[D]
			defaults    []Slot[D]
			inflight    chan fetchResult[D]
			cancelFetch context.CancelFunc
		)
		// Sentinel above any real page so the first request starts an epoch.
		prevPage := math.MaxInt
		defer func() {
			if cancelFetch != nil {
				cancelFetch()
			}
		}()

		for in != nil || inflight != nil {
			select {
			case ev, open := <-in:
				if !open {
					in = nil
					continue
				}
				if ev.Err != nil {
					return ev.Err
				}
				req := ev.Val

				if req.Page <= prevPage {
					defaults = nil
					if p.opts.pad && req.Size > 0 {
						defaults = make([]Slot[D], req.Size)
					}
					buffer = slices.Clone(defaults)
					p.opts.metrics.RecordEpoch(ctx)
					p.opts.log.Debug("epoch started", logger.Fields(
						logger.FieldPage, req.Page,
						logger.FieldSize, req.Size,
					))
				}
				prevPage = req.Page

				if req.Size <= 0 || len(buffer)%req.Size != 0 {
					p.opts.log.Debug("request not admitted", logger.Fields(
						logger.FieldPage, req.Page,
						logger.FieldSize, req.Size,
						logger.FieldBufferLen, len(buffer),
					))
					continue
				}

				// Latest wins: a newly admitted request supersedes any
				// fetch still in flight.
				if cancelFetch != nil {
					cancelFetch()
					cancelFetch = nil
					inflight = nil
					p.opts.metrics.RecordSwitch(ctx)
				}

				if !emit(slices.Clone(buffer)) {
					return nil
				}

				fetchCtx, fetchCancel := context.WithCancel(ctx)
				cancelFetch = fetchCancel
				ch := make(chan fetchResult[D], 1)
				inflight = ch
				go p.dispatch(fetchCtx, req, ch)

			case res := <-inflight:
				inflight = nil
				cancelFetch()
				cancelFetch = nil

				items := p.settle(ctx, res)
				next := make([]Slot[D], 0, len(buffer)+len(items))
				for _, s := range buffer {
					if s.Filled {
						next = append(next, s)
					}
				}
				for _, v := range items {
					next = append(next, Slot[D]{Value: v, Filled: true})
				}
				buffer = next
				p.opts.metrics.RecordBufferLen(ctx, len(buffer))

				if !emit(slices.Clone(buffer)) {
					return nil
				}

			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
}

// dispatch runs one fetch and delivers its result. The result channel is
// buffered, so a superseded fetch parks its result there and exits without
// leaking a goroutine.
func (p *Pager[T, D]) dispatch(ctx context.Context, req Request[T], out chan<- fetchResult[D]) {
	id := p.opts.newID()
	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage,
		trace.WithAttributes(
			attribute.Int(observability.AttrPage, req.Page),
			attribute.Int(observability.AttrSize, req.Size),
			attribute.String(observability.AttrFetchID, id),
		))
	defer span.End()

	start := time.Now()
	items, err := p.callFetch(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	out <- fetchResult[D]{
		page:  req.Page,
		id:    id,
		items: items,
		err:   err,
		took:  time.Since(start),
	}
}

// callFetch runs the fetch function through the configured breaker and
// retry middleware.
func (p *Pager[T, D]) callFetch(ctx context.Context, req Request[T]) ([]D, error) {
	call := func() ([]D, error) { return p.fetch(ctx, req) }

	if p.opts.breaker != nil {
		base := call
		call = func() ([]D, error) {
			var items []D
			err := p.opts.breaker.Execute(func() error {
				var err error
				items, err = base()
				return err
			})
			if err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	if p.opts.retry != nil {
		return resilience.Retry(ctx, *p.opts.retry, call)
	}
	return call()
}

// settle applies the per-request failure policy: a failed fetch maps to an
// empty page so a single bad page never terminates the snapshot stream.
func (p *Pager[T, D]) settle(ctx context.Context, res fetchResult[D]) []D {
	p.opts.metrics.RecordFetch(ctx, res.page, res.took, res.err)
	if res.err != nil {
		p.opts.log.WithError(errors.FetchFailed(res.page, res.err)).
			Warn("page fetch failed, treating as empty page", logger.Fields(
				logger.FieldPage, res.page,
				logger.FieldFetchID, res.id,
				logger.FieldDuration, res.took.Milliseconds(),
			))
		return nil
	}
	p.opts.log.Debug("page fetch settled", logger.Fields(
		logger.FieldPage, res.page,
		logger.FieldFetchID, res.id,
		logger.FieldDuration, res.took.Milliseconds(),
	))
	return res.items
}
