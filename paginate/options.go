package paginate

import (
	"github.com/google/uuid"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/resilience"
)

// PagerOption configures a Pager.
type PagerOption func(*pagerOptions)

type pagerOptions struct {
	pad     bool
	log     *logger.Logger
	metrics *observability.Metrics
	retry   *resilience.RetryConfig
	breaker *resilience.Breaker
	newID   func() string
}

func defaultPagerOptions() pagerOptions {
	return pagerOptions{
		pad:   true,
		log:   logger.Nop(),
		newID: uuid.NewString,
	}
}

// WithPadding controls whether the optimistic snapshot at epoch start is
// padded to page size with placeholder slots. Enabled by default.
func WithPadding(enabled bool) PagerOption {
	return func(o *pagerOptions) {
		o.pad = enabled
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logger.Logger) PagerOption {
	return func(o *pagerOptions) {
		if l != nil {
			o.log = l.WithComponent("paginate")
		}
	}
}

// WithMetrics sets the metric instruments. Nil disables metric recording.
func WithMetrics(m *observability.Metrics) PagerOption {
	return func(o *pagerOptions) {
		o.metrics = m
	}
}

// WithRetry retries failed fetch calls with the given policy before the
// failure-to-empty-page mapping applies.
func WithRetry(cfg resilience.RetryConfig) PagerOption {
	return func(o *pagerOptions) {
		o.retry = &cfg
	}
}

// WithBreaker runs fetch calls through a circuit breaker. A rejected call
// settles as a failed fetch.
func WithBreaker(b *resilience.Breaker) PagerOption {
	return func(o *pagerOptions) {
		o.breaker = b
	}
}

// WithFetchID overrides the per-fetch correlation ID generator. The default
// generates UUIDs.
func WithFetchID(fn func() string) PagerOption {
	return func(o *pagerOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}
