package market

import (
	"context"
	"time"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// Freshness windows for the query plan
const (
	narrowWindow = 540 * 24 * time.Hour // 18 months
	broadWindow  = 730 * 24 * time.Hour // 24 months
)

// defaultMinSamples is the floor below which a step's result is rejected
// and the next, broader step is tried.
const defaultMinSamples = 5

// expWindowYears widens the experience filter to [years-2, years+2]
const expWindowYears = 2

// SampleStore aggregates compensation samples. Implementations own their
// timeouts and pooling; the resolver treats a store as an opaque
// synchronous dependency and never retries a failed query.
type SampleStore interface {
	QueryStats(ctx context.Context, q StatsQuery) (*StatsRow, error)
}

// ResolveInput carries the normalized offer fields the query plan filters
// by, plus the adjustment multipliers applied to the accepted result.
type ResolveInput struct {
	TitleCode       string
	Tier            string
	YearsExperience int
	ColMultiplier   float64
	TechPremium     float64
}

// queryStep is one entry in the ordered broadening plan: how to build the
// query and whether to accept its result.
type queryStep struct {
	source string
	build  func(in ResolveInput, now time.Time) StatsQuery
	accept func(row *StatsRow, minSamples int) bool
}

// queryPlan is the fixed broadening sequence. Steps run in order and the
// first accepted result wins; the final step accepts whatever it gets.
var queryPlan = []queryStep{
	{
		source: types.SourceStepOne,
		build: func(in ResolveInput, now time.Time) StatsQuery {
			minExp := in.YearsExperience - expWindowYears
			maxExp := in.YearsExperience + expWindowYears
			return StatsQuery{
				TitleCode:     in.TitleCode,
				Tier:          in.Tier,
				MinExperience: &minExp,
				MaxExperience: &maxExp,
				VerifiedOnly:  true,
				Since:         now.Add(-narrowWindow),
			}
		},
		accept: func(row *StatsRow, minSamples int) bool {
			return row.SampleSize >= minSamples
		},
	},
	{
		source: types.SourceStepTwo,
		build: func(in ResolveInput, now time.Time) StatsQuery {
			return StatsQuery{
				TitleCode:    in.TitleCode,
				VerifiedOnly: true,
				Since:        now.Add(-broadWindow),
			}
		},
		accept: func(row *StatsRow, minSamples int) bool {
			return row.SampleSize >= minSamples
		},
	},
	{
		source: types.SourceStepThree,
		build: func(in ResolveInput, now time.Time) StatsQuery {
			return StatsQuery{
				VerifiedOnly: true,
				Since:        now.Add(-broadWindow),
			}
		},
		accept: func(*StatsRow, int) bool {
			return true
		},
	},
}

// Resolver executes the query plan against a sample store. The zero value
// is not usable; construct with NewResolver.
type Resolver struct {
	store      SampleStore
	minSamples int
	now        func() time.Time
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithMinSamples overrides the acceptance floor for the narrowing steps.
func WithMinSamples(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.minSamples = n
		}
	}
}

// WithClock overrides the time source; tests use this to pin freshness
// windows.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver builds a Resolver over the given store. A nil store is
// allowed and behaves like a store that always fails, so every resolution
// falls back to the default snapshot.
func NewResolver(store SampleStore, opts ...Option) *Resolver {
	r := &Resolver{
		store:      store,
		minSamples: defaultMinSamples,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the broadening plan and returns adjusted market statistics.
// It never returns an error: a store failure at any step short-circuits to
// the fixed default snapshot (labeled "default"/"estimated") rather than
// propagating, so an assessment always has usable market data.
func (r *Resolver) Resolve(ctx context.Context, in ResolveInput) types.MarketStats {
	multiplier := in.ColMultiplier * in.TechPremium
	if multiplier <= 0 {
		multiplier = 1.0
	}

	if r.store == nil {
		return finalize(defaultSnapshot(), multiplier, types.SourceDefault)
	}

	now := r.now()
	for _, step := range queryPlan {
		row, err := r.store.QueryStats(ctx, step.build(in, now))
		if err != nil {
			return finalize(defaultSnapshot(), multiplier, types.SourceDefault)
		}
		if row == nil {
			row = &StatsRow{}
		}
		if step.accept(row, r.minSamples) {
			return finalize(*row, multiplier, step.source)
		}
	}

	// Unreachable while the last step accepts everything; kept so a future
	// plan change cannot silently drop through.
	return finalize(defaultSnapshot(), multiplier, types.SourceDefault)
}
