// Package engine provides the high-level orchestration for assessing a job
// offer: normalization, market resolution, statutory compliance, and the
// derived verdict, negotiation targets, and leverage points.
package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/offer-analyzer/internal/compliance"
	"github.com/jonathan/offer-analyzer/internal/market"
	"github.com/jonathan/offer-analyzer/internal/normalize"
	"github.com/jonathan/offer-analyzer/internal/types"
	"github.com/jonathan/offer-analyzer/internal/verdict"
)

// Engine assembles a complete assessment from its collaborators. It holds
// no per-assessment state and is safe for concurrent use.
type Engine struct {
	resolver *market.Resolver
	rates    compliance.RateSource
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, used by tests for deterministic
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. A nil resolver falls back to one with no sample
// store (every resolution yields the default snapshot); nil rates fall
// back to the embedded statutory table.
func New(resolver *market.Resolver, rates compliance.RateSource, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		rates:    rates,
		now:      time.Now,
	}
	if e.resolver == nil {
		e.resolver = market.NewResolver(nil)
	}
	if e.rates == nil {
		e.rates = compliance.StaticTable{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assess runs the full assessment for one offer. Validation failure is the
// only error path: market store failures resolve to the default snapshot
// inside the resolver, and a failed minimum-wage lookup degrades to an
// indeterminate compliance result instead of failing the assessment.
func (e *Engine) Assess(ctx context.Context, offer types.Offer) (*types.AssessmentResult, error) {
	if err := offer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid offer: %w", err)
	}

	normalized := types.NormalizedOffer{
		Offer:         offer,
		RoleKey:       normalize.NormalizeTitle(offer.JobTitle),
		Tier:          normalize.LocationTier(offer.Location),
		ColMultiplier: normalize.ColMultiplier(offer.Location),
		TechPremium:   normalize.TechPremium(offer.TechStack),
	}
	totalComp := offer.TotalComp()

	// Market resolution and the minimum-wage lookup are independent.
	g, gCtx := errgroup.WithContext(ctx)

	var stats types.MarketStats
	var rate *types.UMKRate

	g.Go(func() error {
		stats = e.resolver.Resolve(gCtx, market.ResolveInput{
			TitleCode:       normalized.RoleKey,
			Tier:            normalized.Tier,
			YearsExperience: offer.YearsExperience,
			ColMultiplier:   normalized.ColMultiplier,
			TechPremium:     normalized.TechPremium,
		})
		return nil
	})

	g.Go(func() error {
		r, err := e.rates.Lookup(gCtx, offer.Location)
		if err != nil {
			// Treated the same as no statutory record for the location.
			return nil
		}
		rate = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	comp := compliance.Check(offer.BaseSalary, rate)
	v := verdict.Decide(totalComp, stats, comp.Complies)

	return &types.AssessmentResult{
		Offer:           normalized,
		TotalComp:       totalComp,
		Market:          stats,
		Compliance:      comp,
		Verdict:         v,
		NegotiationRoom: verdict.Room(totalComp, stats),
		LeveragePoints:  verdict.Leverage(offer, stats),
		Recommendations: verdict.Recommendations(offer, stats, v),
		AssessedAt:      e.now(),
	}, nil
}
