// Package contribution accepts crowdsourced salary datapoints, scores their
// trustworthiness, and feeds accepted ones into the market dataset.
package contribution

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/offer-analyzer/internal/normalize"
	"github.com/jonathan/offer-analyzer/internal/types"
	"github.com/jonathan/offer-analyzer/internal/verdict"
)

// ErrDuplicateSubmission is returned when an identical contribution was
// already accepted within the dedup window.
var ErrDuplicateSubmission = errors.New("this salary data was recently submitted")

// dedupWindow is how long an identical submission is treated as a duplicate.
const dedupWindow = 24 * time.Hour

// verifiedThreshold is the confidence at or above which a contribution is
// marked verified and its market sample counts toward verified-only queries.
const verifiedThreshold = 0.70

// Store persists contributions and the market samples they feed.
type Store interface {
	// FindRecentByHash returns a contribution with the given submission hash
	// created at or after since, or nil when none exists.
	FindRecentByHash(ctx context.Context, hash string, since time.Time) (*types.StoredContribution, error)
	InsertContribution(ctx context.Context, rec *types.StoredContribution) error
	InsertSample(ctx context.Context, sample *types.MarketSample) error
}

// Service validates, scores, and persists salary contributions.
type Service struct {
	store Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a contribution Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit accepts a salary contribution. The payload is validated, checked
// against recent submissions, scored, and stored both as a contribution
// record and as a market sample filed under the normalized role and tier.
func (s *Service) Submit(ctx context.Context, c types.Contribution) (*types.ContributionReceipt, error) {
	c.JobTitle = strings.TrimSpace(c.JobTitle)
	c.Company = strings.TrimSpace(c.Company)
	c.Location = strings.TrimSpace(c.Location)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contribution: %w", err)
	}

	hash := SubmissionHash(c)
	now := s.now()

	existing, err := s.store.FindRecentByHash(ctx, hash, now.Add(-dedupWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate submission: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateSubmission
	}

	confidence := ConfidenceScore(c)
	verified := confidence >= verifiedThreshold
	quality := qualityFor(confidence)

	record := &types.StoredContribution{
		ID:             uuid.New(),
		Contribution:   c,
		RoleKey:        normalize.NormalizeTitle(c.JobTitle),
		Tier:           normalize.LocationTier(c.Location),
		CompanyTier:    verdict.CompanyTier(c.Company),
		TotalComp:      c.BaseSalary + c.Bonus + c.Equity,
		SubmissionHash: hash,
		Confidence:     confidence,
		Verified:       verified,
		Quality:        quality,
		CreatedAt:      now,
	}
	if record.Company == "" {
		record.Company = "Anonymous"
	}

	if err := s.store.InsertContribution(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store contribution: %w", err)
	}

	sample := &types.MarketSample{
		ID:              uuid.New(),
		RoleKey:         record.RoleKey,
		Tier:            record.Tier,
		YearsExperience: c.YearsExperience,
		BaseSalary:      c.BaseSalary,
		Bonus:           c.Bonus,
		Equity:          c.Equity,
		Verified:        verified,
		CreatedAt:       now,
	}
	if err := s.store.InsertSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to store market sample: %w", err)
	}

	return &types.ContributionReceipt{
		ID:             record.ID,
		SubmissionHash: hash,
		Confidence:     math.Round(confidence*100) / 100,
		Verified:       verified,
		Quality:        quality,
		CreatedAt:      now,
	}, nil
}

func qualityFor(confidence float64) string {
	switch {
	case confidence >= 0.80:
		return types.QualityHigh
	case confidence >= 0.60:
		return types.QualityMedium
	default:
		return types.QualityLow
	}
}
