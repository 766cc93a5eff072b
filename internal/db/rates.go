package db

import (
	"context"

	"github.com/jonathan/offer-analyzer/internal/compliance"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// umkRateFinder is the slice of DB used for location lookups.
type umkRateFinder interface {
	FindUMKRateForLocation(ctx context.Context, location string) (*types.UMKRate, error)
}

// RateSource resolves minimum wage rates from the umk_rates table, falling
// back to the embedded statutory table when the store has no match or the
// query fails. Compliance checks keep working through a database outage.
type RateSource struct {
	store    umkRateFinder
	fallback compliance.RateSource
}

// NewRateSource builds a RateSource backed by the given database. A nil db
// serves from the embedded table alone.
func NewRateSource(db *DB) *RateSource {
	src := &RateSource{fallback: compliance.StaticTable{}}
	if db != nil {
		src.store = db
	}
	return src
}

// Lookup implements compliance.RateSource.
func (s *RateSource) Lookup(ctx context.Context, location string) (*types.UMKRate, error) {
	if s.store != nil {
		rate, err := s.store.FindUMKRateForLocation(ctx, location)
		if err == nil && rate != nil {
			return rate, nil
		}
	}
	return s.fallback.Lookup(ctx, location)
}
