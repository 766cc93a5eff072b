// Package compliance checks offered base pay against Indonesian statutory
// regional minimum wages (UMK, Upah Minimum Kota/Kabupaten).
package compliance

import (
	"context"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// umkYear is the effective year of the embedded statutory table
const umkYear = 2024

// umkEntry is one row of the embedded statutory table. Entries are scanned
// in declared order so lookups stay deterministic.
type umkEntry struct {
	key      string
	name     string
	province string
	monthly  int64
}

// umkTable holds 2024 UMK rates (source: Kementerian Ketenagakerjaan RI)
var umkTable = []umkEntry{
	// Jabodetabek
	{"jakarta", "Jakarta", "DKI Jakarta", 5067823},
	{"jakarta pusat", "Jakarta Pusat", "DKI Jakarta", 5067823},
	{"jakarta utara", "Jakarta Utara", "DKI Jakarta", 5067823},
	{"jakarta barat", "Jakarta Barat", "DKI Jakarta", 5067823},
	{"jakarta selatan", "Jakarta Selatan", "DKI Jakarta", 5067823},
	{"jakarta timur", "Jakarta Timur", "DKI Jakarta", 5067823},
	{"bogor", "Kota Bogor", "Jawa Barat", 4459693},
	{"depok", "Kota Depok", "Jawa Barat", 4415979},
	{"tangerang", "Kota Tangerang", "Banten", 4350672},
	{"tangerang selatan", "Kota Tangerang Selatan", "Banten", 4350672},
	{"bekasi", "Kota Bekasi", "Jawa Barat", 4781208},

	// Jawa Barat
	{"bandung", "Kota Bandung", "Jawa Barat", 3742275},
	{"cimahi", "Kota Cimahi", "Jawa Barat", 3742275},
	{"sukabumi", "Kota Sukabumi", "Jawa Barat", 2679393},
	{"cirebon", "Kota Cirebon", "Jawa Barat", 2197442},

	// Jawa Tengah
	{"semarang", "Kota Semarang", "Jawa Tengah", 2954326},
	{"surakarta", "Kota Surakarta", "Jawa Tengah", 2104701},
	{"solo", "Kota Surakarta", "Jawa Tengah", 2104701},
	{"yogyakarta", "Yogyakarta", "DI Yogyakarta", 2165830},

	// Jawa Timur
	{"surabaya", "Kota Surabaya", "Jawa Timur", 2430438},
	{"malang", "Kota Malang", "Jawa Timur", 2087093},
	{"kediri", "Kota Kediri", "Jawa Timur", 1997077},
	{"blitar", "Kota Blitar", "Jawa Timur", 2143536},

	// Bali
	{"denpasar", "Kota Denpasar", "Bali", 2636407},
	{"badung", "Kabupaten Badung", "Bali", 2636407},

	// Sumatera
	{"medan", "Kota Medan", "Sumatera Utara", 3019784},
	{"palembang", "Kota Palembang", "Sumatera Selatan", 3284052},
	{"padang", "Kota Padang", "Sumatera Barat", 2600628},
	{"pekanbaru", "Kota Pekanbaru", "Riau", 3194262},

	// Kalimantan
	{"banjarmasin", "Kota Banjarmasin", "Kalimantan Selatan", 3034324},
	{"samarinda", "Kota Samarinda", "Kalimantan Timur", 3094230},
	{"balikpapan", "Kota Balikpapan", "Kalimantan Timur", 3294214},
	{"pontianak", "Kota Pontianak", "Kalimantan Barat", 2836287},

	// Sulawesi
	{"makassar", "Kota Makassar", "Sulawesi Selatan", 3372930},
	{"manado", "Kota Manado", "Sulawesi Utara", 3503965},

	// Papua
	{"jayapura", "Kota Jayapura", "Papua", 3611729},
}

// provinceEntry is a province-level minimum used when no city-level record
// matches.
type provinceEntry struct {
	key      string
	name     string
	province string
	monthly  int64
}

// provinceTable holds 2024 UMP (province minimum) fallbacks
var provinceTable = []provinceEntry{
	{"bali", "Provinsi Bali", "Bali", 2636407},
	{"dki jakarta", "Provinsi Dki Jakarta", "DKI Jakarta", 5067823},
	{"di yogyakarta", "Provinsi Di Yogyakarta", "DI Yogyakarta", 2165830},
	{"yogyakarta", "Provinsi Yogyakarta", "DI Yogyakarta", 2165830},
	{"jawa barat", "Provinsi Jawa Barat", "Jawa Barat", 1842589},
	{"jawa tengah", "Provinsi Jawa Tengah", "Jawa Tengah", 1963008},
	{"jawa timur", "Provinsi Jawa Timur", "Jawa Timur", 2087170},
}

// RateSource resolves a free-text location to a statutory minimum wage
// record. A nil record (with nil error) means no rate is known for the
// location; the compliance check treats that as indeterminate, never as a
// violation.
type RateSource interface {
	Lookup(ctx context.Context, location string) (*types.UMKRate, error)
}

// StaticTable is a RateSource backed by the embedded 2024 statutory table.
type StaticTable struct{}

// Lookup implements RateSource using the embedded table only.
func (StaticTable) Lookup(_ context.Context, location string) (*types.UMKRate, error) {
	return LookupUMK(location), nil
}

// LookupUMK resolves a location against the embedded 2024 table: exact key
// match after prefix stripping, then substring match in either direction,
// then province-level fallback. Returns nil when nothing matches.
func LookupUMK(location string) *types.UMKRate {
	if strings.TrimSpace(location) == "" {
		return nil
	}

	lower := strings.ToLower(strings.TrimSpace(location))
	clean := NormalizeRegion(lower)

	for _, e := range umkTable {
		if e.key == clean {
			return e.rate()
		}
	}

	for _, e := range umkTable {
		if strings.Contains(clean, e.key) || strings.Contains(e.key, clean) {
			return e.rate()
		}
	}

	for _, p := range provinceTable {
		if strings.Contains(lower, p.key) {
			return &types.UMKRate{
				Region:      p.name,
				Province:    p.province,
				MonthlyWage: p.monthly,
				Year:        umkYear,
				Active:      true,
			}
		}
	}

	return nil
}

// AllRates returns every rate in the embedded table, used to seed a rate
// store from the built-in data.
func AllRates() []*types.UMKRate {
	rates := make([]*types.UMKRate, 0, len(umkTable))
	for _, e := range umkTable {
		rates = append(rates, e.rate())
	}
	return rates
}

// NormalizeRegion strips administrative prefixes and jurisdiction qualifiers
// from an already-lowercased location so it can be used as a region key.
func NormalizeRegion(lower string) string {
	clean := strings.ReplaceAll(lower, "kota ", "")
	clean = strings.ReplaceAll(clean, "kabupaten ", "")
	clean = strings.ReplaceAll(clean, " daerah istimewa yogyakarta", "yogyakarta")
	clean = strings.ReplaceAll(clean, "dki ", "")
	return strings.TrimSpace(clean)
}

func (e umkEntry) rate() *types.UMKRate {
	return &types.UMKRate{
		Region:      e.name,
		Province:    e.province,
		MonthlyWage: e.monthly,
		Year:        umkYear,
		Active:      true,
	}
}
