package domain

import (
	"strings"
	"time"
)

// Fleet is the immutable result of one generation call.
// Records are held in descending failure probability order.
type Fleet struct {
	assets      []AssetRecord
	byID        map[string]int
	seed        uint64
	generatedAt time.Time
}

// NewFleet wraps an already ordered record slice. The slice is copied so
// later changes by the caller cannot leak into the fleet.
func NewFleet(assets []AssetRecord, seed uint64, generatedAt time.Time) *Fleet {
	owned := make([]AssetRecord, len(assets))
	copy(owned, assets)

	byID := make(map[string]int, len(owned))
	for i, a := range owned {
		byID[a.ID] = i
	}

	return &Fleet{
		assets:      owned,
		byID:        byID,
		seed:        seed,
		generatedAt: generatedAt,
	}
}

// Assets returns a copy of all records in fleet order
func (f *Fleet) Assets() []AssetRecord {
	out := make([]AssetRecord, len(f.assets))
	copy(out, f.assets)
	return out
}

// Len returns the number of records
func (f *Fleet) Len() int {
	return len(f.assets)
}

// At returns the record at position i in fleet order
func (f *Fleet) At(i int) AssetRecord {
	return f.assets[i]
}

// Seed returns the seed the fleet was generated from
func (f *Fleet) Seed() uint64 {
	return f.seed
}

// GeneratedAt returns the generation timestamp
func (f *Fleet) GeneratedAt() time.Time {
	return f.generatedAt
}

// Lookup finds a record by asset id
func (f *Fleet) Lookup(id string) (AssetRecord, bool) {
	i, ok := f.byID[NormalizeAssetID(id)]
	if !ok {
		return AssetRecord{}, false
	}
	return f.assets[i], true
}

// Filter returns the records whose risk level is one of levels, in fleet
// order. With no levels every record is returned.
func (f *Fleet) Filter(levels ...RiskLevel) []AssetRecord {
	if len(levels) == 0 {
		return f.Assets()
	}

	want := make(map[RiskLevel]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}

	var out []AssetRecord
	for _, a := range f.assets {
		if want[a.RiskLevel] {
			out = append(out, a)
		}
	}
	return out
}

// Top returns the first n records. n <= 0 or n > Len returns all of them.
func (f *Fleet) Top(n int) []AssetRecord {
	return Prefix(f.assets, n)
}

// CountByRisk tallies records per risk level
func (f *Fleet) CountByRisk() map[RiskLevel]int {
	counts := make(map[RiskLevel]int, 3)
	for _, a := range f.assets {
		counts[a.RiskLevel]++
	}
	return counts
}

// Prefix copies the first n records of assets
func Prefix(assets []AssetRecord, n int) []AssetRecord {
	if n <= 0 || n > len(assets) {
		n = len(assets)
	}
	out := make([]AssetRecord, n)
	copy(out, assets[:n])
	return out
}

// MatchesType reports whether the record's type equals t, ignoring case
func (a AssetRecord) MatchesType(t string) bool {
	return t == "" || strings.EqualFold(a.Type, t)
}

// MatchesLocation reports whether the record's location equals loc, ignoring case
func (a AssetRecord) MatchesLocation(loc string) bool {
	return loc == "" || strings.EqualFold(a.Location, loc)
}
