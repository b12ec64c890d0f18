package services

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed PCG increment; only the seed varies between fleets
const pcgStream = 0x9e3779b97f4a7c15

// Generator draws synthetic asset records from an injected random source.
// A Generator is not safe for concurrent use; give each caller its own.
type Generator struct {
	rng   *rand.Rand
	clock ports.Clock
}

// NewGenerator creates a generator over rng. A nil clock uses the system clock.
func NewGenerator(rng *rand.Rand, clock ports.Clock) *Generator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Generator{
		rng:   rng,
		clock: clock,
	}
}

// Generate produces exactly count records ordered by failure probability,
// highest first. Records with equal probability keep their creation order.
func (g *Generator) Generate(count int) ([]domain.AssetRecord, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidCount, count)
	}
	if g == nil || g.rng == nil {
		return nil, domain.ErrNoRandomSource
	}

	now := g.clock.Now()
	failure := distuv.Beta{Alpha: domain.FailureAlpha, Beta: domain.FailureBeta, Src: g.rng}
	horizon := distuv.Exponential{Rate: 1 / domain.MeanDaysToFailure, Src: g.rng}

	assets := make([]domain.AssetRecord, count)
	for i := range assets {
		seq := i + 1

		// Derived fields come from the drawn p and nothing else
		p := domain.ClampProbability(failure.Rand())
		risk := domain.ClassifyRisk(p)
		days := domain.ProjectDaysToFailure(horizon.Rand(), p)

		assets[i] = domain.AssetRecord{
			ID:                 domain.FormatAssetID(seq),
			Sequence:           seq,
			FailureProbability: p,
			RiskLevel:          risk,
			DaysToFailure:      days,
			MaintenanceCost:    g.intBetween(domain.MinMaintenanceCost, domain.MaxMaintenanceCost),
			ReplacementCost:    g.intBetween(domain.MinReplacementCost, domain.MaxReplacementCost),
			CriticalityScore:   domain.MinCriticality + g.rng.Float64()*(domain.MaxCriticality-domain.MinCriticality),
			LastMaintenance:    now.Add(-time.Duration(g.intBetween(domain.MinDaysSinceMaintenance, domain.MaxDaysSinceMaintenance)) * 24 * time.Hour),
			Type:               pick(g.rng, domain.AssetTypes),
			VoltageLevel:       pick(g.rng, domain.VoltageLevels),
			Location:           pick(g.rng, domain.Locations),
		}
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].FailureProbability > assets[j].FailureProbability
	})

	return assets, nil
}

// intBetween draws a uniform integer in [lo, hi]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// NewSeededSource returns a PCG-backed source for seed. Seed 0 asks for a
// fresh seed from the operating system; the seed actually used is returned
// so the fleet can be reproduced.
func NewSeededSource(seed uint64) (*rand.Rand, uint64, error) {
	if seed == 0 {
		fresh, err := SeedFrom(crand.Reader)
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}
	return rand.New(rand.NewPCG(seed, pcgStream)), seed, nil
}

// SeedFrom reads a non-zero seed from r
func SeedFrom(r io.Reader) (uint64, error) {
	if r == nil {
		return 0, domain.ErrEntropyUnavailable
	}

	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}

	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		// Zero is reserved for "pick one for me"
		seed = 1
	}
	return seed, nil
}
