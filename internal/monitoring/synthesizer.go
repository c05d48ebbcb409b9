package monitoring

import (
	"math/rand"
	"time"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

const cpuCores = 8

// Snapshotter produces one resource snapshot per call for a client.
type Snapshotter interface {
	Snapshot(clientID string, tier plan.Tier) (models.ResourceSnapshot, error)
}

// Synthesizer fabricates plausible, plan-scaled utilization readings. There
// is no host introspection behind it: values derive from the client id and
// the wall clock, so consecutive calls vary but stay within plan caps. The
// clock is injectable to make snapshots reproducible in tests.
type Synthesizer struct {
	catalog *plan.Catalog
	now     func() time.Time
}

// NewSynthesizer creates a Synthesizer backed by the given plan catalog.
func NewSynthesizer(catalog *plan.Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog, now: time.Now}
}

// Snapshot generates a fresh reading for the client: CPU usage in [20,95],
// RAM and disk used in [0.3*cap, 0.95*cap]. Each call is independent; there
// is no smoothing between consecutive snapshots.
func (s *Synthesizer) Snapshot(clientID string, tier plan.Tier) (models.ResourceSnapshot, error) {
	p, err := s.catalog.Get(tier)
	if err != nil {
		return models.ResourceSnapshot{}, err
	}

	seed := charSum(clientID) + s.now().Unix()
	rng := rand.New(rand.NewSource(seed))

	ramTotal := p.Resources.RAMTotalMB
	diskTotal := p.Resources.StorageTotalGB

	return models.ResourceSnapshot{
		CPU: models.CPUReading{
			Usage: intBetween(rng, 20, 95),
			Cores: cpuCores,
		},
		RAM: models.GaugeReading{
			Used:  intBetween(rng, int(0.3*float64(ramTotal)), int(0.95*float64(ramTotal))),
			Total: ramTotal,
		},
		Disk: models.GaugeReading{
			Used:  intBetween(rng, int(0.3*float64(diskTotal)), int(0.95*float64(diskTotal))),
			Total: diskTotal,
		},
	}, nil
}

// charSum derives the per-client part of the seed from the id's byte values.
func charSum(id string) int64 {
	var sum int64
	for i := 0; i < len(id); i++ {
		sum += int64(id[i])
	}
	return sum
}

// intBetween returns a value in [min, max] inclusive.
func intBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
