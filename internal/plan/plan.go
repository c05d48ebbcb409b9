// Package plan holds the subscription plan catalog: per-tier resource caps
// and the alert thresholds derived from them. The catalog is built once at
// startup and never mutated.
package plan

import (
	"errors"
	"fmt"
)

// Tier is a subscription level controlling resource caps and alert sensitivity.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPro      Tier = "pro"
	TierProPlus  Tier = "pro_plus"
)

// ErrUnknownTier is returned when a plan tier is not in the catalog. Client
// records are constrained to the known tiers upstream, so hitting this is a
// configuration error, not a user error.
var ErrUnknownTier = errors.New("unknown plan tier")

// Resources are the caps a plan grants.
type Resources struct {
	RAMTotalMB     int
	StorageTotalGB int
}

// Bounds are direct-polarity thresholds: a reading at or above High alerts
// at high severity, at or above Critical alerts at critical severity.
type Bounds struct {
	High     float64
	Critical float64
}

// UptimeBounds are inverted-polarity thresholds: a reading below Critical is
// critical, below Low is high severity.
type UptimeBounds struct {
	Low      float64
	Critical float64
}

// Thresholds is the full per-metric threshold table for one tier.
type Thresholds struct {
	CPU          Bounds
	RAM          Bounds
	Disk         Bounds
	ResponseTime Bounds
	Bandwidth    Bounds
	Uptime       UptimeBounds
}

// Plan bundles a tier's caps and thresholds.
type Plan struct {
	Tier       Tier
	Resources  Resources
	Thresholds Thresholds
}

// Catalog is the immutable tier lookup table.
type Catalog struct {
	plans map[Tier]Plan
}

// DefaultCatalog returns the built-in three-tier catalog. Higher tiers get
// more headroom before alerting, so paying customers see fewer false alarms
// at the same load.
func DefaultCatalog() *Catalog {
	return &Catalog{plans: map[Tier]Plan{
		TierStandard: {
			Tier:      TierStandard,
			Resources: Resources{RAMTotalMB: 1024, StorageTotalGB: 10},
			Thresholds: Thresholds{
				CPU:          Bounds{High: 80, Critical: 90},
				RAM:          Bounds{High: 85, Critical: 95},
				Disk:         Bounds{High: 80, Critical: 90},
				ResponseTime: Bounds{High: 1000, Critical: 2000}, // ms
				Bandwidth:    Bounds{High: 80, Critical: 90},
				Uptime:       UptimeBounds{Low: 98, Critical: 95},
			},
		},
		TierPro: {
			Tier:      TierPro,
			Resources: Resources{RAMTotalMB: 2048, StorageTotalGB: 50},
			Thresholds: Thresholds{
				CPU:          Bounds{High: 85, Critical: 95},
				RAM:          Bounds{High: 90, Critical: 98},
				Disk:         Bounds{High: 85, Critical: 95},
				ResponseTime: Bounds{High: 800, Critical: 1500},
				Bandwidth:    Bounds{High: 85, Critical: 95},
				Uptime:       UptimeBounds{Low: 99, Critical: 97},
			},
		},
		TierProPlus: {
			Tier:      TierProPlus,
			Resources: Resources{RAMTotalMB: 4096, StorageTotalGB: 100},
			Thresholds: Thresholds{
				CPU:          Bounds{High: 90, Critical: 98},
				RAM:          Bounds{High: 95, Critical: 98},
				Disk:         Bounds{High: 90, Critical: 98},
				ResponseTime: Bounds{High: 500, Critical: 1000},
				Bandwidth:    Bounds{High: 90, Critical: 98},
				Uptime:       UptimeBounds{Low: 99.9, Critical: 99},
			},
		},
	}}
}

// Get returns the plan for a tier, or ErrUnknownTier.
func (c *Catalog) Get(t Tier) (Plan, error) {
	p, ok := c.plans[t]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	return p, nil
}

// Has reports whether the tier exists in the catalog.
func (c *Catalog) Has(t Tier) bool {
	_, ok := c.plans[t]
	return ok
}

// Tiers returns all known tiers.
func (c *Catalog) Tiers() []Tier {
	return []Tier{TierStandard, TierPro, TierProPlus}
}
