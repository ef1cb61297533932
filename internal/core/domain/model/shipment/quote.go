package shipment

import (
	"math"
	"slices"
	"time"
)

const (
	// progressCeiling is the highest value shown while a fetch is pending.
	progressCeiling = 95.0
	// progressTau controls how fast the indicator approaches the ceiling.
	progressTau = 2 * time.Second
)

// Quote is the state of one rate fetch for a shipment. A new fetch replaces
// the previous Quote entirely; its rates are never merged or restarted.
type Quote struct {
	Generation int
	ShipmentID string
	Codes      []string
	StartedAt  time.Time
	FinishedAt time.Time
	Rates      []Rate
	Err        error
}

// IsLoading reports whether the fetch has not resolved yet.
func (q Quote) IsLoading() bool {
	return !q.StartedAt.IsZero() && q.FinishedAt.IsZero()
}

// IsZero reports whether no fetch was ever started.
func (q Quote) IsZero() bool {
	return q.StartedAt.IsZero()
}

// Progress is the cosmetic loading indicator in percent. It increases
// monotonically with time, stays strictly below 100 while loading and is 100
// once the fetch resolved (successfully or not). It carries no information
// from the server.
func (q Quote) Progress(now time.Time) float64 {
	if q.IsZero() {
		return 0
	}
	if !q.FinishedAt.IsZero() {
		return 100
	}
	elapsed := now.Sub(q.StartedAt)
	if elapsed <= 0 {
		return 0
	}
	return progressCeiling * (1 - math.Exp(-float64(elapsed)/float64(progressTau)))
}

// Clone copies the rate and code slices.
func (q Quote) Clone() Quote {
	out := q
	out.Codes = slices.Clone(q.Codes)
	out.Rates = slices.Clone(q.Rates)
	return out
}
