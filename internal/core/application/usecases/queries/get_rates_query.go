package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrGetRatesQueryIsNotConstructed = errors.New(
	"GetRatesQuery must be created via NewGetRatesQuery constructor",
)

// GetRatesQuery reads the current rate quote of a session. The UI polls it
// while the quote is loading.
type GetRatesQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRatesQuery(sessionID kernel.UUID) (GetRatesQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetRatesQuery{}, err
	}
	return GetRatesQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetRatesQuery) Validate() error {
	return q.guard.Validate(ErrGetRatesQueryIsNotConstructed)
}

func (q GetRatesQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// GetRatesQueryResponse is the quote as the rate step shows it.
//
// Progress is cosmetic: it grows while Loading and is 100 once the fetch
// resolved. Error is the failure of the last fetch, empty on success.
type GetRatesQueryResponse struct {
	Loading    bool
	Progress   float64
	Error      string
	Rates      []shipment.Rate
	ShipmentID string
}
