package queries

import (
	"context"

	"shipping/internal/core/ports"
)

type GetRatesQueryHandler struct {
	sessions ports.SessionRepository
}

func NewGetRatesQueryHandler(sessions ports.SessionRepository) GetRatesQueryHandler {
	return GetRatesQueryHandler{sessions: sessions}
}

// Handle returns an empty response when no fetch was started yet.
func (h GetRatesQueryHandler) Handle(ctx context.Context, query GetRatesQuery) (GetRatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRatesQueryResponse{}, err
	}

	session, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetRatesQueryResponse{}, err
	}

	quote := session.Quote()
	resp := GetRatesQueryResponse{
		Loading:    quote.IsLoading(),
		Progress:   quote.Progress(session.Now()),
		Rates:      quote.Rates,
		ShipmentID: quote.ShipmentID,
	}
	if quote.Err != nil {
		resp.Error = quote.Err.Error()
	}
	return resp, nil
}
