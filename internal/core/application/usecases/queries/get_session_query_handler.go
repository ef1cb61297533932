package queries

import (
	"context"

	"shipping/internal/core/ports"
)

// GetSessionQueryHandler serves session snapshots from the session store.
type GetSessionQueryHandler struct {
	sessions ports.SessionRepository
}

func NewGetSessionQueryHandler(sessions ports.SessionRepository) GetSessionQueryHandler {
	return GetSessionQueryHandler{sessions: sessions}
}

// Handle returns the snapshot and drains the notifications it reports.
func (h GetSessionQueryHandler) Handle(ctx context.Context, query GetSessionQuery) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	session, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	notes := session.DrainNotifications()
	snapshot := session.Snapshot()
	snapshot.Notifications = notes
	return snapshot, nil
}
