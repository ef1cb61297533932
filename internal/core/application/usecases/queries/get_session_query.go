// Package queries contains read operations over wizard sessions, the box
// catalog and the submission journal. Queries never change session state,
// except that reading a session drains its pending notifications.
package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrGetSessionQueryIsNotConstructed = errors.New(
	"GetSessionQuery must be created via NewGetSessionQuery constructor",
)

// GetSessionQuery reads the current state of one wizard session.
//
// Example:
//
//	query, err := NewGetSessionQuery(sessionID)
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, query)
//	for _, n := range snapshot.Notifications {
//	    fmt.Printf("%s: %s\n", n.Code, n.Message)
//	}
type GetSessionQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSessionQuery(sessionID kernel.UUID) (GetSessionQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionQuery{}, err
	}
	return GetSessionQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

func (q GetSessionQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// GetSessionQueryResponse is the session snapshot. Notifications holds what
// was pending at the time of the read; they are not returned again.
type GetSessionQueryResponse = wizard.Snapshot
