package queries

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/journal"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrJournalIsNotConfigured is returned when the service runs without a database.
var ErrJournalIsNotConfigured = errors.New("submission journal is not configured")

// GetOrphanedOrdersQueryHandler reads the submission journal directly.
//
// An order counts as HQ when its journal holds a shipment lookup, successful
// or not; partner orders never have one and are complete once created. An HQ
// order is orphaned while no fulfilled entry exists for it.
type GetOrphanedOrdersQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetOrphanedOrdersQueryHandler creates the handler. db may be nil when no
// database is configured.
func NewGetOrphanedOrdersQueryHandler(db *gorm.DB, now func() time.Time) GetOrphanedOrdersQueryHandler {
	return GetOrphanedOrdersQueryHandler{db: db, now: now}
}

// Handle returns orphaned orders, least recently active first.
func (h GetOrphanedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrphanedOrdersQuery,
) ([]GetOrphanedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, ErrJournalIsNotConfigured
	}

	olderThan := h.now().Add(-query.MinAge()).UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			(array_agg(session_id ORDER BY created_at DESC))[1] AS session_id,
			MAX(shipment_id) AS shipment_id,
			(array_agg(step ORDER BY created_at DESC))[1] AS last_step,
			(array_agg(outcome ORDER BY created_at DESC))[1] AS last_outcome,
			MIN(created_at) AS created_at,
			MAX(created_at) AS last_activity
		FROM journal_entries
		WHERE order_id <> ''
		GROUP BY order_id
		HAVING bool_or(step LIKE ?)
			AND NOT bool_or(step = ?)
			AND MAX(created_at) < ?
		ORDER BY last_activity
		LIMIT ?
	`, string(journal.StepShipmentResolved)+"%", string(journal.StepFulfilled), olderThan, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orphans := make([]GetOrphanedOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			o         GetOrphanedOrdersQueryResponse
			sessionID uuid.UUID
			step      string
			outcome   string
		)
		if err = rows.Scan(
			&o.OrderID,
			&sessionID,
			&o.ShipmentID,
			&step,
			&outcome,
			&o.CreatedAt,
			&o.LastActivity,
		); err != nil {
			return nil, err
		}

		o.SessionID = sessionID.String()
		o.LastStep = journal.Step(step)
		o.LastOutcome = journal.Outcome(outcome)
		orphans = append(orphans, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orphans, nil
}
