// Package journalrepo persists the submission journal. Each saga sub-step is
// one append-only row; the orphaned orders query groups them by order.
package journalrepo

import (
	"time"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JournalEntryDTO is one row of the journal_entries table.
type JournalEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID      uuid.UUID `gorm:"type:uuid;index"`
	IdempotencyKey string    `gorm:"size:64"`
	Step           string    `gorm:"size:64;not null"`
	Outcome        string    `gorm:"size:16;not null"`
	OrderID        string    `gorm:"size:64;index"`
	ShipmentID     string    `gorm:"size:64"`
	Detail         string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

func (JournalEntryDTO) TableName() string {
	return "journal_entries"
}

func fromDomain(e journal.Entry) JournalEntryDTO {
	return JournalEntryDTO{
		ID:             e.ID.Bytes(),
		SessionID:      e.SessionID.Bytes(),
		IdempotencyKey: e.IdempotencyKey,
		Step:           string(e.Step),
		Outcome:        string(e.Outcome),
		OrderID:        e.OrderID,
		ShipmentID:     e.ShipmentID,
		Detail:         e.Detail,
		CreatedAt:      e.CreatedAt.UTC(),
	}
}

func toDomain(dto JournalEntryDTO) (journal.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return journal.Entry{}, err
	}

	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return journal.Entry{}, err
	}

	return journal.Entry{
		ID:             id,
		SessionID:      sessionID,
		IdempotencyKey: dto.IdempotencyKey,
		Step:           journal.Step(dto.Step),
		Outcome:        journal.Outcome(dto.Outcome),
		OrderID:        dto.OrderID,
		ShipmentID:     dto.ShipmentID,
		Detail:         dto.Detail,
		CreatedAt:      dto.CreatedAt.UTC(),
	}, nil
}
