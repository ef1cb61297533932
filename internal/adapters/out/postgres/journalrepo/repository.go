package journalrepo

import (
	"context"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJournalRepository implements JournalRepository using GORM.
type GormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// Add inserts the entry. Entries are never updated.
func (r *GormJournalRepository) Add(ctx context.Context, entry journal.Entry) error {
	if err := entry.ID.Validate(); err != nil {
		return err
	}
	if err := entry.SessionID.Validate(); err != nil {
		return err
	}
	if entry.Step == "" {
		return errs.NewValueIsRequiredError("step")
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListBySession returns the entries of a session, oldest first.
func (r *GormJournalRepository) ListBySession(ctx context.Context, sessionID kernel.UUID) ([]journal.Entry, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JournalEntryDTO
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
