package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrphanedOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrphanedOrdersQuery(30*time.Minute, 100)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 30*time.Minute, query.MinAge())
	assert.Equal(t, 100, query.Limit())
}

func TestNewGetOrphanedOrdersQuery_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		minAge time.Duration
		limit  int
	}{
		{name: "negative age", minAge: -time.Minute, limit: 10},
		{name: "zero limit", minAge: 0, limit: 0},
		{name: "limit too large", minAge: 0, limit: 501},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetOrphanedOrdersQuery(tt.minAge, tt.limit)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestGetOrphanedOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetOrphanedOrdersQuery{}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrphanedOrdersQueryIsNotConstructed)
}

func TestGetOrphanedOrdersQueryHandler_WithoutDatabase_ReturnsNotConfigured(t *testing.T) {
	handler := queries.NewGetOrphanedOrdersQueryHandler(nil, time.Now)
	query, err := queries.NewGetOrphanedOrdersQuery(0, 10)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)

	require.ErrorIs(t, err, queries.ErrJournalIsNotConfigured)
}
