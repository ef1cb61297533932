package queries_test

import (
	"context"
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetSessionQuery_InvalidID_ReturnsError(t *testing.T) {
	_, err := queries.NewGetSessionQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetSessionQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetSessionQuery{}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetSessionQueryIsNotConstructed)
}

func TestGetSessionQueryHandler_ReturnsSnapshotAndDrainsNotifications(t *testing.T) {
	session := newTestSession(t, newClock())
	session.Notify(wizard.LevelInfo, "contact_created", "sender saved")
	session.NotifyError("order_failed", errors.New("boom"))
	handler := queries.NewGetSessionQueryHandler(newFakeSessions(session))

	query, err := queries.NewGetSessionQuery(session.ID())
	require.NoError(t, err)

	first, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.True(t, session.ID().IsEqual(first.ID))
	assert.Equal(t, wizard.StepContact, first.Step)
	require.Len(t, first.Notifications, 2)
	assert.Equal(t, "contact_created", first.Notifications[0].Code)
	assert.Equal(t, wizard.LevelError, first.Notifications[1].Level)

	second, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, second.Notifications)
	assert.Empty(t, session.Notifications())
}

func TestGetSessionQueryHandler_UnknownSession_ReturnsNotFound(t *testing.T) {
	handler := queries.NewGetSessionQueryHandler(newFakeSessions())

	query, err := queries.NewGetSessionQuery(kernel.NewUUID())
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetSessionQueryHandler_InvalidQuery_ReturnsError(t *testing.T) {
	handler := queries.NewGetSessionQueryHandler(newFakeSessions())

	_, err := handler.Handle(context.Background(), queries.GetSessionQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetSessionQueryIsNotConstructed)
}
