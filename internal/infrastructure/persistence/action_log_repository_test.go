package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedActionLog(t *testing.T, db *gorm.DB, clientID uuid.UUID, actionType audit.ActionType, occurredAt time.Time, details audit.Details) *audit.ActionLog {
	t.Helper()
	entry, err := audit.NewActionLog(clientID, nil, actionType, details)
	require.NoError(t, err)
	entry.OccurredAt = occurredAt
	require.NoError(t, db.Create(ActionLogModelFromEntity(entry)).Error)
	return entry
}

func TestGormActionLogRepository_Save(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormActionLogRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	formID := uuid.New()
	entry, err := audit.NewActionLog(clientID, &formID, audit.ActionCreateForm, audit.Details{"form_name": "NPS Survey"})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, entry))

	found, err := repo.FindByClient(ctx, clientID, audit.DefaultQueryFilter())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, audit.ActionCreateForm, found[0].ActionType)
	require.NotNil(t, found[0].FormID)
	assert.Equal(t, formID, *found[0].FormID)
	assert.Equal(t, "NPS Survey", found[0].Details["form_name"])
}

func TestGormActionLogRepository_FindByClient(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormActionLogRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}

	seedActionLog(t, db, clientID, audit.ActionCreateForm, day(1), audit.Details{"form_name": "A"})
	seedActionLog(t, db, clientID, audit.ActionEditForm, day(5), audit.Details{"form_name": "A"})
	seedActionLog(t, db, clientID, audit.ActionDeleteForm, day(9), audit.Details{"form_name": "A"})
	seedActionLog(t, db, uuid.New(), audit.ActionCreateForm, day(2), nil)

	t.Run("returns only the client's entries, newest first", func(t *testing.T) {
		entries, err := repo.FindByClient(ctx, clientID, audit.DefaultQueryFilter())

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, audit.ActionDeleteForm, entries[0].ActionType)
		assert.Equal(t, audit.ActionEditForm, entries[1].ActionType)
		assert.Equal(t, audit.ActionCreateForm, entries[2].ActionType)
	})

	t.Run("filters by action type", func(t *testing.T) {
		filter := audit.DefaultQueryFilter()
		filter.ActionTypes = []audit.ActionType{audit.ActionEditForm, audit.ActionDeleteForm}

		entries, err := repo.FindByClient(ctx, clientID, filter)

		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("date bounds are inclusive", func(t *testing.T) {
		start := day(5)
		end := day(9)
		filter := audit.DefaultQueryFilter()
		filter.StartDate = &start
		filter.EndDate = &end

		entries, err := repo.FindByClient(ctx, clientID, filter)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, audit.ActionDeleteForm, entries[0].ActionType)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := audit.QueryFilter{Page: 2, PageSize: 2}

		entries, err := repo.FindByClient(ctx, clientID, filter)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionCreateForm, entries[0].ActionType)
	})
}

func TestGormActionLogRepository_CountByClient(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormActionLogRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedActionLog(t, db, clientID, audit.ActionCreateForm, at, nil)
	seedActionLog(t, db, clientID, audit.ActionAiAnalysis, at.Add(time.Hour), nil)

	count, err := repo.CountByClient(ctx, clientID, audit.DefaultQueryFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	filter := audit.DefaultQueryFilter()
	filter.ActionTypes = []audit.ActionType{audit.ActionAiAnalysis}
	count, err = repo.CountByClient(ctx, clientID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
