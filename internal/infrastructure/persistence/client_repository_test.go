package persistence

import (
	"context"
	"testing"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedClient(t *testing.T, db *gorm.DB, planID uuid.UUID) *ClientModel {
	t.Helper()
	client := &ClientModel{
		ID:     uuid.New(),
		Name:   "Acme Feedback",
		Email:  "billing@acme.test",
		PlanID: planID,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestGormClientRepository_FindByID(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("finds existing client", func(t *testing.T) {
		seeded := seedClient(t, db, uuid.New())

		client, err := repo.FindByID(ctx, seeded.ID)

		require.NoError(t, err)
		assert.Equal(t, seeded.ID, client.ID)
		assert.Equal(t, "Acme Feedback", client.Name)
		assert.Equal(t, seeded.PlanID, client.PlanID)
	})

	t.Run("returns not found for missing client", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClientRepository_Exists(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	seeded := seedClient(t, db, uuid.New())

	exists, err := repo.Exists(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
