package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newMigrationFixture(t *testing.T) (*GormPlanMigrator, *gorm.DB, *ClientModel, *PlanModel, *PlanModel) {
	t.Helper()
	db := setupBillingTestDB(t)
	migrator := NewGormPlanMigrator(&Database{DB: db}, zap.NewNop())

	freePlan := seedPlan(t, db, "Free", 0)
	proPlan := seedPlan(t, db, "Pro", 100)
	client := seedClient(t, db, freePlan.ID)

	return migrator, db, client, freePlan, proPlan
}

func TestGormPlanMigrator_MigratePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("switches plan and writes the audit entry atomically", func(t *testing.T) {
		migrator, db, client, _, proPlan := newMigrationFixture(t)

		migrated, err := migrator.MigratePlan(ctx, client.ID, proPlan.ID)

		require.NoError(t, err)
		assert.True(t, migrated)

		var updated ClientModel
		require.NoError(t, db.First(&updated, "id = ?", client.ID).Error)
		assert.Equal(t, proPlan.ID, updated.PlanID)

		logRepo := NewGormActionLogRepository(db)
		entries, err := logRepo.FindByClient(ctx, client.ID, audit.DefaultQueryFilter())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionMigratePlan, entries[0].ActionType)
		assert.Nil(t, entries[0].FormID)
		assert.Equal(t, "Free", entries[0].Details["previous_plan"])
		assert.Equal(t, "Pro", entries[0].Details["new_plan"])
		assert.Equal(t, `Migrated the plan from "Free" to "Pro".`, audit.Render(entries[0]))

		migratedAt, ok := entries[0].Details["migrated_at"].(string)
		require.True(t, ok)
		stamped, err := time.Parse(time.RFC3339, migratedAt)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), stamped, time.Minute)
	})

	t.Run("same plan is a no-op with no audit entry", func(t *testing.T) {
		migrator, db, client, freePlan, _ := newMigrationFixture(t)

		migrated, err := migrator.MigratePlan(ctx, client.ID, freePlan.ID)

		require.NoError(t, err)
		assert.False(t, migrated)

		var count int64
		require.NoError(t, db.Model(&ActionLogModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown client fails without writes", func(t *testing.T) {
		migrator, db, _, _, proPlan := newMigrationFixture(t)

		_, err := migrator.MigratePlan(ctx, uuid.New(), proPlan.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLIENT_NOT_FOUND", domainErr.Code)

		var count int64
		require.NoError(t, db.Model(&ActionLogModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown target plan is a no-op without writes", func(t *testing.T) {
		migrator, db, client, freePlan, _ := newMigrationFixture(t)

		migrated, err := migrator.MigratePlan(ctx, client.ID, uuid.New())

		require.NoError(t, err)
		assert.False(t, migrated)

		// The client keeps its original plan and no audit entry exists.
		var unchanged ClientModel
		require.NoError(t, db.First(&unchanged, "id = ?", client.ID).Error)
		assert.Equal(t, freePlan.ID, unchanged.PlanID)

		var count int64
		require.NoError(t, db.Model(&ActionLogModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("lost update race is a no-op", func(t *testing.T) {
		migrator, db, client, _, proPlan := newMigrationFixture(t)

		// Switch the plan out from under the migrator right before its
		// compare-and-swap update runs.
		stolen := false
		require.NoError(t, db.Callback().Update().Before("gorm:update").Register("concurrent_plan_switch", func(d *gorm.DB) {
			if stolen {
				return
			}
			stolen = true
			require.NoError(t, d.Session(&gorm.Session{NewDB: true}).
				Exec("UPDATE clients SET plan_id = ? WHERE id = ?", proPlan.ID, client.ID).Error)
		}))

		migrated, err := migrator.MigratePlan(ctx, client.ID, proPlan.ID)

		require.NoError(t, err)
		assert.False(t, migrated)

		// The winning switch stands and the losing attempt wrote nothing.
		var updated ClientModel
		require.NoError(t, db.First(&updated, "id = ?", client.ID).Error)
		assert.Equal(t, proPlan.ID, updated.PlanID)

		var count int64
		require.NoError(t, db.Model(&ActionLogModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("non-domain failures map to transaction failure", func(t *testing.T) {
		migrator, db, client, _, proPlan := newMigrationFixture(t)

		// Dropping the audit table makes the second write fail mid-transaction.
		require.NoError(t, db.Migrator().DropTable(&ActionLogModelSQLite{}))

		_, err := migrator.MigratePlan(ctx, client.ID, proPlan.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrTransactionFailure.Code, domainErr.Code)
		assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))

		// The plan switch rolled back with the failed audit write.
		var unchanged ClientModel
		require.NoError(t, db.First(&unchanged, "id = ?", client.ID).Error)
		assert.NotEqual(t, proPlan.ID, unchanged.PlanID)
	})
}
