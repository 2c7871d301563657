package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormPlanMigrator performs the atomic plan switch. The client's plan update
// and the migrate_plan audit entry commit in one transaction; if either
// write fails the whole migration rolls back.
type GormPlanMigrator struct {
	database *Database
	logger   *zap.Logger
}

// NewGormPlanMigrator creates a new GormPlanMigrator
func NewGormPlanMigrator(database *Database, logger *zap.Logger) *GormPlanMigrator {
	return &GormPlanMigrator{
		database: database,
		logger:   logger,
	}
}

// MigratePlan moves the client to the target plan and records the migration
// in the audit trail. Returns false without error when the target equals the
// client's current plan, when the target plan does not exist, or when a
// concurrent migration changed the plan first; nothing is written in those
// cases.
func (m *GormPlanMigrator) MigratePlan(ctx context.Context, clientID, targetPlanID uuid.UUID) (bool, error) {
	var migrated bool

	err := m.database.Transaction(func(tx *gorm.DB) error {
		var client ClientModel
		if err := tx.WithContext(ctx).First(&client, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
			}
			return err
		}

		if client.PlanID == targetPlanID {
			return nil
		}

		var previousPlan, targetPlan PlanModel
		if err := tx.WithContext(ctx).First(&targetPlan, "id = ?", targetPlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				m.logger.Warn("Plan migration skipped, target plan does not exist",
					zap.String("client_id", clientID.String()),
					zap.String("target_plan_id", targetPlanID.String()))
				return nil
			}
			return err
		}
		if err := tx.WithContext(ctx).First(&previousPlan, "id = ?", client.PlanID).Error; err != nil {
			return err
		}

		// Compare-and-swap on the plan the client was read with; a
		// concurrent migration makes RowsAffected zero.
		result := tx.WithContext(ctx).
			Model(&ClientModel{}).
			Where("id = ? AND plan_id = ?", clientID, client.PlanID).
			Update("plan_id", targetPlanID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent migration won the race and already wrote its
			// own audit entry; this one becomes a no-op.
			m.logger.Warn("Plan migration skipped, client plan changed concurrently",
				zap.String("client_id", clientID.String()),
				zap.String("target_plan_id", targetPlanID.String()))
			return nil
		}

		entry, err := audit.NewActionLog(clientID, nil, audit.ActionMigratePlan, audit.Details{
			"previous_plan": previousPlan.Name,
			"new_plan":      targetPlan.Name,
		})
		if err != nil {
			return err
		}
		entry.Details["migrated_at"] = entry.OccurredAt.Format(time.RFC3339)
		if err := tx.WithContext(ctx).Create(ActionLogModelFromEntity(entry)).Error; err != nil {
			return err
		}

		migrated = true
		return nil
	})

	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return false, err
		}
		m.logger.Error("Plan migration transaction failed",
			zap.String("client_id", clientID.String()),
			zap.String("target_plan_id", targetPlanID.String()),
			zap.Error(err))
		return false, shared.WrapDomainError(shared.ErrTransactionFailure.Code, "Plan migration rolled back", err)
	}

	return migrated, nil
}
