package billing

import (
	"context"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanMigrator performs the atomic plan switch. The implementation lives in
// the persistence layer so the client update and its audit entry commit in
// one database transaction.
type PlanMigrator interface {
	// MigratePlan moves the client to the target plan and records the
	// migration in the audit trail. Returns false (with nil error) when the
	// target equals the current plan, when the target plan does not exist,
	// or when a concurrent migration got there first; nothing is written in
	// those cases.
	MigratePlan(ctx context.Context, clientID, targetPlanID uuid.UUID) (bool, error)
}

// PlanMigrationService validates migration requests and delegates to the
// transactional migrator.
type PlanMigrationService struct {
	migrator PlanMigrator
	logger   *zap.Logger
}

// NewPlanMigrationService creates a new PlanMigrationService
func NewPlanMigrationService(migrator PlanMigrator, logger *zap.Logger) *PlanMigrationService {
	return &PlanMigrationService{
		migrator: migrator,
		logger:   logger,
	}
}

// MigratePlan switches a client to the target plan.
//
// The switch and its audit entry are a single unit of work: a plan change
// without a matching audit row never becomes visible. A request naming the
// client's current plan, a missing target plan, or a switch that lost a
// concurrent race is a no-op and reports false.
func (s *PlanMigrationService) MigratePlan(ctx context.Context, clientID, targetPlanID uuid.UUID) (bool, error) {
	if clientID == uuid.Nil {
		return false, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if targetPlanID == uuid.Nil {
		return false, shared.NewDomainError("INVALID_PLAN", "Target plan ID cannot be empty")
	}

	migrated, err := s.migrator.MigratePlan(ctx, clientID, targetPlanID)
	if err != nil {
		s.logger.Error("Plan migration failed",
			zap.String("client_id", clientID.String()),
			zap.String("target_plan_id", targetPlanID.String()),
			zap.Error(err))
		return false, err
	}

	if !migrated {
		s.logger.Info("Plan migration was a no-op",
			zap.String("client_id", clientID.String()),
			zap.String("target_plan_id", targetPlanID.String()))
		return false, nil
	}

	s.logger.Info("Plan migrated",
		zap.String("client_id", clientID.String()),
		zap.String("target_plan_id", targetPlanID.String()))
	return true, nil
}
