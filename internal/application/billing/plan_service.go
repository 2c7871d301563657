package billing

import (
	"context"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanService exposes the plan catalog for the migration UI.
type PlanService struct {
	planRepo billing.PlanRepository
	logger   *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo billing.PlanRepository, logger *zap.Logger) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		logger:   logger,
	}
}

// ListPlans returns every configured plan with its pricing rules.
func (s *PlanService) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	plans, err := s.planRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.WrapDomainError("PLAN_LIST_FAILED", "Failed to list plans", err)
	}
	return plans, nil
}

// GetPlan returns a single plan by ID.
func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Plan not found")
		}
		return nil, shared.WrapDomainError("PLAN_LOOKUP_FAILED", "Failed to load plan", err)
	}
	return plan, nil
}
