// Package handler contains the gin HTTP handlers for the billing and audit
// APIs.
package handler

import (
	"time"

	appbilling "github.com/formpulse/backend/internal/application/billing"
	"github.com/formpulse/backend/internal/interfaces/http/dto"
	"github.com/formpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingHandler serves invoices, the plan catalog and plan migrations
type BillingHandler struct {
	BaseHandler
	facade    *appbilling.BillingFacade
	migration *appbilling.PlanMigrationService
	plans     *appbilling.PlanService
	logger    *zap.Logger
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	facade *appbilling.BillingFacade,
	migration *appbilling.PlanMigrationService,
	plans *appbilling.PlanService,
	logger *zap.Logger,
) *BillingHandler {
	return &BillingHandler{
		facade:    facade,
		migration: migration,
		plans:     plans,
		logger:    logger,
	}
}

// RegisterRoutes registers the billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		billing.GET("/clients/:id/invoice", h.GetInvoice)
		billing.POST("/clients/:id/plan-migration", h.MigratePlan)
		billing.GET("/plans", h.ListPlans)
		billing.GET("/plans/:id", h.GetPlan)
	}
}

// GetInvoice returns the invoice for a client and reference month. The
// month query parameter is YYYY-MM; without it the current month is used,
// which always takes the live computation path.
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client ID must be a valid UUID")
		return
	}

	referenceMonth, present, err := dto.ParseMonth(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "month must be formatted as YYYY-MM")
		return
	}
	if !present {
		referenceMonth = time.Now().UTC()
	}

	invoice, err := h.facade.GetInvoice(c.Request.Context(), clientID, referenceMonth)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.FromInvoice(invoice))
}

// MigratePlan switches the client to a new plan
func (h *BillingHandler) MigratePlan(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client ID must be a valid UUID")
		return
	}

	var req dto.MigratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	targetPlanID, err := uuid.Parse(req.NewPlanID)
	if err != nil {
		h.BadRequest(c, "new_plan_id must be a valid UUID")
		return
	}

	migrated, err := h.migration.MigratePlan(c.Request.Context(), clientID, targetPlanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MigratePlanResponse{Migrated: migrated})
}

// ListPlans returns the plan catalog
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, dto.FromPlan(plan))
	}
	h.Success(c, responses)
}

// GetPlan returns a single plan by ID
func (h *BillingHandler) GetPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Plan ID must be a valid UUID")
		return
	}

	plan, err := h.plans.GetPlan(c.Request.Context(), planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.FromPlan(plan))
}
