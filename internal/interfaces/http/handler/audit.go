package handler

import (
	appaudit "github.com/formpulse/backend/internal/application/audit"
	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/interfaces/http/dto"
	"github.com/formpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditHandler serves the client action trail
type AuditHandler struct {
	BaseHandler
	trail  *appaudit.TrailService
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(trail *appaudit.TrailService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		trail:  trail,
		logger: logger,
	}
}

// RegisterRoutes registers the audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auditGroup := rg.Group("/audit")
	{
		auditGroup.GET("/clients/:id/logs", h.ListLogs)
		auditGroup.POST("/clients/:id/logs", h.RecordAction)
	}
}

// ListLogs returns a client's rendered audit trail, newest first
func (h *AuditHandler) ListLogs(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client ID must be a valid UUID")
		return
	}

	var req dto.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.trail.Query(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RecordAction appends an audit entry for a client action. This endpoint is
// called by the forms service, not by end users.
func (h *AuditHandler) RecordAction(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client ID must be a valid UUID")
		return
	}

	var req dto.RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	actionType, ok := audit.ParseActionType(req.ActionType)
	if !ok {
		h.BadRequest(c, "Unknown action type: "+req.ActionType)
		return
	}

	var formID *uuid.UUID
	if req.FormID != "" {
		parsed, err := uuid.Parse(req.FormID)
		if err != nil {
			h.BadRequest(c, "form_id must be a valid UUID")
			return
		}
		formID = &parsed
	}

	id, err := h.trail.Log(c.Request.Context(), clientID, formID, actionType, req.Details)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"id": id})
}
