// Package audit exposes the append-only client action trail: recording
// entries and serving the rendered, paginated history.
package audit

import (
	"context"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/domain/identity"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RenderedEntry is one audit trail line as shown to the client: the raw
// payload replaced by a human-readable observation.
type RenderedEntry struct {
	ID                  uuid.UUID  `json:"id"`
	FormID              *uuid.UUID `json:"form_id,omitempty"`
	Timestamp           time.Time  `json:"timestamp"`
	ActionType          string     `json:"action_type"`
	ActionLabel         string     `json:"action_label"`
	RenderedObservation string     `json:"rendered_observation"`
}

// TrailService records client actions and serves the rendered trail.
type TrailService struct {
	logRepo    audit.ActionLogRepository
	clientRepo identity.ClientRepository
	logger     *zap.Logger
}

// NewTrailService creates a new TrailService
func NewTrailService(logRepo audit.ActionLogRepository, clientRepo identity.ClientRepository, logger *zap.Logger) *TrailService {
	return &TrailService{
		logRepo:    logRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Log appends an audit entry and returns its ID. FormID is nil for
// client-level actions.
func (s *TrailService) Log(ctx context.Context, clientID uuid.UUID, formID *uuid.UUID, actionType audit.ActionType, details audit.Details) (uuid.UUID, error) {
	entry, err := audit.NewActionLog(clientID, formID, actionType, details)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.logRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			zap.String("client_id", clientID.String()),
			zap.String("action_type", actionType.String()),
			zap.Error(err))
		return uuid.Nil, shared.WrapDomainError("AUDIT_WRITE_FAILED", "Failed to record action", err)
	}

	s.logger.Debug("Audit entry recorded",
		zap.String("client_id", clientID.String()),
		zap.String("action_type", actionType.String()))
	return entry.ID, nil
}

// Query returns a client's rendered audit trail, newest first. The client is
// verified to exist so an empty trail is distinguishable from a wrong ID.
func (s *TrailService) Query(ctx context.Context, clientID uuid.UUID, filter audit.QueryFilter) (*shared.Paginated[RenderedEntry], error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = audit.DefaultQueryFilter().PageSize
	}
	for _, at := range filter.ActionTypes {
		if !at.IsValid() {
			return nil, shared.NewDomainError("INVALID_ACTION_TYPE", "Invalid action type filter: "+at.String())
		}
	}

	exists, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return nil, shared.WrapDomainError("CLIENT_LOOKUP_FAILED", "Failed to verify client", err)
	}
	if !exists {
		return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
	}

	entries, err := s.logRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, shared.WrapDomainError("AUDIT_QUERY_FAILED", "Failed to query audit trail", err)
	}
	total, err := s.logRepo.CountByClient(ctx, clientID, filter)
	if err != nil {
		return nil, shared.WrapDomainError("AUDIT_QUERY_FAILED", "Failed to count audit trail", err)
	}

	rendered := make([]RenderedEntry, 0, len(entries))
	for _, entry := range entries {
		rendered = append(rendered, RenderedEntry{
			ID:                  entry.ID,
			FormID:              entry.FormID,
			Timestamp:           entry.OccurredAt,
			ActionType:          entry.ActionType.String(),
			ActionLabel:         entry.ActionType.Label(),
			RenderedObservation: audit.Render(entry),
		})
	}

	page := shared.NewPaginated(rendered, total, filter.Page, filter.PageSize)
	return &page, nil
}
