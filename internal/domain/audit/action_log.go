package audit

import (
	"time"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Details is the free-form structured payload of an audit entry. Each action
// type defines its own expected keys; nothing is enforced at write time.
type Details map[string]any

// ActionLog is one immutable audit record of a client action. FormID is nil
// for client-level actions such as plan migrations.
type ActionLog struct {
	shared.BaseEntity
	ClientID   uuid.UUID
	FormID     *uuid.UUID
	ActionType ActionType
	OccurredAt time.Time
	Details    Details
}

// NewActionLog creates a new audit entry stamped with the current time.
func NewActionLog(clientID uuid.UUID, formID *uuid.UUID, actionType ActionType, details Details) (*ActionLog, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !actionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION_TYPE", "Invalid action type")
	}
	return &ActionLog{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		FormID:     formID,
		ActionType: actionType,
		OccurredAt: time.Now().UTC(),
		Details:    details,
	}, nil
}

// QueryFilter bounds an audit trail query. ClientID is mandatory and carried
// by the query itself; everything here is optional. Date bounds are
// inclusive. Results are always ordered newest first.
type QueryFilter struct {
	ActionTypes []ActionType
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	PageSize    int
}

// DefaultQueryFilter returns a filter with default pagination
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{
		Page:     1,
		PageSize: 50,
	}
}
