package dto

import (
	"strings"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/domain/shared"
)

// AuditLogListRequest carries the audit trail query parameters. Types is a
// comma-separated list of action type values; date bounds are inclusive
// YYYY-MM-DD days.
type AuditLogListRequest struct {
	Types    string `form:"types"`
	Start    string `form:"start"`
	End      string `form:"end"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=200"`
}

// DateLayout is the wire format for audit date bounds
const DateLayout = "2006-01-02"

// ToFilter converts the request into a domain query filter
func (r *AuditLogListRequest) ToFilter() (audit.QueryFilter, error) {
	filter := audit.DefaultQueryFilter()
	if r.Page > 0 {
		filter.Page = r.Page
	}
	if r.PageSize > 0 {
		filter.PageSize = r.PageSize
	}

	if r.Types != "" {
		for _, raw := range strings.Split(r.Types, ",") {
			actionType, ok := audit.ParseActionType(strings.TrimSpace(raw))
			if !ok {
				return filter, shared.NewDomainError("INVALID_ACTION_TYPE", "Unknown action type: "+raw)
			}
			filter.ActionTypes = append(filter.ActionTypes, actionType)
		}
	}

	if r.Start != "" {
		start, err := time.ParseInLocation(DateLayout, r.Start, time.UTC)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "start must be a YYYY-MM-DD date")
		}
		filter.StartDate = &start
	}
	if r.End != "" {
		end, err := time.ParseInLocation(DateLayout, r.End, time.UTC)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT", "end must be a YYYY-MM-DD date")
		}
		// Inclusive end of day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, nil
}

// RecordActionRequest is the body for appending an audit entry
type RecordActionRequest struct {
	FormID     string         `json:"form_id" binding:"omitempty,uuid"`
	ActionType string         `json:"action_type" binding:"required"`
	Details    map[string]any `json:"details"`
}
