package audit

import (
	"context"

	"github.com/google/uuid"
)

// ActionLogRepository persists and queries the append-only audit trail.
// Entries are never updated or deleted.
type ActionLogRepository interface {
	// Save appends a new entry
	Save(ctx context.Context, entry *ActionLog) error

	// FindByClient retrieves a client's entries matching the filter,
	// ordered by occurrence time descending
	FindByClient(ctx context.Context, clientID uuid.UUID, filter QueryFilter) ([]*ActionLog, error)

	// CountByClient counts a client's entries matching the filter
	CountByClient(ctx context.Context, clientID uuid.UUID, filter QueryFilter) (int64, error)
}
