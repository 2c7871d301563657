package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanRepository provides read access to plan reference data.
type PlanRepository interface {
	// FindByID retrieves a plan with its pricing rules preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindAll retrieves every configured plan with pricing rules
	FindAll(ctx context.Context) ([]*Plan, error)
}

// FormUsageSource provides the form projections the window rules run on.
type FormUsageSource interface {
	// FormsByClient retrieves every form record for a client
	FormsByClient(ctx context.Context, clientID uuid.UUID) ([]FormRecord, error)
}

// ResponseUsageSource counts stored feedback responses.
type ResponseUsageSource interface {
	// CountByClientBefore counts all responses submitted before the cutoff,
	// across the client's entire history
	CountByClientBefore(ctx context.Context, clientID uuid.UUID, cutoff time.Time) (int64, error)
}

// AiReportUsageSource counts and stores generated AI reports.
type AiReportUsageSource interface {
	// CountByClientInRange counts reports created in [start, end)
	CountByClientInRange(ctx context.Context, clientID uuid.UUID, start, end time.Time) (int64, error)

	// Save persists a new report row
	Save(ctx context.Context, report *AiReport) error

	// FindByID retrieves a single report
	FindByID(ctx context.Context, id uuid.UUID) (*AiReport, error)
}

// BillingSummaryRepository reads (and, for the month-close batch, writes)
// immutable closed-month snapshots.
type BillingSummaryRepository interface {
	// FindByClientAndMonth retrieves the snapshot for (client, month).
	// Returns shared.ErrNotFound when the month was never closed or predates
	// the client.
	FindByClientAndMonth(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*BillingSummary, error)

	// Save persists a snapshot row. Used by the external month-close batch
	// only; snapshots are never updated once written.
	Save(ctx context.Context, summary *BillingSummary) error
}
