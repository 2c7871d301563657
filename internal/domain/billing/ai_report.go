package billing

import (
	"time"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AiReport is one generated AI analysis report for a form. Reports count
// toward the creation month's AI usage. The report text itself comes from an
// external text service; this domain only stores and counts the result.
type AiReport struct {
	shared.BaseEntity
	ClientID   uuid.UUID
	FormID     uuid.UUID
	Report     string
	RangeStart time.Time
	RangeEnd   time.Time
}

// NewAiReport creates a new AI report row for the given form and date range.
func NewAiReport(clientID, formID uuid.UUID, report string, rangeStart, rangeEnd time.Time) (*AiReport, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if formID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FORM", "Form ID cannot be empty")
	}
	if rangeEnd.Before(rangeStart) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Report range end cannot precede its start")
	}
	return &AiReport{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		FormID:     formID,
		Report:     report,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
	}, nil
}
