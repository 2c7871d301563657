package billing

import (
	"time"

	"github.com/google/uuid"
)

// FormRecord is the read-only projection of a form that the window rules
// operate on. SettingsInactivatedAt carries the optional settings-level
// inactivation date recorded for the form.
type FormRecord struct {
	ID                    uuid.UUID
	ClientID              uuid.UUID
	CreatedAt             time.Time
	UpdatedAt             time.Time
	IsActive              bool
	SettingsInactivatedAt *time.Time
}

// UsageWindowResolver decides which usage counts toward a reference month.
//
// The three counting rules are deliberately asymmetric:
//   - forms follow the window-membership rule below,
//   - responses are cumulative over the client's whole history,
//   - AI reports reset monthly.
type UsageWindowResolver struct{}

// NewUsageWindowResolver creates a new UsageWindowResolver
func NewUsageWindowResolver() *UsageWindowResolver {
	return &UsageWindowResolver{}
}

// IsFormBillable reports whether a form counts toward the month containing
// referenceMonth.
//
// A form is billable iff it was created before the end of the month and is
// either still active or was last touched inside the month (a form
// deactivated during the month is still billed for that month). A form whose
// settings-level inactivation date falls in exactly this month is excluded
// regardless of the other conditions.
func (r *UsageWindowResolver) IsFormBillable(form FormRecord, referenceMonth time.Time) bool {
	monthStart, monthEnd := MonthWindow(referenceMonth)

	if !form.CreatedAt.Before(monthEnd) {
		return false
	}
	if !form.IsActive && form.UpdatedAt.Before(monthStart) {
		return false
	}
	if form.SettingsInactivatedAt != nil && SameMonth(*form.SettingsInactivatedAt, referenceMonth) {
		return false
	}
	return true
}

// BillableForms filters forms down to the ones billable for the given month.
func (r *UsageWindowResolver) BillableForms(forms []FormRecord, referenceMonth time.Time) []FormRecord {
	billable := make([]FormRecord, 0, len(forms))
	for _, f := range forms {
		if r.IsFormBillable(f, referenceMonth) {
			billable = append(billable, f)
		}
	}
	return billable
}

// ResponseCutoff returns the response-count cutoff for the given month.
// Responses accrue across the client's entire history: every response
// submitted before the start of the following month counts, with no
// monthly reset.
func (r *UsageWindowResolver) ResponseCutoff(referenceMonth time.Time) time.Time {
	_, monthEnd := MonthWindow(referenceMonth)
	return monthEnd
}

// AiReportWindow returns the half-open interval AI reports are counted in
// for the given month. Unlike responses, AI-report usage resets monthly.
func (r *UsageWindowResolver) AiReportWindow(referenceMonth time.Time) (start, end time.Time) {
	return MonthWindow(referenceMonth)
}
