package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the month-to-date (or closed-month) bill resolved for one client.
// The live and snapshot paths both produce this exact shape.
//
// Nullable plan limits stay nil here even though the matching excess field is
// computed against zero, so an "unlimited" plan can report a positive excess
// count. Downstream consumers are expected to suppress charges when the limit
// itself is nil; both values are surfaced so that decision stays with them.
type Invoice struct {
	ClientID       uuid.UUID `json:"client_id"`
	PlanID         uuid.UUID `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	ReferenceMonth time.Time `json:"reference_month"`

	TotalFormsThisMonth int64  `json:"total_forms_this_month"`
	FormsIncludedByPlan *int64 `json:"forms_included_by_plan"`
	FormsExcess         int64  `json:"forms_excess"`

	TotalResponsesStored    int64  `json:"total_responses_stored"`
	ResponsesIncludedByPlan *int64 `json:"responses_included_by_plan"`
	ResponsesExcess         int64  `json:"responses_excess"`

	TotalAiReportsThisMonth int64 `json:"total_ai_reports_this_month"`
	AiReportsIncludedLimit  int64 `json:"ai_reports_included_limit"`
	AiReportsExcess         int64 `json:"ai_reports_excess"`

	FormExcessCharge     decimal.Decimal `json:"form_excess_charge"`
	ResponseExcessCharge decimal.Decimal `json:"response_excess_charge"`
	AiReportExcessCharge decimal.Decimal `json:"ai_report_excess_charge"`
	InvoiceTotalSoFar    decimal.Decimal `json:"invoice_total_so_far"`
	PlanBasePrice        decimal.Decimal `json:"plan_base_price"`
}
