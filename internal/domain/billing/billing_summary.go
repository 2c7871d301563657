package billing

import (
	"time"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingSummary is the immutable snapshot of a closed month's invoice.
// Exactly one row exists per (client, reference month) once that month has
// been closed by the external month-close batch; rows are never overwritten.
type BillingSummary struct {
	shared.BaseEntity
	ClientID       uuid.UUID
	PlanID         uuid.UUID
	PlanName       string
	ReferenceMonth time.Time

	TotalForms        int64
	FormsIncluded     *int64
	FormsExcess       int64
	TotalResponses    int64
	ResponsesIncluded *int64
	ResponsesExcess   int64
	TotalAiReports    int64
	AiReportsLimit    int64
	AiReportsExcess   int64
	FormExcessCharge  decimal.Decimal
	ResponseCharge    decimal.Decimal
	AiReportCharge    decimal.Decimal
	InvoiceTotal      decimal.Decimal
	PlanBasePrice     decimal.Decimal
}

// NewBillingSummary freezes an invoice into a snapshot row.
func NewBillingSummary(inv Invoice) *BillingSummary {
	return &BillingSummary{
		BaseEntity:        shared.NewBaseEntity(),
		ClientID:          inv.ClientID,
		PlanID:            inv.PlanID,
		PlanName:          inv.PlanName,
		ReferenceMonth:    MonthOf(inv.ReferenceMonth),
		TotalForms:        inv.TotalFormsThisMonth,
		FormsIncluded:     inv.FormsIncludedByPlan,
		FormsExcess:       inv.FormsExcess,
		TotalResponses:    inv.TotalResponsesStored,
		ResponsesIncluded: inv.ResponsesIncludedByPlan,
		ResponsesExcess:   inv.ResponsesExcess,
		TotalAiReports:    inv.TotalAiReportsThisMonth,
		AiReportsLimit:    inv.AiReportsIncludedLimit,
		AiReportsExcess:   inv.AiReportsExcess,
		FormExcessCharge:  inv.FormExcessCharge,
		ResponseCharge:    inv.ResponseExcessCharge,
		AiReportCharge:    inv.AiReportExcessCharge,
		InvoiceTotal:      inv.InvoiceTotalSoFar,
		PlanBasePrice:     inv.PlanBasePrice,
	}
}

// ToInvoice rehydrates the snapshot into the shared Invoice shape so the
// snapshot path returns exactly what the live path would.
func (s *BillingSummary) ToInvoice() Invoice {
	return Invoice{
		ClientID:                s.ClientID,
		PlanID:                  s.PlanID,
		PlanName:                s.PlanName,
		ReferenceMonth:          s.ReferenceMonth,
		TotalFormsThisMonth:     s.TotalForms,
		FormsIncludedByPlan:     s.FormsIncluded,
		FormsExcess:             s.FormsExcess,
		TotalResponsesStored:    s.TotalResponses,
		ResponsesIncludedByPlan: s.ResponsesIncluded,
		ResponsesExcess:         s.ResponsesExcess,
		TotalAiReportsThisMonth: s.TotalAiReports,
		AiReportsIncludedLimit:  s.AiReportsLimit,
		AiReportsExcess:         s.AiReportsExcess,
		FormExcessCharge:        s.FormExcessCharge,
		ResponseExcessCharge:    s.ResponseCharge,
		AiReportExcessCharge:    s.AiReportCharge,
		InvoiceTotalSoFar:       s.InvoiceTotal,
		PlanBasePrice:           s.PlanBasePrice,
	}
}
