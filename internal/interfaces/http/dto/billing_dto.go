package dto

import (
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// InvoiceResponse is the wire shape of an invoice, live or snapshot. Charges
// are serialized as decimal strings so no precision is lost in transit.
type InvoiceResponse struct {
	ClientID       uuid.UUID `json:"client_id"`
	PlanID         uuid.UUID `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	ReferenceMonth string    `json:"reference_month"`

	TotalFormsThisMonth     int64  `json:"total_forms_this_month"`
	FormsIncludedByPlan     *int64 `json:"forms_included_by_plan"`
	FormsExcess             int64  `json:"forms_excess"`
	TotalResponsesStored    int64  `json:"total_responses_stored"`
	ResponsesIncludedByPlan *int64 `json:"responses_included_by_plan"`
	ResponsesExcess         int64  `json:"responses_excess"`
	TotalAiReportsThisMonth int64  `json:"total_ai_reports_this_month"`
	AiReportsIncludedLimit  int64  `json:"ai_reports_included_limit"`
	AiReportsExcess         int64  `json:"ai_reports_excess"`

	FormExcessCharge     string `json:"form_excess_charge"`
	ResponseExcessCharge string `json:"response_excess_charge"`
	AiReportExcessCharge string `json:"ai_report_excess_charge"`
	PlanBasePrice        string `json:"plan_base_price"`
	InvoiceTotalSoFar    string `json:"invoice_total_so_far"`
}

// MonthLayout is the wire format for reference months
const MonthLayout = "2006-01"

// FromInvoice converts a domain invoice to its wire shape
func FromInvoice(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ClientID:                inv.ClientID,
		PlanID:                  inv.PlanID,
		PlanName:                inv.PlanName,
		ReferenceMonth:          inv.ReferenceMonth.Format(MonthLayout),
		TotalFormsThisMonth:     inv.TotalFormsThisMonth,
		FormsIncludedByPlan:     inv.FormsIncludedByPlan,
		FormsExcess:             inv.FormsExcess,
		TotalResponsesStored:    inv.TotalResponsesStored,
		ResponsesIncludedByPlan: inv.ResponsesIncludedByPlan,
		ResponsesExcess:         inv.ResponsesExcess,
		TotalAiReportsThisMonth: inv.TotalAiReportsThisMonth,
		AiReportsIncludedLimit:  inv.AiReportsIncludedLimit,
		AiReportsExcess:         inv.AiReportsExcess,
		FormExcessCharge:        inv.FormExcessCharge.StringFixed(2),
		ResponseExcessCharge:    inv.ResponseExcessCharge.StringFixed(2),
		AiReportExcessCharge:    inv.AiReportExcessCharge.StringFixed(2),
		PlanBasePrice:           inv.PlanBasePrice.StringFixed(2),
		InvoiceTotalSoFar:       inv.InvoiceTotalSoFar.StringFixed(2),
	}
}

// MigratePlanRequest is the body of a plan migration request
type MigratePlanRequest struct {
	NewPlanID string `json:"new_plan_id" binding:"required,uuid"`
}

// MigratePlanResponse reports whether the migration was applied. Migrated is
// false when the client already sat on the target plan.
type MigratePlanResponse struct {
	Migrated bool `json:"migrated"`
}

// PricingRuleResponse is the wire shape of one plan pricing rule
type PricingRuleResponse struct {
	Item            string  `json:"item"`
	UnitSize        int64   `json:"unit_size"`
	Price           string  `json:"price"`
	DiscountedPrice *string `json:"discounted_price,omitempty"`
}

// PlanResponse is the wire shape of a subscription plan
type PlanResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	MaxForms           *int64                `json:"max_forms"`
	MaxResponses       *int64                `json:"max_responses"`
	BasePrice          string                `json:"base_price"`
	AiReportsPerForm   *int64                `json:"ai_reports_per_form"`
	AiReportsDiscount  bool                  `json:"ai_reports_discount"`
	UnlimitedResponses bool                  `json:"unlimited_responses"`
	Type               string                `json:"type"`
	PricingRules       []PricingRuleResponse `json:"pricing_rules"`
}

// FromPlan converts a domain plan to its wire shape
func FromPlan(plan *billing.Plan) PlanResponse {
	rules := make([]PricingRuleResponse, 0, len(plan.PricingRules))
	for _, rule := range plan.PricingRules {
		r := PricingRuleResponse{
			Item:     rule.Item.String(),
			UnitSize: rule.EffectiveUnitSize(),
			Price:    rule.Price.StringFixed(2),
		}
		if rule.DiscountedPrice != nil {
			discounted := rule.DiscountedPrice.StringFixed(2)
			r.DiscountedPrice = &discounted
		}
		rules = append(rules, r)
	}
	return PlanResponse{
		ID:                 plan.ID,
		Name:               plan.Name,
		MaxForms:           plan.MaxForms,
		MaxResponses:       plan.MaxResponses,
		BasePrice:          plan.BasePrice.StringFixed(2),
		AiReportsPerForm:   plan.AiReportsPerForm,
		AiReportsDiscount:  plan.AiReportsDiscount,
		UnlimitedResponses: plan.UnlimitedResponses,
		Type:               plan.Type.String(),
		PricingRules:       rules,
	}
}

// ParseMonth parses a YYYY-MM reference month. A zero time plus false means
// the value was absent; an error means it was malformed.
func ParseMonth(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, nil
	}
	month, err := time.ParseInLocation(MonthLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	return month, true, nil
}
