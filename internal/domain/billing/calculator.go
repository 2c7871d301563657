package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageCounts carries the three resolved usage figures for one client and
// reference month, produced by the usage window rules.
type UsageCounts struct {
	BillableForms       int64
	CumulativeResponses int64
	MonthlyAiReports    int64
}

// Calculator computes a full invoice from current usage and pricing rules.
// All arithmetic is exact decimal; no floating point enters a charge.
type Calculator struct{}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute resolves the invoice for a client on the given plan.
//
// Nil plan limits mean unlimited and are substituted with zero inside the
// excess formulas, so max(count-0, 0) = count: an unlimited limit still
// yields a positive excess count. The nil limit is carried through to the
// invoice unchanged so the caller can suppress the matching charge.
//
// The AI-report included limit scales with the plan's form capacity
// (aiReportsPerForm x maxForms), while the AI-report excess is computed
// against the client's actual billable form count. The asymmetry is
// intentional.
func (c *Calculator) Compute(clientID uuid.UUID, plan *Plan, usage UsageCounts, referenceMonth time.Time) Invoice {
	maxForms := orZero(plan.MaxForms)
	maxResponses := orZero(plan.MaxResponses)
	aiPerForm := orZero(plan.AiReportsPerForm)

	formsExcess := clampExcess(usage.BillableForms - maxForms)
	responsesExcess := clampExcess(usage.CumulativeResponses - maxResponses)
	aiReportsLimit := aiPerForm * maxForms
	aiReportsExcess := clampExcess(usage.MonthlyAiReports - usage.BillableForms*aiPerForm)

	formCharge := c.formCharge(plan, formsExcess)
	responseCharge := c.responseCharge(plan, responsesExcess)
	aiReportCharge := c.aiReportCharge(plan, aiReportsExcess)

	total := formCharge.Add(responseCharge).Add(aiReportCharge)
	if plan.Type != PlanTypeUsageBased {
		total = total.Add(plan.BasePrice)
	}

	return Invoice{
		ClientID:       clientID,
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		ReferenceMonth: MonthOf(referenceMonth),

		TotalFormsThisMonth: usage.BillableForms,
		FormsIncludedByPlan: plan.MaxForms,
		FormsExcess:         formsExcess,

		TotalResponsesStored:    usage.CumulativeResponses,
		ResponsesIncludedByPlan: plan.MaxResponses,
		ResponsesExcess:         responsesExcess,

		TotalAiReportsThisMonth: usage.MonthlyAiReports,
		AiReportsIncludedLimit:  aiReportsLimit,
		AiReportsExcess:         aiReportsExcess,

		FormExcessCharge:     formCharge,
		ResponseExcessCharge: responseCharge,
		AiReportExcessCharge: aiReportCharge,
		InvoiceTotalSoFar:    total,
		PlanBasePrice:        plan.BasePrice,
	}
}

// formCharge is excess forms times the per-form price.
func (c *Calculator) formCharge(plan *Plan, formsExcess int64) decimal.Decimal {
	rule := plan.RuleFor(PricingItemForm)
	if rule == nil || formsExcess == 0 {
		return decimal.Zero
	}
	return rule.EffectivePrice(false).Mul(decimal.NewFromInt(formsExcess))
}

// responseCharge charges excess responses pro rata: pack price divided by
// pack size, times the excess count. Partial packs are not rounded up.
func (c *Calculator) responseCharge(plan *Plan, responsesExcess int64) decimal.Decimal {
	rule := plan.RuleFor(PricingItemResponsePack)
	if rule == nil || responsesExcess == 0 {
		return decimal.Zero
	}
	unitSize := decimal.NewFromInt(rule.EffectiveUnitSize())
	return decimal.NewFromInt(responsesExcess).Div(unitSize).Mul(rule.EffectivePrice(false))
}

// aiReportCharge is excess reports times the per-report price, discounted
// when the plan carries the AI-report discount.
func (c *Calculator) aiReportCharge(plan *Plan, aiReportsExcess int64) decimal.Decimal {
	rule := plan.RuleFor(PricingItemAiReport)
	if rule == nil || aiReportsExcess == 0 {
		return decimal.Zero
	}
	return rule.EffectivePrice(plan.AiReportsDiscount).Mul(decimal.NewFromInt(aiReportsExcess))
}

func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func clampExcess(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
