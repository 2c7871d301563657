package billing

import (
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanType distinguishes how a plan's total is assembled
type PlanType string

const (
	// PlanTypeFlat charges the base price plus any overage
	PlanTypeFlat PlanType = "flat"

	// PlanTypeUsageBased charges overage only, with no base price component
	PlanTypeUsageBased PlanType = "usage_based"
)

// String returns the string representation of PlanType
func (t PlanType) String() string {
	return string(t)
}

// IsValid returns true if the plan type is valid
func (t PlanType) IsValid() bool {
	switch t {
	case PlanTypeFlat, PlanTypeUsageBased:
		return true
	}
	return false
}

// PricingItem identifies the billable item a pricing rule applies to
type PricingItem string

const (
	PricingItemForm         PricingItem = "form"
	PricingItemResponsePack PricingItem = "response_pack"
	PricingItemAiReport     PricingItem = "ai_report"
)

// String returns the string representation of PricingItem
func (i PricingItem) String() string {
	return string(i)
}

// IsValid returns true if the pricing item is valid
func (i PricingItem) IsValid() bool {
	switch i {
	case PricingItemForm, PricingItemResponsePack, PricingItemAiReport:
		return true
	}
	return false
}

// DefaultResponsePackSize is the pack granularity used when a response_pack
// rule does not specify a unit size.
const DefaultResponsePackSize int64 = 100

// Plan describes a subscription plan's included limits and base price.
// Plans are immutable reference data, changed only by administrators.
// A nil limit means unlimited.
type Plan struct {
	shared.BaseEntity
	Name               string
	MaxForms           *int64
	MaxResponses       *int64
	BasePrice          decimal.Decimal
	AiReportsPerForm   *int64
	AiReportsDiscount  bool
	UnlimitedResponses bool
	Type               PlanType
	PricingRules       []PricingRule
}

// RuleFor returns the plan's pricing rule for the given item, or nil when the
// plan carries no rule for it. At most one rule exists per (plan, item).
func (p *Plan) RuleFor(item PricingItem) *PricingRule {
	for i := range p.PricingRules {
		if p.PricingRules[i].Item == item {
			return &p.PricingRules[i]
		}
	}
	return nil
}

// PricingRule prices one billable item of a plan.
type PricingRule struct {
	shared.BaseEntity
	PlanID          uuid.UUID
	Item            PricingItem
	UnitSize        int64
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
}

// EffectiveUnitSize returns the rule's pack granularity, defaulting to 100
// for response packs when unset.
func (r *PricingRule) EffectiveUnitSize() int64 {
	if r.UnitSize > 0 {
		return r.UnitSize
	}
	return DefaultResponsePackSize
}

// EffectivePrice returns the discounted price when one is configured and
// discounted is true, otherwise the list price.
func (r *PricingRule) EffectivePrice(discounted bool) decimal.Decimal {
	if discounted && r.DiscountedPrice != nil {
		return *r.DiscountedPrice
	}
	return r.Price
}
