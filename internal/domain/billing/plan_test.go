package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_RuleFor(t *testing.T) {
	plan := testPlan(i64(5), i64(1000), i64(1), PlanTypeFlat)

	t.Run("returns the rule for a configured item", func(t *testing.T) {
		rule := plan.RuleFor(PricingItemResponsePack)
		require.NotNil(t, rule)
		assert.Equal(t, int64(100), rule.UnitSize)
	})

	t.Run("returns nil for an item without a rule", func(t *testing.T) {
		bare := testPlan(i64(5), i64(1000), i64(1), PlanTypeFlat)
		bare.PricingRules = nil
		assert.Nil(t, bare.RuleFor(PricingItemForm))
	})
}

func TestPricingRule_EffectiveUnitSize(t *testing.T) {
	rule := PricingRule{Item: PricingItemResponsePack, Price: decimal.NewFromInt(50)}
	assert.Equal(t, DefaultResponsePackSize, rule.EffectiveUnitSize())

	rule.UnitSize = 250
	assert.Equal(t, int64(250), rule.EffectiveUnitSize())
}

func TestPricingRule_EffectivePrice(t *testing.T) {
	discounted := decimal.NewFromInt(3)
	rule := PricingRule{Item: PricingItemAiReport, Price: decimal.NewFromInt(5), DiscountedPrice: &discounted}

	assert.True(t, rule.EffectivePrice(false).Equal(decimal.NewFromInt(5)))
	assert.True(t, rule.EffectivePrice(true).Equal(decimal.NewFromInt(3)))

	// Discount flag without a configured discounted price falls back to list price.
	rule.DiscountedPrice = nil
	assert.True(t, rule.EffectivePrice(true).Equal(decimal.NewFromInt(5)))
}

func TestPlanType_IsValid(t *testing.T) {
	assert.True(t, PlanTypeFlat.IsValid())
	assert.True(t, PlanTypeUsageBased.IsValid())
	assert.False(t, PlanType("metered").IsValid())
}

func TestPricingItem_IsValid(t *testing.T) {
	assert.True(t, PricingItemForm.IsValid())
	assert.True(t, PricingItemResponsePack.IsValid())
	assert.True(t, PricingItemAiReport.IsValid())
	assert.False(t, PricingItem("seat").IsValid())
}
