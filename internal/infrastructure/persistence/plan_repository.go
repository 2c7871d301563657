package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanModel is the GORM model for subscription plans
type PlanModel struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name               string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	MaxForms           *int64             `gorm:"column:max_forms"`
	MaxResponses       *int64             `gorm:"column:max_responses"`
	BasePrice          decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	AiReportsPerForm   *int64             `gorm:"column:ai_reports_per_form"`
	AiReportsDiscount  bool               `gorm:"not null;default:false"`
	UnlimitedResponses bool               `gorm:"not null;default:false"`
	PlanType           string             `gorm:"type:varchar(20);not null;default:'flat'"`
	PricingRules       []PricingRuleModel `gorm:"foreignKey:PlanID"`
	CreatedAt          time.Time          `gorm:"autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (PlanModel) TableName() string {
	return "plans"
}

// PricingRuleModel is the GORM model for per-item plan pricing
type PricingRuleModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PlanID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_pricing_rules_plan_item,unique"`
	Item            string           `gorm:"type:varchar(30);not null;index:idx_pricing_rules_plan_item,unique"`
	UnitSize        int64            `gorm:"not null;default:1"`
	Price           decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	DiscountedPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (PricingRuleModel) TableName() string {
	return "pricing_rules"
}

// ToEntity converts the model to a domain entity
func (m *PlanModel) ToEntity() *billing.Plan {
	rules := make([]billing.PricingRule, 0, len(m.PricingRules))
	for i := range m.PricingRules {
		rules = append(rules, *m.PricingRules[i].ToEntity())
	}
	return &billing.Plan{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:               m.Name,
		MaxForms:           m.MaxForms,
		MaxResponses:       m.MaxResponses,
		BasePrice:          m.BasePrice,
		AiReportsPerForm:   m.AiReportsPerForm,
		AiReportsDiscount:  m.AiReportsDiscount,
		UnlimitedResponses: m.UnlimitedResponses,
		Type:               billing.PlanType(m.PlanType),
		PricingRules:       rules,
	}
}

// ToEntity converts the model to a domain entity
func (m *PricingRuleModel) ToEntity() *billing.PricingRule {
	return &billing.PricingRule{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PlanID:          m.PlanID,
		Item:            billing.PricingItem(m.Item),
		UnitSize:        m.UnitSize,
		Price:           m.Price,
		DiscountedPrice: m.DiscountedPrice,
	}
}

// GormPlanRepository implements billing.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID with pricing rules preloaded
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	var model PlanModel
	if err := r.db.WithContext(ctx).
		Preload("PricingRules").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindAll finds all plans with pricing rules preloaded
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]*billing.Plan, error) {
	var models []PlanModel
	if err := r.db.WithContext(ctx).
		Preload("PricingRules").
		Order("base_price asc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]*billing.Plan, 0, len(models))
	for i := range models {
		plans = append(plans, models[i].ToEntity())
	}
	return plans, nil
}

var _ billing.PlanRepository = (*GormPlanRepository)(nil)
