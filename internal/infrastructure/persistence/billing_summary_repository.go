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

// BillingSummaryModel is the GORM model for closed-month billing snapshots
type BillingSummaryModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index:idx_billing_summaries_client_month,unique"`
	PlanID         uuid.UUID `gorm:"type:uuid;not null"`
	PlanName       string    `gorm:"type:varchar(100);not null"`
	ReferenceMonth time.Time `gorm:"not null;index:idx_billing_summaries_client_month,unique"`

	TotalForms        int64           `gorm:"not null"`
	FormsIncluded     *int64          `gorm:"column:forms_included"`
	FormsExcess       int64           `gorm:"not null"`
	TotalResponses    int64           `gorm:"not null"`
	ResponsesIncluded *int64          `gorm:"column:responses_included"`
	ResponsesExcess   int64           `gorm:"not null"`
	TotalAiReports    int64           `gorm:"not null"`
	AiReportsLimit    int64           `gorm:"not null"`
	AiReportsExcess   int64           `gorm:"not null"`
	FormExcessCharge  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ResponseCharge    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AiReportCharge    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	InvoiceTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PlanBasePrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (BillingSummaryModel) TableName() string {
	return "billing_summaries"
}

// ToEntity converts the model to a domain entity
func (m *BillingSummaryModel) ToEntity() *billing.BillingSummary {
	return &billing.BillingSummary{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ClientID:          m.ClientID,
		PlanID:            m.PlanID,
		PlanName:          m.PlanName,
		ReferenceMonth:    m.ReferenceMonth.UTC(),
		TotalForms:        m.TotalForms,
		FormsIncluded:     m.FormsIncluded,
		FormsExcess:       m.FormsExcess,
		TotalResponses:    m.TotalResponses,
		ResponsesIncluded: m.ResponsesIncluded,
		ResponsesExcess:   m.ResponsesExcess,
		TotalAiReports:    m.TotalAiReports,
		AiReportsLimit:    m.AiReportsLimit,
		AiReportsExcess:   m.AiReportsExcess,
		FormExcessCharge:  m.FormExcessCharge,
		ResponseCharge:    m.ResponseCharge,
		AiReportCharge:    m.AiReportCharge,
		InvoiceTotal:      m.InvoiceTotal,
		PlanBasePrice:     m.PlanBasePrice,
	}
}

// BillingSummaryModelFromEntity creates a model from a domain entity
func BillingSummaryModelFromEntity(e *billing.BillingSummary) *BillingSummaryModel {
	return &BillingSummaryModel{
		ID:                e.ID,
		ClientID:          e.ClientID,
		PlanID:            e.PlanID,
		PlanName:          e.PlanName,
		ReferenceMonth:    e.ReferenceMonth,
		TotalForms:        e.TotalForms,
		FormsIncluded:     e.FormsIncluded,
		FormsExcess:       e.FormsExcess,
		TotalResponses:    e.TotalResponses,
		ResponsesIncluded: e.ResponsesIncluded,
		ResponsesExcess:   e.ResponsesExcess,
		TotalAiReports:    e.TotalAiReports,
		AiReportsLimit:    e.AiReportsLimit,
		AiReportsExcess:   e.AiReportsExcess,
		FormExcessCharge:  e.FormExcessCharge,
		ResponseCharge:    e.ResponseCharge,
		AiReportCharge:    e.AiReportCharge,
		InvoiceTotal:      e.InvoiceTotal,
		PlanBasePrice:     e.PlanBasePrice,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// GormBillingSummaryRepository implements billing.BillingSummaryRepository using GORM
type GormBillingSummaryRepository struct {
	db *gorm.DB
}

// NewGormBillingSummaryRepository creates a new GormBillingSummaryRepository
func NewGormBillingSummaryRepository(db *gorm.DB) *GormBillingSummaryRepository {
	return &GormBillingSummaryRepository{db: db}
}

// FindByClientAndMonth finds the snapshot for the client and calendar month.
// The lookup normalizes the month so any timestamp inside it matches.
func (r *GormBillingSummaryRepository) FindByClientAndMonth(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.BillingSummary, error) {
	var model BillingSummaryModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND reference_month = ?", clientID, billing.MonthOf(referenceMonth)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Save persists a snapshot row
func (r *GormBillingSummaryRepository) Save(ctx context.Context, summary *billing.BillingSummary) error {
	return r.db.WithContext(ctx).Create(BillingSummaryModelFromEntity(summary)).Error
}

var _ billing.BillingSummaryRepository = (*GormBillingSummaryRepository)(nil)
