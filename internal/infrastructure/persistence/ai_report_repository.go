package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AiReportModel is the GORM model for generated AI analysis reports
type AiReportModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index:idx_ai_reports_client_created"`
	FormID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Report     string    `gorm:"type:text;not null"`
	RangeStart time.Time `gorm:"not null"`
	RangeEnd   time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_ai_reports_client_created"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (AiReportModel) TableName() string {
	return "ai_reports"
}

// ToEntity converts the model to a domain entity
func (m *AiReportModel) ToEntity() *billing.AiReport {
	return &billing.AiReport{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ClientID:   m.ClientID,
		FormID:     m.FormID,
		Report:     m.Report,
		RangeStart: m.RangeStart,
		RangeEnd:   m.RangeEnd,
	}
}

// AiReportModelFromEntity creates a model from a domain entity
func AiReportModelFromEntity(e *billing.AiReport) *AiReportModel {
	return &AiReportModel{
		ID:         e.ID,
		ClientID:   e.ClientID,
		FormID:     e.FormID,
		Report:     e.Report,
		RangeStart: e.RangeStart,
		RangeEnd:   e.RangeEnd,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// GormAiReportRepository implements billing.AiReportUsageSource using GORM
type GormAiReportRepository struct {
	db *gorm.DB
}

// NewGormAiReportRepository creates a new GormAiReportRepository
func NewGormAiReportRepository(db *gorm.DB) *GormAiReportRepository {
	return &GormAiReportRepository{db: db}
}

// CountByClientInRange counts reports created in [start, end). AI report
// usage is strictly monthly, unlike response storage.
func (r *GormAiReportRepository) CountByClientInRange(ctx context.Context, clientID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&AiReportModel{}).
		Where("client_id = ? AND created_at >= ? AND created_at < ?", clientID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a new report row
func (r *GormAiReportRepository) Save(ctx context.Context, report *billing.AiReport) error {
	return r.db.WithContext(ctx).Create(AiReportModelFromEntity(report)).Error
}

// FindByID finds a report by its ID
func (r *GormAiReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.AiReport, error) {
	var model AiReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

var _ billing.AiReportUsageSource = (*GormAiReportRepository)(nil)
