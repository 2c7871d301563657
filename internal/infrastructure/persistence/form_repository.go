package persistence

import (
	"context"
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormModel is the GORM projection of forms consumed by the billing window
// rules. Form content itself is owned by the forms service; billing reads
// only the lifecycle columns.
type FormModel struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsActive              bool       `gorm:"not null;default:true"`
	SettingsInactivatedAt *time.Time `gorm:"column:settings_inactivated_at"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (FormModel) TableName() string {
	return "forms"
}

// ToRecord converts the model to the billing form projection
func (m *FormModel) ToRecord() billing.FormRecord {
	return billing.FormRecord{
		ID:                    m.ID,
		ClientID:              m.ClientID,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		IsActive:              m.IsActive,
		SettingsInactivatedAt: m.SettingsInactivatedAt,
	}
}

// GormFormUsageSource implements billing.FormUsageSource using GORM
type GormFormUsageSource struct {
	db *gorm.DB
}

// NewGormFormUsageSource creates a new GormFormUsageSource
func NewGormFormUsageSource(db *gorm.DB) *GormFormUsageSource {
	return &GormFormUsageSource{db: db}
}

// FormsByClient retrieves every form record for a client. The billable
// subset is decided in the domain, not in SQL, so the window rules stay in
// one place.
func (r *GormFormUsageSource) FormsByClient(ctx context.Context, clientID uuid.UUID) ([]billing.FormRecord, error) {
	var models []FormModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]billing.FormRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].ToRecord())
	}
	return records, nil
}

var _ billing.FormUsageSource = (*GormFormUsageSource)(nil)
