package persistence

import (
	"context"
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackResponseModel is the GORM projection of stored feedback responses.
// Billing only ever counts rows; response content stays with the forms
// service.
type FeedbackResponseModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index:idx_feedback_client_submitted"`
	FormID      uuid.UUID `gorm:"type:uuid;not null;index"`
	SubmittedAt time.Time `gorm:"not null;index:idx_feedback_client_submitted"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for the model
func (FeedbackResponseModel) TableName() string {
	return "feedback_responses"
}

// GormResponseUsageSource implements billing.ResponseUsageSource using GORM
type GormResponseUsageSource struct {
	db *gorm.DB
}

// NewGormResponseUsageSource creates a new GormResponseUsageSource
func NewGormResponseUsageSource(db *gorm.DB) *GormResponseUsageSource {
	return &GormResponseUsageSource{db: db}
}

// CountByClientBefore counts every response submitted strictly before the
// cutoff, across the client's entire history. Responses are billed on
// cumulative storage, not monthly arrival.
func (r *GormResponseUsageSource) CountByClientBefore(ctx context.Context, clientID uuid.UUID, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&FeedbackResponseModel{}).
		Where("client_id = ? AND submitted_at < ?", clientID, cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ billing.ResponseUsageSource = (*GormResponseUsageSource)(nil)
