package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/formpulse/backend/internal/domain/identity"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientModel is the GORM model for clients
type ClientModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Email      string     `gorm:"type:varchar(320);not null;uniqueIndex"`
	PlanID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpiryDate *time.Time `gorm:"column:expiry_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts the model to a domain entity
func (m *ClientModel) ToEntity() *identity.Client {
	return &identity.Client{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:       m.Name,
		Email:      m.Email,
		PlanID:     m.PlanID,
		ExpiryDate: m.ExpiryDate,
	}
}

// GormClientRepository implements identity.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	var model ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Exists reports whether a client with the given ID exists
func (r *GormClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ClientModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.ClientRepository = (*GormClientRepository)(nil)
