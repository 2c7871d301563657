package persistence

import (
	"context"
	"time"

	"github.com/formpulse/backend/internal/domain/audit"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionLogModel is the GORM model for the append-only client action trail
type ActionLogModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ClientID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_action_logs_client_occurred"`
	FormID     *uuid.UUID     `gorm:"type:uuid;index"`
	ActionType string         `gorm:"type:varchar(50);not null;index"`
	OccurredAt time.Time      `gorm:"not null;index:idx_action_logs_client_occurred,sort:desc"`
	Details    map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (ActionLogModel) TableName() string {
	return "client_action_logs"
}

// ToEntity converts the model to a domain entity
func (m *ActionLogModel) ToEntity() *audit.ActionLog {
	return &audit.ActionLog{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ClientID:   m.ClientID,
		FormID:     m.FormID,
		ActionType: audit.ActionType(m.ActionType),
		OccurredAt: m.OccurredAt.UTC(),
		Details:    m.Details,
	}
}

// ActionLogModelFromEntity creates a model from a domain entity
func ActionLogModelFromEntity(e *audit.ActionLog) *ActionLogModel {
	return &ActionLogModel{
		ID:         e.ID,
		ClientID:   e.ClientID,
		FormID:     e.FormID,
		ActionType: e.ActionType.String(),
		OccurredAt: e.OccurredAt,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// GormActionLogRepository implements audit.ActionLogRepository using GORM
type GormActionLogRepository struct {
	db *gorm.DB
}

// NewGormActionLogRepository creates a new GormActionLogRepository
func NewGormActionLogRepository(db *gorm.DB) *GormActionLogRepository {
	return &GormActionLogRepository{db: db}
}

// Save appends a new entry. Entries are never updated or deleted.
func (r *GormActionLogRepository) Save(ctx context.Context, entry *audit.ActionLog) error {
	return r.db.WithContext(ctx).Create(ActionLogModelFromEntity(entry)).Error
}

// FindByClient retrieves a client's entries matching the filter, newest first
func (r *GormActionLogRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter audit.QueryFilter) ([]*audit.ActionLog, error) {
	var models []ActionLogModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ActionLogModel{}).Where("client_id = ?", clientID), filter).
		Order("occurred_at desc")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]*audit.ActionLog, 0, len(models))
	for i := range models {
		entries = append(entries, models[i].ToEntity())
	}
	return entries, nil
}

// CountByClient counts a client's entries matching the filter
func (r *GormActionLogRepository) CountByClient(ctx context.Context, clientID uuid.UUID, filter audit.QueryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ActionLogModel{}).Where("client_id = ?", clientID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter narrows the query by action types and inclusive date bounds
func (r *GormActionLogRepository) applyFilter(query *gorm.DB, filter audit.QueryFilter) *gorm.DB {
	if len(filter.ActionTypes) > 0 {
		types := make([]string, 0, len(filter.ActionTypes))
		for _, at := range filter.ActionTypes {
			types = append(types, at.String())
		}
		query = query.Where("action_type IN ?", types)
	}
	if filter.StartDate != nil {
		query = query.Where("occurred_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("occurred_at <= ?", *filter.EndDate)
	}
	return query
}

var _ audit.ActionLogRepository = (*GormActionLogRepository)(nil)
