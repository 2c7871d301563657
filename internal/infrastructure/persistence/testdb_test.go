package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-compatible versions of the persistence models for testing. Only the
// schema matters; the repositories still read and write the real models.

type PlanModelSQLite struct {
	ID                 string          `gorm:"primaryKey"`
	Name               string          `gorm:"not null"`
	MaxForms           *int64          `gorm:"column:max_forms"`
	MaxResponses       *int64          `gorm:"column:max_responses"`
	BasePrice          decimal.Decimal `gorm:"type:numeric;not null"`
	AiReportsPerForm   *int64          `gorm:"column:ai_reports_per_form"`
	AiReportsDiscount  bool            `gorm:"not null;default:false"`
	UnlimitedResponses bool            `gorm:"not null;default:false"`
	PlanType           string          `gorm:"not null;default:'flat'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PlanModelSQLite) TableName() string { return "plans" }

type PricingRuleModelSQLite struct {
	ID              string           `gorm:"primaryKey"`
	PlanID          string           `gorm:"not null;index"`
	Item            string           `gorm:"not null"`
	UnitSize        int64            `gorm:"not null;default:1"`
	Price           decimal.Decimal  `gorm:"type:numeric;not null"`
	DiscountedPrice *decimal.Decimal `gorm:"type:numeric"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PricingRuleModelSQLite) TableName() string { return "pricing_rules" }

type ClientModelSQLite struct {
	ID         string `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"not null"`
	PlanID     string `gorm:"not null;index"`
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ClientModelSQLite) TableName() string { return "clients" }

type FormModelSQLite struct {
	ID                    string `gorm:"primaryKey"`
	ClientID              string `gorm:"not null;index"`
	IsActive              bool   `gorm:"not null;default:true"`
	SettingsInactivatedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (FormModelSQLite) TableName() string { return "forms" }

type FeedbackResponseModelSQLite struct {
	ID          string    `gorm:"primaryKey"`
	ClientID    string    `gorm:"not null;index"`
	FormID      string    `gorm:"not null;index"`
	SubmittedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (FeedbackResponseModelSQLite) TableName() string { return "feedback_responses" }

type AiReportModelSQLite struct {
	ID         string    `gorm:"primaryKey"`
	ClientID   string    `gorm:"not null;index"`
	FormID     string    `gorm:"not null;index"`
	Report     string    `gorm:"not null"`
	RangeStart time.Time `gorm:"not null"`
	RangeEnd   time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AiReportModelSQLite) TableName() string { return "ai_reports" }

type BillingSummaryModelSQLite struct {
	ID                string          `gorm:"primaryKey"`
	ClientID          string          `gorm:"not null;index"`
	PlanID            string          `gorm:"not null"`
	PlanName          string          `gorm:"not null"`
	ReferenceMonth    time.Time       `gorm:"not null"`
	TotalForms        int64           `gorm:"not null"`
	FormsIncluded     *int64          `gorm:"column:forms_included"`
	FormsExcess       int64           `gorm:"not null"`
	TotalResponses    int64           `gorm:"not null"`
	ResponsesIncluded *int64          `gorm:"column:responses_included"`
	ResponsesExcess   int64           `gorm:"not null"`
	TotalAiReports    int64           `gorm:"not null"`
	AiReportsLimit    int64           `gorm:"not null"`
	AiReportsExcess   int64           `gorm:"not null"`
	FormExcessCharge  decimal.Decimal `gorm:"type:numeric;not null"`
	ResponseCharge    decimal.Decimal `gorm:"type:numeric;not null"`
	AiReportCharge    decimal.Decimal `gorm:"type:numeric;not null"`
	InvoiceTotal      decimal.Decimal `gorm:"type:numeric;not null"`
	PlanBasePrice     decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BillingSummaryModelSQLite) TableName() string { return "billing_summaries" }

type ActionLogModelSQLite struct {
	ID         string         `gorm:"primaryKey"`
	ClientID   string         `gorm:"not null;index"`
	FormID     *string        `gorm:"index"`
	ActionType string         `gorm:"not null;index"`
	OccurredAt time.Time      `gorm:"not null;index"`
	Details    map[string]any `gorm:"type:text;serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ActionLogModelSQLite) TableName() string { return "client_action_logs" }

// setupTestDB opens an in-memory SQLite database and migrates the given
// shadow models.
func setupTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// setupBillingTestDB migrates every table the billing repositories touch
func setupBillingTestDB(t *testing.T) *gorm.DB {
	return setupTestDB(t,
		&PlanModelSQLite{},
		&PricingRuleModelSQLite{},
		&ClientModelSQLite{},
		&FormModelSQLite{},
		&FeedbackResponseModelSQLite{},
		&AiReportModelSQLite{},
		&BillingSummaryModelSQLite{},
		&ActionLogModelSQLite{},
	)
}
