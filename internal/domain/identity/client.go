// Package identity holds the client (tenant) side of the billing engine's
// world: who owns the forms and which plan their usage is billed against.
// Client lifecycle (signup, identity fields, expiry handling) is managed by
// external collaborators; this engine reads clients and mutates only the
// plan pointer, through the transactional plan migration.
package identity

import (
	"time"

	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is one paying tenant of the forms product. PlanID always references
// an existing plan.
type Client struct {
	shared.BaseEntity
	Name       string
	Email      string
	PlanID     uuid.UUID
	ExpiryDate *time.Time
}

// IsExpired reports whether the client's subscription has lapsed at t.
func (c *Client) IsExpired(t time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(t)
}
