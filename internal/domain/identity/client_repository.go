package identity

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository provides read access to clients. Plan mutation happens
// only inside the transactional plan migration, which lives in the
// persistence layer so the plan update and its audit entry share one
// database transaction.
type ClientRepository interface {
	// FindByID retrieves a client, or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// Exists reports whether a client exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
