package repositories

import (
	"context"

	"github.com/google/uuid"

	"network-registry.backend/internal/domain/entities"
)

// NetworkRepository defines network persistence operations. Implementations
// surface missing rows as domainerrors.ErrNotFound and chain id uniqueness
// violations as domainerrors.ErrConflict; they make no retry decisions.
type NetworkRepository interface {
	// GetByID returns the network with the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Network, error)
	// GetByChainID returns the network with the given chain id, active or not.
	GetByChainID(ctx context.Context, chainID int64) (*entities.Network, error)
	// GetAllActive returns active networks ordered by name ascending.
	GetAllActive(ctx context.Context) ([]*entities.Network, error)
	// Create persists a new network.
	Create(ctx context.Context, network *entities.Network) error
	// Update persists the full state of an existing network and returns it.
	// Returns ErrNotFound when the target id no longer exists.
	Update(ctx context.Context, network *entities.Network) (*entities.Network, error)
	// SoftDelete marks the network inactive and reports whether a row changed.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsByChainID reports whether any network uses the chain id,
	// optionally excluding one network from the check.
	ExistsByChainID(ctx context.Context, chainID int64, excludeID *uuid.UUID) (bool, error)
}
