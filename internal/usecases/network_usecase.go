package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"network-registry.backend/internal/domain/entities"
	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/internal/domain/repositories"
	"network-registry.backend/pkg/logger"
)

// NetworkUsecase orchestrates network registry operations. It is stateless
// and safe for concurrent use; the injected repository is the only handle.
type NetworkUsecase struct {
	networkRepo repositories.NetworkRepository
}

// NewNetworkUsecase creates a new network usecase
func NewNetworkUsecase(networkRepo repositories.NetworkRepository) *NetworkUsecase {
	return &NetworkUsecase{networkRepo: networkRepo}
}

// Create registers a new network. The chain id existence check is a
// friendliness optimization; the storage unique index is authoritative, so a
// conflicting insert that slips past the check still comes back as Conflict.
func (u *NetworkUsecase) Create(ctx context.Context, data entities.CreateNetworkData) (*entities.Network, error) {
	logger.Info(ctx, "Creating network", zap.Int64("chain_id", data.ChainID), zap.String("name", data.Name))

	exists, err := u.networkRepo.ExistsByChainID(ctx, data.ChainID, nil)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if exists {
		return nil, chainIDConflict(data.ChainID)
	}

	network, err := entities.NewNetwork(data)
	if err != nil {
		return nil, err
	}

	if err := u.networkRepo.Create(ctx, network); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, chainIDConflict(data.ChainID)
		}
		return nil, domainerrors.Internal(err)
	}

	logger.Info(ctx, "Network created", zap.String("network_id", network.ID.String()), zap.Int64("chain_id", network.ChainID))
	return network, nil
}

// GetByID returns a single network by its id.
func (u *NetworkUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Network, error) {
	logger.Debug(ctx, "Getting network", zap.String("network_id", id.String()))

	network, err := u.networkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, networkNotFound(id)
		}
		return nil, domainerrors.Internal(err)
	}
	return network, nil
}

// GetActive returns all active networks ordered by name. An empty registry
// is not an error.
func (u *NetworkUsecase) GetActive(ctx context.Context) ([]*entities.Network, error) {
	networks, err := u.networkRepo.GetAllActive(ctx)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	logger.Debug(ctx, "Listed active networks", zap.Int("count", len(networks)))
	return networks, nil
}

// Update performs a full update (PUT). The boundary never populates Active on
// this path, so the stored active flag is preserved.
func (u *NetworkUsecase) Update(ctx context.Context, id uuid.UUID, data entities.UpdateNetworkData) (*entities.Network, error) {
	logger.Info(ctx, "Updating network", zap.String("network_id", id.String()))
	return u.applyUpdate(ctx, id, data)
}

// PartialUpdate performs a merge update (PATCH), which may also toggle Active.
func (u *NetworkUsecase) PartialUpdate(ctx context.Context, id uuid.UUID, data entities.UpdateNetworkData) (*entities.Network, error) {
	logger.Info(ctx, "Partially updating network", zap.String("network_id", id.String()))
	return u.applyUpdate(ctx, id, data)
}

// applyUpdate is the shared protocol behind Update and PartialUpdate:
// load, conflict-check a changed chain id, merge, re-validate, persist.
func (u *NetworkUsecase) applyUpdate(ctx context.Context, id uuid.UUID, data entities.UpdateNetworkData) (*entities.Network, error) {
	existing, err := u.networkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, networkNotFound(id)
		}
		return nil, domainerrors.Internal(err)
	}

	// Only a changed chain id needs the uniqueness check.
	if data.ChainID.Valid && data.ChainID.Int64 != existing.ChainID {
		exists, err := u.networkRepo.ExistsByChainID(ctx, data.ChainID.Int64, &id)
		if err != nil {
			return nil, domainerrors.Internal(err)
		}
		if exists {
			return nil, chainIDConflict(data.ChainID.Int64)
		}
	}

	merged := existing.WithUpdates(data)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	updated, err := u.networkRepo.Update(ctx, &merged)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			// The row vanished between load and save.
			return nil, networkNotFound(id)
		case errors.Is(err, domainerrors.ErrConflict):
			return nil, chainIDConflict(merged.ChainID)
		}
		return nil, domainerrors.Internal(err)
	}

	logger.Info(ctx, "Network updated", zap.String("network_id", id.String()))
	return updated, nil
}

// Delete soft-deletes a network by flipping it inactive.
func (u *NetworkUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Info(ctx, "Soft deleting network", zap.String("network_id", id.String()))

	deleted, err := u.networkRepo.SoftDelete(ctx, id)
	if err != nil {
		return domainerrors.Internal(err)
	}
	if !deleted {
		return networkNotFound(id)
	}
	return nil
}

func chainIDConflict(chainID int64) error {
	return domainerrors.Conflict(fmt.Sprintf("network with chainId %d already exists", chainID))
}

func networkNotFound(id uuid.UUID) error {
	return domainerrors.NotFound(fmt.Sprintf("network with id '%s' not found", id))
}
