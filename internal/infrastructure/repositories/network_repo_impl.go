package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"network-registry.backend/internal/domain/entities"
	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/internal/domain/repositories"
	"network-registry.backend/internal/infrastructure/models"
)

// networkRepo implements repositories.NetworkRepository
type networkRepo struct {
	db *gorm.DB
}

// NewNetworkRepository creates a new network repository
func NewNetworkRepository(db *gorm.DB) repositories.NetworkRepository {
	return &networkRepo{db: db}
}

// GetByID gets a network by ID
func (r *networkRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Network, error) {
	var m models.Network
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// GetByChainID gets a network by chain ID, active or inactive
func (r *networkRepo) GetByChainID(ctx context.Context, chainID int64) (*entities.Network, error) {
	var m models.Network
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// GetAllActive gets all active networks ordered by name ascending
func (r *networkRepo) GetAllActive(ctx context.Context) ([]*entities.Network, error) {
	var ms []models.Network
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name asc").Find(&ms).Error; err != nil {
		return nil, err
	}

	networks := make([]*entities.Network, 0, len(ms))
	for i := range ms {
		n, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		networks = append(networks, n)
	}
	return networks, nil
}

// Create persists a new network
func (r *networkRepo) Create(ctx context.Context, network *entities.Network) error {
	m, err := r.toModel(network)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

// Update persists the full state of a network, returning ErrNotFound when the
// target row no longer exists (delete-after-load race).
func (r *networkRepo) Update(ctx context.Context, network *entities.Network) (*entities.Network, error) {
	urls, err := encodeURLs(network.OtherRPCURLs)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"chain_id":               network.ChainID,
		"name":                   network.Name,
		"rpc_url":                network.RPCURL,
		"other_rpc_urls":         urls,
		"test_net":               network.TestNet,
		"block_explorer_url":     network.BlockExplorerURL,
		"fee_multiplier":         network.FeeMultiplier,
		"gas_limit_multiplier":   network.GasLimitMultiplier,
		"active":                 network.Active,
		"default_signer_address": network.DefaultSignerAddress,
		"updated_at":             network.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Model(&models.Network{}).Where("id = ?", network.ID).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, domainerrors.ErrConflict
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return network, nil
}

// SoftDelete marks a network inactive and reports whether a row changed
func (r *networkRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Network{}).Where("id = ?", id).Updates(map[string]interface{}{
		"active":     false,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsByChainID checks chain id usage, optionally excluding one network
func (r *networkRepo) ExistsByChainID(ctx context.Context, chainID int64, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Network{}).Where("chain_id = ?", chainID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// toEntity converts GORM model to domain entity
func (r *networkRepo) toEntity(m *models.Network) (*entities.Network, error) {
	urls, err := decodeURLs(m.OtherRPCURLs)
	if err != nil {
		return nil, err
	}

	return &entities.Network{
		ID:                   m.ID,
		ChainID:              m.ChainID,
		Name:                 m.Name,
		RPCURL:               m.RPCURL,
		OtherRPCURLs:         urls,
		TestNet:              m.TestNet,
		BlockExplorerURL:     m.BlockExplorerURL,
		FeeMultiplier:        m.FeeMultiplier,
		GasLimitMultiplier:   m.GasLimitMultiplier,
		Active:               m.Active,
		DefaultSignerAddress: m.DefaultSignerAddress,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}

// toModel converts domain entity to GORM model
func (r *networkRepo) toModel(n *entities.Network) (*models.Network, error) {
	urls, err := encodeURLs(n.OtherRPCURLs)
	if err != nil {
		return nil, err
	}

	return &models.Network{
		ID:                   n.ID,
		ChainID:              n.ChainID,
		Name:                 n.Name,
		RPCURL:               n.RPCURL,
		OtherRPCURLs:         urls,
		TestNet:              n.TestNet,
		BlockExplorerURL:     n.BlockExplorerURL,
		FeeMultiplier:        n.FeeMultiplier,
		GasLimitMultiplier:   n.GasLimitMultiplier,
		Active:               n.Active,
		DefaultSignerAddress: n.DefaultSignerAddress,
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}, nil
}

func encodeURLs(urls []string) (string, error) {
	if len(urls) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return "", fmt.Errorf("encode other rpc urls: %w", err)
	}
	return string(raw), nil
}

func decodeURLs(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil, fmt.Errorf("decode other rpc urls: %w", err)
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// isUniqueViolation detects chain_id unique index violations across gorm's
// translated error, the postgres driver and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
