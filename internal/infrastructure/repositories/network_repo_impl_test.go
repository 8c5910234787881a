package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"network-registry.backend/internal/domain/entities"
	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/internal/infrastructure/repositories"
)

func TestCreateAndGetByID(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	require.NoError(t, repo.Create(ctx, network))

	got, err := repo.GetByID(ctx, network.ID)
	require.NoError(t, err)

	assert.Equal(t, network.ID, got.ID)
	assert.Equal(t, network.ChainID, got.ChainID)
	assert.Equal(t, network.Name, got.Name)
	assert.Equal(t, network.RPCURL, got.RPCURL)
	assert.Equal(t, network.OtherRPCURLs, got.OtherRPCURLs)
	assert.Equal(t, network.BlockExplorerURL, got.BlockExplorerURL)
	assert.True(t, got.FeeMultiplier.Equal(network.FeeMultiplier))
	assert.True(t, got.GasLimitMultiplier.Equal(network.GasLimitMultiplier))
	assert.True(t, got.Active)
	assert.Equal(t, network.DefaultSignerAddress, got.DefaultSignerAddress)
	assert.WithinDuration(t, network.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreate_DuplicateChainID(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testNetwork(t, 1, "Ethereum")))

	err := repo.Create(ctx, testNetwork(t, 1, "Copycat"))
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestGetByChainID(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 137, "Polygon")
	require.NoError(t, repo.Create(ctx, network))

	got, err := repo.GetByChainID(ctx, 137)
	require.NoError(t, err)
	assert.Equal(t, network.ID, got.ID)

	_, err = repo.GetByChainID(ctx, 999)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetByChainID_IncludesInactive(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 137, "Polygon")
	require.NoError(t, repo.Create(ctx, network))

	deleted, err := repo.SoftDelete(ctx, network.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := repo.GetByChainID(ctx, 137)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestGetAllActive_OrdersByName(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testNetwork(t, 137, "Polygon")))
	require.NoError(t, repo.Create(ctx, testNetwork(t, 1, "Ethereum")))
	require.NoError(t, repo.Create(ctx, testNetwork(t, 42161, "Arbitrum")))

	networks, err := repo.GetAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, networks, 3)

	assert.Equal(t, "Arbitrum", networks[0].Name)
	assert.Equal(t, "Ethereum", networks[1].Name)
	assert.Equal(t, "Polygon", networks[2].Name)
}

func TestGetAllActive_ExcludesInactive(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	active := testNetwork(t, 1, "Ethereum")
	inactive := testNetwork(t, 137, "Polygon")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	deleted, err := repo.SoftDelete(ctx, inactive.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	networks, err := repo.GetAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, active.ID, networks[0].ID)
}

func TestGetAllActive_EmptyRegistry(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))

	networks, err := repo.GetAllActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, networks)
}

func TestUpdate(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	require.NoError(t, repo.Create(ctx, network))

	merged := network.WithUpdates(entities.UpdateNetworkData{Name: null.StringFrom("Renamed")})
	updated, err := repo.Update(ctx, &merged)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	got, err := repo.GetByID(ctx, network.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestUpdate_MissingRow(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))

	network := testNetwork(t, 1, "Ethereum")
	_, err := repo.Update(context.Background(), network)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdate_ChainIDCollision(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	first := testNetwork(t, 1, "Ethereum")
	second := testNetwork(t, 137, "Polygon")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.ChainID = 1
	_, err := repo.Update(ctx, second)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestSoftDelete(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	require.NoError(t, repo.Create(ctx, network))

	deleted, err := repo.SoftDelete(ctx, network.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(ctx, network.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestSoftDelete_UnknownID(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))

	deleted, err := repo.SoftDelete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestExistsByChainID(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	require.NoError(t, repo.Create(ctx, network))

	exists, err := repo.ExistsByChainID(ctx, 1, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByChainID(ctx, 2, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	// The owning network is excluded so a self-update does not collide.
	exists, err = repo.ExistsByChainID(ctx, 1, &network.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	other := uuid.New()
	exists, err = repo.ExistsByChainID(ctx, 1, &other)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsByChainID_SeesInactive(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	require.NoError(t, repo.Create(ctx, network))

	deleted, err := repo.SoftDelete(ctx, network.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	exists, err := repo.ExistsByChainID(ctx, 1, nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRoundTrip_EmptyOtherRPCURLs(t *testing.T) {
	repo := repositories.NewNetworkRepository(newTestDB(t))
	ctx := context.Background()

	network := testNetwork(t, 1, "Ethereum")
	network.OtherRPCURLs = nil
	require.NoError(t, repo.Create(ctx, network))

	got, err := repo.GetByID(ctx, network.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.OtherRPCURLs)
	assert.Empty(t, got.OtherRPCURLs)
}
