package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"network-registry.backend/internal/domain/entities"
)

type mockNetworkRepo struct {
	mock.Mock
}

func (m *mockNetworkRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Network, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Network), args.Error(1)
}

func (m *mockNetworkRepo) GetByChainID(ctx context.Context, chainID int64) (*entities.Network, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Network), args.Error(1)
}

func (m *mockNetworkRepo) GetAllActive(ctx context.Context) ([]*entities.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Network), args.Error(1)
}

func (m *mockNetworkRepo) Create(ctx context.Context, network *entities.Network) error {
	args := m.Called(ctx, network)
	return args.Error(0)
}

func (m *mockNetworkRepo) Update(ctx context.Context, network *entities.Network) (*entities.Network, error) {
	args := m.Called(ctx, network)
	if fn, ok := args.Get(0).(func(context.Context, *entities.Network) (*entities.Network, error)); ok {
		return fn(ctx, network)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Network), args.Error(1)
}

func (m *mockNetworkRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockNetworkRepo) ExistsByChainID(ctx context.Context, chainID int64, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, chainID, excludeID)
	return args.Bool(0), args.Error(1)
}
