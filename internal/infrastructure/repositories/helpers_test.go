package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"network-registry.backend/internal/domain/entities"
	"network-registry.backend/internal/infrastructure/models"
)

// newTestDB opens an isolated in-memory sqlite database with the networks
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Network{}))
	return db
}

func testNetwork(t *testing.T, chainID int64, name string) *entities.Network {
	t.Helper()

	network, err := entities.NewNetwork(entities.CreateNetworkData{
		ChainID:              chainID,
		Name:                 name,
		RPCURL:               "https://rpc.example.com",
		OtherRPCURLs:         []string{"https://backup.example.com"},
		BlockExplorerURL:     "https://explorer.example.com",
		FeeMultiplier:        decimal.NewFromFloat(1.1),
		GasLimitMultiplier:   decimal.NewFromFloat(1.5),
		DefaultSignerAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f1dEaD",
	})
	require.NoError(t, err)
	return network
}
