package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Network is the GORM model backing the networks table. The unique index on
// chain_id is the source of truth for chain id uniqueness; the use-case
// pre-check only produces a friendlier error. OtherRPCURLs is stored as a
// JSON-encoded text column so the schema works on both postgres and the
// sqlite driver used in tests.
type Network struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ChainID              int64           `gorm:"column:chain_id;uniqueIndex;not null"`
	Name                 string          `gorm:"column:name;size:100;not null"`
	RPCURL               string          `gorm:"column:rpc_url;size:500;not null"`
	OtherRPCURLs         string          `gorm:"column:other_rpc_urls;type:text"`
	TestNet              bool            `gorm:"column:test_net;not null"`
	BlockExplorerURL     string          `gorm:"column:block_explorer_url;size:500;not null"`
	FeeMultiplier        decimal.Decimal `gorm:"column:fee_multiplier;type:decimal(12,6);not null"`
	GasLimitMultiplier   decimal.Decimal `gorm:"column:gas_limit_multiplier;type:decimal(12,6);not null"`
	Active               bool            `gorm:"column:active;not null;default:true"`
	DefaultSignerAddress string          `gorm:"column:default_signer_address;size:42;not null"`
	CreatedAt            time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;not null"`
}

// TableName overrides the table name
func (Network) TableName() string {
	return "networks"
}
