package entities

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	domainerrors "network-registry.backend/internal/domain/errors"
)

// Field limits for Network validation.
const (
	MaxNameLength    = 100
	MaxURLLength     = 500
	MaxOtherRPCURLs  = 10
	SignerAddressLen = 42
)

// Network is the registry aggregate describing one blockchain network.
type Network struct {
	ID                   uuid.UUID       `json:"id"`
	ChainID              int64           `json:"chainId"`
	Name                 string          `json:"name"`
	RPCURL               string          `json:"rpcUrl"`
	OtherRPCURLs         []string        `json:"otherRpcUrls"`
	TestNet              bool            `json:"testNet"`
	BlockExplorerURL     string          `json:"blockExplorerUrl"`
	FeeMultiplier        decimal.Decimal `json:"feeMultiplier"`
	GasLimitMultiplier   decimal.Decimal `json:"gasLimitMultiplier"`
	Active               bool            `json:"active"`
	DefaultSignerAddress string          `json:"defaultSignerAddress"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// CreateNetworkData holds the raw input for creating a network.
type CreateNetworkData struct {
	ChainID              int64
	Name                 string
	RPCURL               string
	OtherRPCURLs         []string
	TestNet              bool
	BlockExplorerURL     string
	FeeMultiplier        decimal.Decimal
	GasLimitMultiplier   decimal.Decimal
	DefaultSignerAddress string
}

// UpdateNetworkData holds a sparse set of field updates. Invalid (absent)
// null values and nil pointers leave the current value untouched. A non-nil
// empty OtherRPCURLs slice clears the list.
type UpdateNetworkData struct {
	ChainID              null.Int64
	Name                 null.String
	RPCURL               null.String
	OtherRPCURLs         []string
	TestNet              null.Bool
	BlockExplorerURL     null.String
	FeeMultiplier        *decimal.Decimal
	GasLimitMultiplier   *decimal.Decimal
	DefaultSignerAddress null.String
	Active               null.Bool
}

// NewNetwork validates data and builds a fresh active network with a new ID
// and matching creation/update timestamps.
func NewNetwork(data CreateNetworkData) (*Network, error) {
	now := time.Now().UTC()
	n := &Network{
		ID:                   uuid.New(),
		ChainID:              data.ChainID,
		Name:                 data.Name,
		RPCURL:               data.RPCURL,
		OtherRPCURLs:         data.OtherRPCURLs,
		TestNet:              data.TestNet,
		BlockExplorerURL:     data.BlockExplorerURL,
		FeeMultiplier:        data.FeeMultiplier,
		GasLimitMultiplier:   data.GasLimitMultiplier,
		Active:               true,
		DefaultSignerAddress: data.DefaultSignerAddress,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// WithUpdates overlays the provided fields onto a copy of the network.
// ID and CreatedAt are never overwritten; UpdatedAt is always refreshed,
// even when no business field changed.
func (n Network) WithUpdates(data UpdateNetworkData) Network {
	updated := n
	updated.OtherRPCURLs = append([]string(nil), n.OtherRPCURLs...)

	if data.ChainID.Valid {
		updated.ChainID = data.ChainID.Int64
	}
	if data.Name.Valid {
		updated.Name = data.Name.String
	}
	if data.RPCURL.Valid {
		updated.RPCURL = data.RPCURL.String
	}
	if data.OtherRPCURLs != nil {
		updated.OtherRPCURLs = append([]string(nil), data.OtherRPCURLs...)
	}
	if data.TestNet.Valid {
		updated.TestNet = data.TestNet.Bool
	}
	if data.BlockExplorerURL.Valid {
		updated.BlockExplorerURL = data.BlockExplorerURL.String
	}
	if data.FeeMultiplier != nil {
		updated.FeeMultiplier = *data.FeeMultiplier
	}
	if data.GasLimitMultiplier != nil {
		updated.GasLimitMultiplier = *data.GasLimitMultiplier
	}
	if data.DefaultSignerAddress.Valid {
		updated.DefaultSignerAddress = data.DefaultSignerAddress.String
	}
	if data.Active.Valid {
		updated.Active = data.Active.Bool
	}

	updated.UpdatedAt = time.Now().UTC()
	return updated
}

// Deactivate marks the network inactive (soft delete) and refreshes UpdatedAt.
func (n *Network) Deactivate() {
	n.Active = false
	n.UpdatedAt = time.Now().UTC()
}

// Validate checks every field invariant and returns the first violated rule.
func (n *Network) Validate() error {
	if n.ChainID < 1 {
		return domainerrors.Validation("chainId", "chainId must be at least 1")
	}
	if n.Name == "" || utf8.RuneCountInString(n.Name) > MaxNameLength {
		return domainerrors.Validation("name", fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength))
	}
	if err := validateURL("rpcUrl", n.RPCURL); err != nil {
		return err
	}
	if len(n.OtherRPCURLs) > MaxOtherRPCURLs {
		return domainerrors.Validation("otherRpcUrls", fmt.Sprintf("otherRpcUrls can have at most %d items", MaxOtherRPCURLs))
	}
	for _, u := range n.OtherRPCURLs {
		if err := validateURL("otherRpcUrls", u); err != nil {
			return err
		}
	}
	if err := validateURL("blockExplorerUrl", n.BlockExplorerURL); err != nil {
		return err
	}
	if n.FeeMultiplier.IsNegative() {
		return domainerrors.Validation("feeMultiplier", "feeMultiplier must be at least 0")
	}
	if n.GasLimitMultiplier.IsNegative() {
		return domainerrors.Validation("gasLimitMultiplier", "gasLimitMultiplier must be at least 0")
	}
	if err := validateSignerAddress(n.DefaultSignerAddress); err != nil {
		return err
	}
	return nil
}

// validateURL requires an absolute http/https URL with a non-empty host.
func validateURL(field, raw string) error {
	if len(raw) > MaxURLLength {
		return domainerrors.Validation(field, fmt.Sprintf("%s must be at most %d characters", field, MaxURLLength))
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return domainerrors.Validation(field, field+" must start with http:// or https://")
	}
	if parsed.Host == "" {
		return domainerrors.Validation(field, field+" must include a valid host")
	}
	return nil
}

func validateSignerAddress(addr string) error {
	if len(addr) != SignerAddressLen || !strings.HasPrefix(addr, "0x") || !common.IsHexAddress(addr) {
		return domainerrors.Validation("defaultSignerAddress", "defaultSignerAddress must be 0x followed by 40 hex characters")
	}
	return nil
}
