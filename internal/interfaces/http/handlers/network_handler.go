package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"network-registry.backend/internal/domain/entities"
	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/internal/interfaces/http/response"
	"network-registry.backend/internal/usecases"
)

// NetworkHandler handles network registry endpoints
type NetworkHandler struct {
	networkUsecase *usecases.NetworkUsecase
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(networkUsecase *usecases.NetworkUsecase) *NetworkHandler {
	return &NetworkHandler{networkUsecase: networkUsecase}
}

// networkPayload is the body shape for POST and PUT. Every field except
// otherRpcUrls must be present; testNet and the multipliers are pointers so
// an explicit zero value still satisfies the required check. PUT intentionally
// has no active field; the stored flag is preserved on full updates.
type networkPayload struct {
	ChainID              int64            `json:"chainId" binding:"required"`
	Name                 string           `json:"name" binding:"required"`
	RPCURL               string           `json:"rpcUrl" binding:"required"`
	OtherRPCURLs         []string         `json:"otherRpcUrls"`
	TestNet              *bool            `json:"testNet" binding:"required"`
	BlockExplorerURL     string           `json:"blockExplorerUrl" binding:"required"`
	FeeMultiplier        *decimal.Decimal `json:"feeMultiplier" binding:"required"`
	GasLimitMultiplier   *decimal.Decimal `json:"gasLimitMultiplier" binding:"required"`
	DefaultSignerAddress string           `json:"defaultSignerAddress" binding:"required"`
}

// patchNetworkPayload is the body shape for PATCH. Every field is optional;
// absent fields keep their current value. PATCH may also toggle active.
type patchNetworkPayload struct {
	ChainID              null.Int64       `json:"chainId"`
	Name                 null.String      `json:"name"`
	RPCURL               null.String      `json:"rpcUrl"`
	OtherRPCURLs         []string         `json:"otherRpcUrls"`
	TestNet              null.Bool        `json:"testNet"`
	BlockExplorerURL     null.String      `json:"blockExplorerUrl"`
	FeeMultiplier        *decimal.Decimal `json:"feeMultiplier"`
	GasLimitMultiplier   *decimal.Decimal `json:"gasLimitMultiplier"`
	DefaultSignerAddress null.String      `json:"defaultSignerAddress"`
	Active               null.Bool        `json:"active"`
}

type networkResponse struct {
	ID                   string    `json:"id"`
	ChainID              int64     `json:"chainId"`
	Name                 string    `json:"name"`
	RPCURL               string    `json:"rpcUrl"`
	OtherRPCURLs         []string  `json:"otherRpcUrls"`
	TestNet              bool      `json:"testNet"`
	BlockExplorerURL     string    `json:"blockExplorerUrl"`
	FeeMultiplier        string    `json:"feeMultiplier"`
	GasLimitMultiplier   string    `json:"gasLimitMultiplier"`
	Active               bool      `json:"active"`
	DefaultSignerAddress string    `json:"defaultSignerAddress"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func toNetworkResponse(n *entities.Network) networkResponse {
	urls := n.OtherRPCURLs
	if urls == nil {
		urls = []string{}
	}
	return networkResponse{
		ID:                   n.ID.String(),
		ChainID:              n.ChainID,
		Name:                 n.Name,
		RPCURL:               n.RPCURL,
		OtherRPCURLs:         urls,
		TestNet:              n.TestNet,
		BlockExplorerURL:     n.BlockExplorerURL,
		FeeMultiplier:        n.FeeMultiplier.String(),
		GasLimitMultiplier:   n.GasLimitMultiplier.String(),
		Active:               n.Active,
		DefaultSignerAddress: n.DefaultSignerAddress,
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}
}

// CreateNetwork creates a new network
// POST /api/v1/networks
func (h *NetworkHandler) CreateNetwork(c *gin.Context) {
	var payload networkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	network, err := h.networkUsecase.Create(c.Request.Context(), entities.CreateNetworkData{
		ChainID:              payload.ChainID,
		Name:                 payload.Name,
		RPCURL:               payload.RPCURL,
		OtherRPCURLs:         payload.OtherRPCURLs,
		TestNet:              *payload.TestNet,
		BlockExplorerURL:     payload.BlockExplorerURL,
		FeeMultiplier:        *payload.FeeMultiplier,
		GasLimitMultiplier:   *payload.GasLimitMultiplier,
		DefaultSignerAddress: payload.DefaultSignerAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toNetworkResponse(network))
}

// ListNetworks lists active networks sorted by name
// GET /api/v1/networks
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	networks, err := h.networkUsecase.GetActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]networkResponse, 0, len(networks))
	for _, n := range networks {
		result = append(result, toNetworkResponse(n))
	}
	response.Success(c, http.StatusOK, result)
}

// GetNetwork gets a network by id
// GET /api/v1/networks/:id
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	id, ok := parseNetworkID(c)
	if !ok {
		return
	}

	network, err := h.networkUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, toNetworkResponse(network))
}

// UpdateNetwork fully updates a network
// PUT /api/v1/networks/:id
func (h *NetworkHandler) UpdateNetwork(c *gin.Context) {
	id, ok := parseNetworkID(c)
	if !ok {
		return
	}

	var payload networkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	urls := payload.OtherRPCURLs
	if urls == nil {
		urls = []string{}
	}

	network, err := h.networkUsecase.Update(c.Request.Context(), id, entities.UpdateNetworkData{
		ChainID:              null.Int64From(payload.ChainID),
		Name:                 null.StringFrom(payload.Name),
		RPCURL:               null.StringFrom(payload.RPCURL),
		OtherRPCURLs:         urls,
		TestNet:              null.BoolFromPtr(payload.TestNet),
		BlockExplorerURL:     null.StringFrom(payload.BlockExplorerURL),
		FeeMultiplier:        payload.FeeMultiplier,
		GasLimitMultiplier:   payload.GasLimitMultiplier,
		DefaultSignerAddress: null.StringFrom(payload.DefaultSignerAddress),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, toNetworkResponse(network))
}

// PatchNetwork partially updates a network, including the active flag
// PATCH /api/v1/networks/:id
func (h *NetworkHandler) PatchNetwork(c *gin.Context) {
	id, ok := parseNetworkID(c)
	if !ok {
		return
	}

	var payload patchNetworkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	network, err := h.networkUsecase.PartialUpdate(c.Request.Context(), id, entities.UpdateNetworkData{
		ChainID:              payload.ChainID,
		Name:                 payload.Name,
		RPCURL:               payload.RPCURL,
		OtherRPCURLs:         payload.OtherRPCURLs,
		TestNet:              payload.TestNet,
		BlockExplorerURL:     payload.BlockExplorerURL,
		FeeMultiplier:        payload.FeeMultiplier,
		GasLimitMultiplier:   payload.GasLimitMultiplier,
		DefaultSignerAddress: payload.DefaultSignerAddress,
		Active:               payload.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, toNetworkResponse(network))
}

// DeleteNetwork soft-deletes a network
// DELETE /api/v1/networks/:id
func (h *NetworkHandler) DeleteNetwork(c *gin.Context) {
	id, ok := parseNetworkID(c)
	if !ok {
		return
	}

	if err := h.networkUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseNetworkID parses the :id path parameter, writing a 400 envelope on
// malformed input.
func parseNetworkID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid network id"))
		return uuid.Nil, false
	}
	return id, true
}
