package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Challenge handles the challenge request
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenge, err := h.authService.CreateChallenge(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge": challenge.Text,
		"nonce":     challenge.Nonce,
	})
}

// Verify handles the signed-challenge verification request. All
// authentication failures surface identically.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		Message   string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	accessToken, err := h.authService.Login(c.Request.Context(), req.Address, req.Signature, req.Message)
	if err != nil {
		if errors.Is(err, core.ErrInvalidSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

// Whoami returns the authenticated user
func (h *AuthHandlers) Whoami(c *gin.Context) {
	user, exists := c.Get(contextUserKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user not found in context"})
		return
	}

	u := user.(*core.User)
	c.JSON(http.StatusOK, gin.H{
		"id":             u.ID,
		"wallet_address": u.WalletAddress,
		"created_at":     u.CreatedAt,
	})
}

// CoinHandlers contains HTTP handlers for coin endpoints
type CoinHandlers struct {
	coinService *service.CoinService
}

// NewCoinHandlers creates new coin handlers
func NewCoinHandlers(coinService *service.CoinService) *CoinHandlers {
	return &CoinHandlers{
		coinService: coinService,
	}
}

// Create handles coin listing creation
func (h *CoinHandlers) Create(c *gin.Context) {
	var req struct {
		Name         string          `json:"name" binding:"required"`
		Symbol       string          `json:"symbol" binding:"required"`
		Description  string          `json:"description"`
		ImageURL     string          `json:"image_url"`
		TotalSupply  decimal.Decimal `json:"total_supply" binding:"required"`
		InitialPrice decimal.Decimal `json:"initial_price"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, exists := c.Get(contextUserKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user not found in context"})
		return
	}

	coin, err := h.coinService.Create(c.Request.Context(), user.(*core.User).WalletAddress, service.CoinParams{
		Name:         req.Name,
		Symbol:       req.Symbol,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TotalSupply:  req.TotalSupply,
		InitialPrice: req.InitialPrice,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidCoin) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coin parameters"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create coin"})
		return
	}

	c.JSON(http.StatusCreated, coin)
}

// List handles coin listing enumeration
func (h *CoinHandlers) List(c *gin.Context) {
	coins, err := h.coinService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// Get handles coin lookup by id
func (h *CoinHandlers) Get(c *gin.Context) {
	coin, err := h.coinService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrCoinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coin"})
		return
	}

	c.JSON(http.StatusOK, coin)
}
