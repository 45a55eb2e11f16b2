package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"zeddream-backend/internal/auth"
	"zeddream-backend/internal/services"
)

// LoyaltyHandler exposes the points engine over HTTP
type LoyaltyHandler struct {
	loyaltyService *services.LoyaltyService
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(loyaltyService *services.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
	}
}

// GetBalance returns the user's point balance and full ledger history.
// GET /api/loyalty/balance
func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	balance, history, err := h.loyaltyService.GetBalance(userID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
		"history": history,
	})
}

// GetRewards returns the active reward catalog.
// GET /api/loyalty/rewards
func (h *LoyaltyHandler) GetRewards(c *gin.Context) {
	rewards, err := h.loyaltyService.GetRewards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(rewards),
		"data":    rewards,
	})
}

// RedeemReward spends points on a reward.
// POST /api/loyalty/redeem
func (h *LoyaltyHandler) RedeemReward(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req struct {
		RewardID uint `json:"rewardId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	reward, newBalance, err := h.loyaltyService.RedeemReward(userID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Reward not found"})
		case errors.Is(err, services.ErrInsufficientPoints):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Insufficient points"})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Account not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to redeem reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("Successfully redeemed %s", reward.Title),
		"newBalance": newBalance,
	})
}

// ClaimProfileBonus awards the one-time profile completion bonus.
// POST /api/loyalty/profile-bonus
func (h *LoyaltyHandler) ClaimProfileBonus(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	newBalance, err := h.loyaltyService.ClaimProfileBonus(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyClaimed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Bonus already claimed"})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Account not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to claim bonus"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("Profile completed! You earned %d points.", services.ProfileBonusPoints),
		"newBalance": newBalance,
	})
}
