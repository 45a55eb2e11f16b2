package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zeddream-backend/internal/auth"
	"zeddream-backend/internal/services"
)

// TryOnHandler exposes the virtual try-on feature
type TryOnHandler struct {
	tryOnService *services.TryOnService
}

// NewTryOnHandler creates a new TryOnHandler
func NewTryOnHandler(tryOnService *services.TryOnService) *TryOnHandler {
	return &TryOnHandler{
		tryOnService: tryOnService,
	}
}

// Generate runs the try-on model and debits points on success.
// POST /api/try-on/generate
func (h *TryOnHandler) Generate(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req struct {
		UserImage  string `json:"userImage"`
		ClothImage string `json:"clothImage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	generated, err := h.tryOnService.Generate(c.Request.Context(), userID, req.UserImage, req.ClothImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"generatedImage": generated,
		"pointsCharged":  services.TryOnCostPoints,
	})
}

// SaveLook stores a generated look in the user's gallery.
// POST /api/try-on/save
func (h *TryOnHandler) SaveLook(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req struct {
		GeneratedImage string `json:"generatedImage" binding:"required"`
		OriginalImage  string `json:"originalImage"`
		ProductImage   string `json:"productImage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "generated image URL is required"})
		return
	}

	look, err := h.tryOnService.SaveLook(userID, req.GeneratedImage, req.OriginalImage, req.ProductImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save look"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    look,
	})
}

// DeleteLook removes a saved look from the user's gallery.
// DELETE /api/try-on/:id
func (h *TryOnHandler) DeleteLook(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	lookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid look id"})
		return
	}

	if err := h.tryOnService.DeleteLook(userID, uint(lookID)); err != nil {
		switch {
		case errors.Is(err, services.ErrLookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Saved look not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete look"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}

// ListSaved returns the user's saved looks, newest first.
// GET /api/try-on/saved
func (h *TryOnHandler) ListSaved(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	looks, err := h.tryOnService.ListSaved(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get saved looks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(looks),
		"data":    looks,
	})
}
