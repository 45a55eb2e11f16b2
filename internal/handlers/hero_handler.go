package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zeddream-backend/internal/models"
	"zeddream-backend/internal/services"
)

// HeroHandler manages home-screen banner slides
type HeroHandler struct {
	heroService *services.HeroService
}

// NewHeroHandler creates a new HeroHandler
func NewHeroHandler(heroService *services.HeroService) *HeroHandler {
	return &HeroHandler{
		heroService: heroService,
	}
}

// List returns all active hero slides.
// GET /api/heroes
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.heroService.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get heroes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(heroes),
		"data":    heroes,
	})
}

// Create adds a hero slide.
// POST /api/heroes
func (h *HeroHandler) Create(c *gin.Context) {
	var hero models.Hero
	if err := c.ShouldBindJSON(&hero); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.heroService.Create(c.Request.Context(), &hero); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create hero"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    hero,
	})
}

// Update modifies a hero slide.
// PUT /api/heroes/:id
func (h *HeroHandler) Update(c *gin.Context) {
	heroID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid hero id"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	delete(updates, "id")

	hero, err := h.heroService.Update(c.Request.Context(), uint(heroID), updates)
	if err != nil {
		if errors.Is(err, services.ErrHeroNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Hero slide not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update hero"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    hero,
	})
}

// Delete removes a hero slide.
// DELETE /api/heroes/:id
func (h *HeroHandler) Delete(c *gin.Context) {
	heroID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid hero id"})
		return
	}

	if err := h.heroService.Delete(c.Request.Context(), uint(heroID)); err != nil {
		if errors.Is(err, services.ErrHeroNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Hero slide not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete hero"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
