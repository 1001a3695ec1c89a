package handlers

import (
	"net/http"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/cleanup"
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	db             *gorm.DB
	cleanupService *cleanup.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, cleanupService *cleanup.Service) *AdminHandler {
	return &AdminHandler{db: db, cleanupService: cleanupService}
}

// GetStats returns entity counts
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	var propertyCount, creditCount, transactionCount, documentCount int64
	h.db.Model(&models.Property{}).Count(&propertyCount)
	h.db.Model(&models.Credit{}).Count(&creditCount)
	h.db.Model(&models.Transaction{}).Count(&transactionCount)
	h.db.Model(&models.Document{}).Count(&documentCount)

	stats["properties"] = propertyCount
	stats["credits"] = creditCount
	stats["transactions"] = transactionCount
	stats["documents"] = documentCount

	c.JSON(http.StatusOK, stats)
}

// RunCleanup executes an orphaned-file sweep
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	var req struct {
		MinAgeHours      int  `json:"min_age_hours"`
		MaxDeletionCount int  `json:"max_deletion_count"`
		DryRun           bool `json:"dry_run"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := cleanup.DefaultSweepConfig()
	if req.MinAgeHours > 0 {
		config.MinAge = time.Duration(req.MinAgeHours) * time.Hour
	}
	if req.MaxDeletionCount > 0 {
		config.MaxDeletionCount = req.MaxDeletionCount
	}
	config.DryRun = req.DryRun

	result, err := h.cleanupService.Sweep(config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
