package handlers

import (
	"net/http"

	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/arnavshah/duty-roster-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

// ValidateConfig checks a RosterConfig without generating a roster
func (h *Handler) ValidateConfig(c *gin.Context) {
	var cfg models.RosterConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(cfg.Staff) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one staff member is required"})
		return
	}
	if len(cfg.Shifts) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one shift is required"})
		return
	}

	warnings, err := roster.Validate(cfg, h.Config.LeaveShiftName)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"stats": gin.H{
			"staff_count": len(cfg.Staff),
			"shift_count": len(cfg.Shifts),
			"rule_count":  len(cfg.Rules),
			"leave_count": len(cfg.Leaves),
		},
	})
}
