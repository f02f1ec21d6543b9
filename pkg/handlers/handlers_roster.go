package handlers

import (
	"net/http"
	"strings"

	"github.com/arnavshah/duty-roster-go/pkg/csvio"
	"github.com/arnavshah/duty-roster-go/pkg/database"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/arnavshah/duty-roster-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

// GenerateRoster handles an inline RosterRequest and returns the roster as JSON
func (h *Handler) GenerateRoster(c *gin.Context) {
	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, ok := h.generate(c, req, nil)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

// GenerateRosterCSV handles an inline RosterRequest and returns the roster as CSV text
func (h *Handler) GenerateRosterCSV(c *gin.Context) {
	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, ok := h.generate(c, req, nil)
	if !ok {
		return
	}

	var outCSV strings.Builder
	if err := csvio.WriteRoster(&outCSV, out); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": out.ID, "csv": outCSV.String()})
}

// generate runs the generator for the calling key and records usage and run
// history. It writes the error response itself and reports whether to continue.
func (h *Handler) generate(c *gin.Context, req models.RosterRequest, configID *uint) (*models.Roster, bool) {
	out, err := h.Generator.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return nil, false
	}

	if apiKey := currentKey(c); apiKey != nil {
		if err := database.RecordUsage(h.DB, apiKey.ID, len(out.Days), roster.AssignedStaff(out)); err != nil {
			_ = c.Error(err)
		}
		if _, err := database.SaveRun(h.DB, apiKey.ID, configID, out); err != nil {
			_ = c.Error(err)
		}
	}
	return out, true
}
