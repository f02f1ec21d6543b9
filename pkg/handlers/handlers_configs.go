package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/arnavshah/duty-roster-go/pkg/csvio"
	"github.com/arnavshah/duty-roster-go/pkg/database"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/arnavshah/duty-roster-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

type configRequest struct {
	Name   string              `json:"name" binding:"required"`
	Config models.RosterConfig `json:"config"`
}

type rangeRequest struct {
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
	Seed      *int64      `json:"seed,omitempty"`
}

// CreateConfig stores a named roster configuration for the calling key
func (h *Handler) CreateConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.saveConfig(c, req.Name, req.Config)
}

// ImportConfigCSV builds a configuration from uploaded staff and shift CSV files.
// Rules, overrides and leave can be added afterwards with UpdateConfig.
func (h *Handler) ImportConfigCSV(c *gin.Context) {
	staffFile, _ := c.FormFile("staff_file")
	shiftsFile, _ := c.FormFile("shifts_file")
	if staffFile == nil || shiftsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_file and shifts_file are required"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = staffFile.Filename
	}

	var cfg models.RosterConfig
	var err error
	if cfg.Staff, err = readUpload(staffFile, csvio.ReadStaff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_file: " + err.Error()})
		return
	}
	if cfg.Shifts, err = readUpload(shiftsFile, csvio.ReadShifts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shifts_file: " + err.Error()})
		return
	}

	h.saveConfig(c, name, cfg)
}

func readUpload[T any](fh *multipart.FileHeader, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func (h *Handler) saveConfig(c *gin.Context, name string, cfg models.RosterConfig) {
	apiKey := currentKey(c)
	if apiKey == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	warnings, err := roster.Validate(cfg, h.Config.LeaveShiftName)
	if err != nil {
		writeError(c, err)
		return
	}

	sc := database.SavedConfig{KeyID: apiKey.ID, Name: name, Config: cfg}
	if err := h.DB.Create(&sc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save configuration"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"config": sc, "warnings": warnings})
}

// ListConfigs returns the saved configurations of the calling key
func (h *Handler) ListConfigs(c *gin.Context) {
	apiKey := currentKey(c)
	if apiKey == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	var configs []database.SavedConfig
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("id").Find(&configs).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": configs})
}

// GetConfig returns one saved configuration
func (h *Handler) GetConfig(c *gin.Context) {
	sc, ok := h.findConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sc)
}

// UpdateConfig replaces the name and contents of a saved configuration
func (h *Handler) UpdateConfig(c *gin.Context) {
	sc, ok := h.findConfig(c)
	if !ok {
		return
	}

	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	warnings, err := roster.Validate(req.Config, h.Config.LeaveShiftName)
	if err != nil {
		writeError(c, err)
		return
	}

	sc.Name = req.Name
	sc.Config = req.Config
	if err := h.DB.Save(sc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": sc, "warnings": warnings})
}

// DeleteConfig removes a saved configuration. Run history is kept.
func (h *Handler) DeleteConfig(c *gin.Context) {
	sc, ok := h.findConfig(c)
	if !ok {
		return
	}
	if err := h.DB.Delete(sc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configuration deleted"})
}

// GenerateFromConfig generates a roster from a saved configuration
func (h *Handler) GenerateFromConfig(c *gin.Context) {
	sc, ok := h.findConfig(c)
	if !ok {
		return
	}

	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, ok := h.generate(c, models.RosterRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Seed:      req.Seed,
		Config:    sc.Config,
	}, &sc.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) findConfig(c *gin.Context) (*database.SavedConfig, bool) {
	apiKey := currentKey(c)
	if apiKey == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return nil, false
	}
	sc, err := database.FindConfig(h.DB, apiKey.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return sc, true
}
