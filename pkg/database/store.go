package database

import (
	"time"

	"github.com/arnavshah/duty-roster-go/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// usageHistoryDays bounds the usage rows returned per key
const usageHistoryDays = 30

// KeyFor fetches the record for key, creating it on first use
func KeyFor(db *gorm.DB, key, name string, rateLimit int) (*APIKey, error) {
	var apiKey APIKey
	err := db.Where(APIKey{Key: key}).FirstOrCreate(&apiKey, APIKey{
		Key:        key,
		Name:       name,
		KeyPreview: Preview(key),
		RateLimit:  rateLimit,
	}).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	apiKey.LastUsed = &now
	if err := db.Model(&apiKey).Update("last_used", now).Error; err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// Preview masks a key for display (e.g., rot...9f3a)
func Preview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}

// RecordUsage adds one request to today's usage row for keyID using an upsert
func RecordUsage(db *gorm.DB, keyID uint, days, staff int) error {
	today := time.Now().Format(models.DateLayout)

	// OnConflict is supported by both Postgres and SQLite
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_days":    gorm.Expr("total_days + ?", days),
			"total_staff":   gorm.Expr("total_staff + ?", staff),
		}),
	}).Create(&APIUsage{
		KeyID:        keyID,
		Date:         today,
		RequestCount: 1,
		TotalDays:    days,
		TotalStaff:   staff,
	}).Error
}

// RequestsToday counts the roster requests keyID has made today
func RequestsToday(db *gorm.DB, keyID uint) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, time.Now().Format(models.DateLayout)).
		Limit(1).Find(&usage).Error
	return usage.RequestCount, err
}

// UsageHistory returns the most recent usage rows for keyID, newest first
func UsageHistory(db *gorm.DB, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(usageHistoryDays).Find(&usage).Error
	return usage, err
}

// SaveRun stores the summary of a generated roster
func SaveRun(db *gorm.DB, keyID uint, configID *uint, r *models.Roster) (*RosterRun, error) {
	run := &RosterRun{
		ID:            r.ID,
		KeyID:         keyID,
		ConfigID:      configID,
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.String(),
		Seed:          r.Seed,
		Days:          len(r.Days),
		Vacancies:     len(r.Vacancies),
		Warnings:      len(r.Warnings),
		FairnessScore: r.FairnessScore,
	}
	if err := db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns up to limit runs for keyID, newest first
func ListRuns(db *gorm.DB, keyID uint, limit int) ([]RosterRun, error) {
	var runs []RosterRun
	err := db.Where("key_id = ?", keyID).Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// FindConfig loads a saved configuration owned by keyID
func FindConfig(db *gorm.DB, keyID uint, id string) (*SavedConfig, error) {
	var sc SavedConfig
	if err := db.Where("id = ? AND key_id = ?", id, keyID).First(&sc).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}
