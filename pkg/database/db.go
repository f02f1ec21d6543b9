package database

import (
	"fmt"
	"time"

	"github.com/arnavshah/duty-roster-go/pkg/config"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalDays    int    `gorm:"default:0" json:"total_days"`
	TotalStaff   int    `gorm:"default:0" json:"total_staff"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavedConfig is a named roster configuration owned by an API key
type SavedConfig struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	KeyID     uint                `gorm:"index;not null" json:"key_id"`
	Name      string              `gorm:"not null" json:"name"`
	Config    models.RosterConfig `gorm:"serializer:json" json:"config"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// RosterRun records the outcome of one generation
type RosterRun struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	KeyID         uint      `gorm:"index;not null" json:"key_id"`
	ConfigID      *uint     `gorm:"index" json:"config_id,omitempty"`
	StartDate     string    `gorm:"not null" json:"start_date"`
	EndDate       string    `gorm:"not null" json:"end_date"`
	Seed          int64     `json:"seed"`
	Days          int       `json:"days"`
	Vacancies     int       `json:"vacancies"`
	Warnings      int       `json:"warnings"`
	FairnessScore float64   `json:"fairness_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitDB opens Postgres when DATABASE_URL is set, SQLite at DATA_PATH otherwise,
// and migrates the schema.
func InitDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if cfg.DatabaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
		gcfg.PrepareStmt = false
	} else {
		dbPath := cfg.DataPath
		if dbPath == "" {
			dbPath = "roster.db"
		}
		dialector = sqlite.Open(dbPath)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &SavedConfig{}, &RosterRun{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
