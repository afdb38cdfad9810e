package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	KeyPreview string     `gorm:"not null" json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:1000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day.
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalEmployees int    `gorm:"default:0" json:"total_employees"`
	TotalRosters   int    `gorm:"default:0" json:"total_rosters"`
}

// MasterUser represents the master_users table.
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// RosterRun is an audit record of one Orchestrator.Generate call, keyed
// by the run ID the Orchestrator hands back in RosterResponse.RunID.
type RosterRun struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	RunID                 string    `gorm:"unique;not null" json:"run_id"`
	KeyID                 uint      `gorm:"index" json:"key_id"`
	StoreID               string    `json:"store_id"`
	Status                string    `json:"status"`
	EmployeeCount         int       `json:"employee_count"`
	InitialConflictCount  int       `json:"initial_conflict_count"`
	FinalConflictCount    int       `json:"final_conflict_count"`
	ResolutionsApplied    int       `json:"resolutions_applied"`
	GenerationTimeSeconds float64   `json:"generation_time_seconds"`
	CreatedAt             time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "roster_engine.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &RosterRun{})

	return db
}
