package client

import (
	"fmt"
	"strings"
	"time"

	"fundchamps/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDBClient opens the database named by databaseURL. A mysql DSN
// (user:pass@tcp(host)/db) selects the mysql driver, anything else is treated
// as a sqlite path so local development needs no server.
func InitDBClient(databaseURL string) (*gorm.DB, error) {
	dialector := sqlite.Open(databaseURL)
	if strings.Contains(databaseURL, "@tcp(") {
		dialector = mysql.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Sponsor{},
		&model.CampaignGoal{},
		&model.Transaction{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}
