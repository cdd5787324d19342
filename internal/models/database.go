package models

import (
	"fmt"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Category{},
		&Form{},
		&Submission{},
		&DashboardConfig{},
		&AuditEvent{},
		&Payment{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default data if not exists
func SeedDefaultData() error {
	defaultCategories := []string{"GST", "Income Tax", "Audit", "Payroll", "Accounts"}

	for _, name := range defaultCategories {
		var count int64
		DB.Model(&Category{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := DB.Create(&Category{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
