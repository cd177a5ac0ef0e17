package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.IsProduction() {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}

	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "mysql":
		dialector = mysql.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the question bank and report tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.QuestionRecord{}, &models.InterviewReport{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
