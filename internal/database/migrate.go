package database

import (
	"pmp/internal/models"
	"pmp/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.PropertyAssignment{},
		&models.Property{},
		&models.Room{},
		&models.Resident{},
		&models.Contract{},
		&models.ContractStep{},
		&models.Repair{},
		&models.ResidentRequest{},
		&models.Notification{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
