package services

import (
	"testing"

	"pmp/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 内存sqlite测试库
// 限制为单连接，保证所有查询落在同一个内存库上
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))

	return db
}

// createProperty 插入测试物业
func createProperty(t *testing.T, db *gorm.DB, name string) *models.Property {
	t.Helper()
	property := &models.Property{Name: name, Address: "测试地址"}
	require.NoError(t, db.Create(property).Error)
	return property
}
