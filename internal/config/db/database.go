package db

import (
	"fmt"

	"github.com/propside/portal-go/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

var DB *gorm.DB

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		klog.Fatalf("Failed to connect to DB: %v", err)
	}

	klog.Info("Database connected")
}

// InitWithGormDB swaps in an externally constructed connection, used by tests.
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
