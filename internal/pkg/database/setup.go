package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// IsConfigured reports whether database credentials are present. Without
// them the service runs in store-less demo mode: validations still work,
// nothing is persisted and no quota is enforced.
func IsConfigured() bool {
	return env.GetEnv("DB_USER", "") != "" && env.GetEnv("DB_NAME", "") != ""
}

// SetupDatabase connects to MySQL and migrates the schema. Connection
// failure is logged, not fatal: the store is one of several independently
// optional collaborators.
func SetupDatabase() {
	if !IsConfigured() {
		log.Println("Database not configured (DB_USER/DB_NAME missing), running without persistence")
		return
	}

	var err error
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,   // data source name
			DefaultStringSize:         256,   // default size for string fields
			DisableDatetimePrecision:  true,  // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,  // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,  // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false, // auto configure based on currently MySQL version
		}), &gorm.Config{})
		if err == nil {
			DB.AutoMigrate(
				&models.User{},
				&models.Validation{},
				&models.SubscriptionEvent{},
			)
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	log.Printf("Database unreachable after %d attempts, running without persistence: %v", maxRetries, err)
	DB = nil
}

// GetDB returns the database handle, or nil in store-less mode.
func GetDB() *gorm.DB {
	return DB
}
