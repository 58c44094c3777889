package config

import (
	"fmt"
	"log"
	"os"

	"github.com/marti-georgiev/camprating/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection from DB_* environment variables and
// brings the schema up to date.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "camprating"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// Migrate runs schema migrations. Reviews once stored their creation time in
// a date_created column; it is renamed in place before AutoMigrate so the old
// data survives.
func Migrate(db *gorm.DB) error {
	if db.Migrator().HasColumn(&models.Review{}, "date_created") {
		if err := db.Migrator().RenameColumn(&models.Review{}, "date_created", "created_at"); err != nil {
			return err
		}
	}

	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.CampPlace{},
		&models.Review{},
	)
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
