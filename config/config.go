package config

import (
	"log"
	"os"

	"urbanease-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs and verifies auth tokens. LoadEnv refreshes it so a
// secret set only in .env still takes effect.
var JWTSecret = []byte(getEnv("JWT_SECRET", "urbanease_super_secret_2024"))

// MaxImageSize caps listing and profile photo uploads (bytes)
const MaxImageSize = 5 * 1024 * 1024

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads a .env file if present; real env always wins. JWTSecret
// is re-read here because the package-level default is evaluated before
// godotenv has populated the environment.
func LoadEnv() {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "urbanease_super_secret_2024"))
}

// ImagesDir is where uploaded listing/profile images are stored.
func ImagesDir() string {
	return getEnv("IMAGES_DIR", "static/images/database_images")
}

// InitDB connects to Postgres when DATABASE_URL is set, otherwise to a
// local SQLite file, and migrates the full schema.
func InitDB() {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(getEnv("SQLITE_PATH", "urbanease.db"))
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

// Migrate applies the schema; split out so tests can run it on their own
// in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProviderProfile{},
		&models.ProviderProfilePic{},
		&models.HouseListing{},
		&models.HouseImage{},
		&models.HostelDetails{},
		&models.PGDetails{},
		&models.ApartmentDetails{},
		&models.SavedHouse{},
		&models.TiffinListing{},
		&models.TiffinImage{},
		&models.Meal{},
		&models.Order{},
		&models.SavedKitchen{},
		&models.ServiceListing{},
		&models.ServiceBooking{},
		&models.SavedService{},
	)
}
