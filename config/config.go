package config

import (
	"fmt"
	"os"

	"github.com/Minhaj225/NutriGoal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// AdminEmail and AdminPasswordHash are the server-side admin credentials,
// bootstrapped from the environment at startup. Meal mutations require a
// token minted against these, never a client-side flag.
var (
	AdminEmail        string
	AdminPasswordHash string
)

func InitDB() {
	if err := godotenv.Load(); err != nil {
		Log.Warnw("no .env file found, relying on process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		// History rows hold a weak reference to meals: a dangling meal id
		// must stay readable, so no FK constraint is created.
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		Log.Fatalw("failed to connect to database", "error", err)
	}

	err = DB.AutoMigrate(
		&models.Meal{},
		&models.Student{},
		&models.MealHistoryEntry{},
	)
	if err != nil {
		Log.Fatalw("AutoMigrate failed", "error", err)
	}
}

// InitAdminAuth hashes the configured admin password once at startup so
// the plaintext never sticks around past boot.
func InitAdminAuth() {
	AdminEmail = os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if AdminEmail == "" || password == "" {
		Log.Warnw("ADMIN_EMAIL/ADMIN_PASSWORD not set, admin login disabled")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		Log.Fatalw("failed to hash admin password", "error", err)
	}
	AdminPasswordHash = string(hash)
	os.Unsetenv("ADMIN_PASSWORD")
}
