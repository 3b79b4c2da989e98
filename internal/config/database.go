package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rutas_tracker/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables,
// migrates the schema and seeds the bootstrap accounts.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "postgres")
	password := GetEnv("DB_PASSWORD", "password")
	dbname := GetEnv("DB_NAME", "sistema_rutas")
	sslmode := GetEnv("DB_SSLMODE", "disable")
	timezone := GetEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Ruta{}, &models.Reporte{}, &models.ActivityLog{})
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	if err := seedUsers(db); err != nil {
		log.Fatalf("seeding bootstrap users failed: %v", err)
	}

	// Assign to global
	DB = db
}

// seedUsers creates the bootstrap admin and supervisor accounts on first
// initialization. The well-known credentials must be rotated before any
// real deployment.
func seedUsers(db *gorm.DB) error {
	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin = models.User{
		Username:     "admin",
		Email:        "admin@sistema-rutas.com",
		PasswordHash: string(adminHash),
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		// Another instance may have seeded concurrently.
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}

	supHash, err := bcrypt.GenerateFromPassword([]byte("supervisor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	supervisor := models.User{
		Username:     "supervisor",
		Email:        "supervisor@sistema-rutas.com",
		PasswordHash: string(supHash),
		Role:         models.RoleSupervisor,
		CreatedByID:  &admin.ID,
	}
	if err := db.Create(&supervisor).Error; err != nil {
		return err
	}

	logrus.Warn("bootstrap users created (admin/admin123, supervisor/supervisor123) – rotate before production")
	return nil
}

// GetEnv reads an environment variable or returns the provided default
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
