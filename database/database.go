package database

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/models"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, migrates it and seeds the admin
// user. Any failure is fatal.
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", "driver", cfg.DBDriver, "error", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		logger.L().Fatal("failed to get database instance", "error", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		logger.L().Fatal("migration failed", "error", err)
	}
	if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, cfg.SaltRound); err != nil {
		logger.L().Fatal("failed to seed admin user", "error", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// Open picks the gorm dialector for DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.LogMode == "development" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	switch strings.ToLower(cfg.DBDriver) {
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBName), gormCfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	logger.L().Info("running migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginAttempt{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
	)
	if err != nil {
		return err
	}

	logger.L().Info("migrations completed")
	return nil
}

// SeedAdmin makes sure an ADMIN user with the given email exists. Blank
// credentials skip seeding. An existing user is promoted, its password is
// left alone.
func SeedAdmin(db *gorm.DB, email, password string, cost int) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err == nil {
		if user.Role != models.RoleAdmin {
			return db.Model(&user).Update("role", models.RoleAdmin).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Role:     models.RoleAdmin,
		Password: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.L().Info("admin user seeded", "email", email)
	return nil
}
