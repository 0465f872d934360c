package database

import (
	"fmt"

	"academy/config"
	"academy/logger"
	"academy/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, runs migrations and publishes the handle globally
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		logger.Log.Fatalw("failed to connect to database", "driver", cfg.DBDriver, "error", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatalw("failed to get database instance", "error", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	if err := RunMigrations(db); err != nil {
		logger.Log.Fatalw("migration failed", "error", err)
	}

	Database = DbInstance{Db: db}
}

// Open connects with the named gorm driver
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// DSN builds the connection string for the configured driver. DB_DSN wins when set.
func DSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}

	switch cfg.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "sqlite":
		return cfg.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	logger.Log.Info("running migrations")

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	logger.Log.Info("migrations completed")
	return nil
}
