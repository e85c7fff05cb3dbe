package configs

import (
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Dialector builds the gorm dialector for the configured driver.
func Dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case DriverMySQL, "":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			env.DBHost,
			env.DBUser,
			env.DBPassword,
			env.DBName,
			env.DBPort,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {

	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to %s database %s@%s:%s (Attempt %d/%d)", env.DBDriver, env.DBName, env.DBHost, env.DBPort, i+1, maxRetries)
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}

			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
