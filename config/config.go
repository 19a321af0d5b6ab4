package config

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"graph_bench"`
}

// LoadDBConfig reads DB_* variables, after loading a .env file if one exists.
func LoadDBConfig() (DBConfig, error) {
	_ = godotenv.Load()

	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("failed to read DB config: %w", err)
	}
	return cfg, nil
}

// DSN returns the libpq connection string for dbName.
func (c DBConfig) DSN(dbName string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, dbName,
	)
}

func DropAndRecreateDatabase(cfg DBConfig) error {
	adminDB, err := sql.Open("postgres", cfg.DSN("postgres"))
	if err != nil {
		return fmt.Errorf("failed to connect to admin DB: %w", err)
	}
	defer adminDB.Close()

	// Terminate any active connections
	_, _ = adminDB.Exec(`
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid();`, cfg.DBName)

	quotedDBName := fmt.Sprintf(`"%s"`, cfg.DBName)

	if _, err = adminDB.Exec(`DROP DATABASE IF EXISTS ` + quotedDBName); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err = adminDB.Exec(`CREATE DATABASE ` + quotedDBName); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info().Str("database", cfg.DBName).Msg("dropped and recreated database")
	return nil
}

func ConnectDB(cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN(cfg.DBName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // disable logging
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the adjacency and run tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.NodeAdjacency{},
		&models.GenerationRun{},
	)
}

func ResetDatabase(db *gorm.DB) error {
	if err := ResetSchema(db); err != nil {
		return err
	}
	if err := ResetSessionConfig(db); err != nil {
		return err
	}
	if err := ConfirmNoTables(db); err != nil {
		return err
	}
	return Migrate(db)
}

func ResetSchema(db *gorm.DB) error {
	if err := db.Exec("DROP SCHEMA public CASCADE").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE SCHEMA public").Error; err != nil {
		return err
	}
	log.Info().Msg("dropped and recreated public schema")
	return nil
}

func ResetSessionConfig(db *gorm.DB) error {
	if err := db.Exec(`DISCARD ALL;`).Error; err != nil {
		return err
	}
	return db.Exec("RESET ALL").Error
}

func ConfirmNoTables(db *gorm.DB) error {
	var tables []string
	if err := db.Raw(`SELECT tablename FROM pg_tables WHERE schemaname = 'public'`).Scan(&tables).Error; err != nil {
		return fmt.Errorf("failed to query tables: %w", err)
	}
	if len(tables) > 0 {
		return fmt.Errorf("tables still exist after reset: %v", tables)
	}
	return nil
}
