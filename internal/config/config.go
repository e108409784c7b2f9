package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// StoreMemory selects the in-process product store.
	StoreMemory = "memory"
	// StoreSQL selects the PostgreSQL product store.
	StoreSQL = "sql"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Listen string // host:port the HTTP server binds to
	Env    string
}

type StoreConfig struct {
	Backend string // StoreMemory or StoreSQL
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

func Load() *Config {
	// A .env file in the working directory overlays the process environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_LISTEN", ":8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORE_BACKEND", StoreMemory)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")

	return &Config{
		Server: ServerConfig{
			Listen: viper.GetString("SERVER_LISTEN"),
			Env:    viper.GetString("SERVER_ENV"),
		},
		Store: StoreConfig{
			Backend: viper.GetString("STORE_BACKEND"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
	}
}
