package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Media    MediaConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	ReadTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StorageConfig struct {
	UploadPath  string
	MaxBodySize int64
}

type MediaConfig struct {
	Port       string
	UploadPath string
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			ReadTimeout: time.Duration(getEnvAsInt("READ_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   getEnv("STORE_DRIVER", StoreMemory),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "recruitment_intake"),
		},
		Storage: StorageConfig{
			UploadPath: getEnv("UPLOAD_DIR", "./uploads"),
			// video ceiling is 200 MiB, leave room for the multipart envelope
			MaxBodySize: getEnvAsInt64("MAX_BODY_SIZE", 256<<20),
		},
		Media: MediaConfig{
			Port:       getEnv("MEDIA_PORT", "5000"),
			UploadPath: getEnv("MEDIA_UPLOAD_DIR", "./uploads"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
