package utils

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	AppPort   string `yaml:"APP_PORT"`
	LogDir    string `yaml:"LOG_DIR"`
	RateLimit string `yaml:"RATE_LIMIT"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Redis cache; an empty address selects the in-process cache
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`

	// Statistics bucket timezone (IANA name)
	StatsTimezone string `yaml:"STATS_TIMEZONE"`

	// Cron specs
	CronExpire    string `yaml:"CRON_EXPIRE"`
	CronPurge     string `yaml:"CRON_PURGE"`
	CronClearLogs string `yaml:"CRON_CLEAR_LOGS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

var defaults = map[string]string{
	"APP_PORT":        "5000",
	"LOG_DIR":         "./logs",
	"RATE_LIMIT":      "10",
	"REDIS_DB":        "0",
	"STATS_TIMEZONE":  "UTC",
	"CRON_EXPIRE":     "*/30 * * * *",
	"CRON_PURGE":      "0 3 * * 0",
	"CRON_CLEAR_LOGS": "0 4 * * 0",
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"APP_PORT":           &c.AppPort,
		"LOG_DIR":            &c.LogDir,
		"RATE_LIMIT":         &c.RateLimit,
		"JWT_SECRET":         &c.JWTSecret,
		"REDIS_ADDR":         &c.RedisAddr,
		"REDIS_PASSWORD":     &c.RedisPassword,
		"REDIS_DB":           &c.RedisDB,
		"STATS_TIMEZONE":     &c.StatsTimezone,
		"CRON_EXPIRE":        &c.CronExpire,
		"CRON_PURGE":         &c.CronPurge,
		"CRON_CLEAR_LOGS":    &c.CronClearLogs,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
	}
}

// LoadConfig reads config.yaml, then lets the process environment (and a
// .env file, when present) override individual keys. It is safe to call
// more than once; only the first call has an effect.
func LoadConfig() {
	configOnce.Do(func() {
		config = readConfig("config.yaml")
	})
}

func readConfig(path string) Config {
	var cfg Config

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env")
	}

	for key, field := range cfg.fields() {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
		if *field == "" {
			*field = defaults[key]
		}
	}

	return cfg
}

func GetConfig(key string) string {
	field, ok := config.fields()[key]
	if !ok {
		return ""
	}
	if *field == "" {
		return defaults[key]
	}
	return *field
}
