package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream endpoints. The gateway webhook is the n8n workflow that
	// routes mutating actions; the script URLs are the Apps Script
	// deployments serving the read paths and auth.
	GatewayWebhookURL   string `mapstructure:"GATEWAY_WEBHOOK_URL"`
	NotifyWebhookURL    string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	AuthScriptURL       string `mapstructure:"AUTH_SCRIPT_URL"`
	CreatorsScriptURL   string `mapstructure:"CREATORS_SCRIPT_URL"`
	BrandScriptURL      string `mapstructure:"BRAND_SCRIPT_URL"`
	MyDayScriptURL      string `mapstructure:"MYDAY_SCRIPT_URL"`
	AttendanceScriptURL string `mapstructure:"ATTENDANCE_SCRIPT_URL"`
	AppKey              string `mapstructure:"APP_KEY"`

	// Upstream timeouts in seconds. Reads get the shorter budget.
	GatewayTimeoutSec int `mapstructure:"GATEWAY_TIMEOUT_SEC"`
	ReadTimeoutSec    int `mapstructure:"READ_TIMEOUT_SEC"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisLockDB    int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("GATEWAY_TIMEOUT_SEC", 60)
	viper.SetDefault("READ_TIMEOUT_SEC", 20)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_LOCK_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
