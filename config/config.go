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
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Webex configuration.
	WebexAccessToken string `mapstructure:"WEBEX_ACCESS_TOKEN"`
	WebexAPIBase     string `mapstructure:"WEBEX_API_BASE"`

	// Gemini configuration.
	GeminiAPIKey      string  `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string  `mapstructure:"GEMINI_MODEL"`
	GeminiTemperature float64 `mapstructure:"GEMINI_TEMPERATURE"`

	// Scheduling defaults.
	DefaultTimezone        string `mapstructure:"DEFAULT_TIMEZONE"`
	OrganizerEmail         string `mapstructure:"ORGANIZER_EMAIL"`
	MeetingDurationMinutes int    `mapstructure:"MEETING_DURATION_MINUTES"`

	// Google Calendar OAuth configuration.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleTokenFile       string `mapstructure:"GOOGLE_TOKEN_FILE"`
	OAuthRedirectURL      string `mapstructure:"OAUTH_REDIRECT_URL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisStateDB  int    `mapstructure:"REDIS_STATE_DB"`

	// Outbound HTTP timeout in seconds, applied to every external call.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS"`
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
	viper.SetDefault("WEBEX_API_BASE", "https://webexapis.com/v1")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.7)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("MEETING_DURATION_MINUTES", 30)
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("GOOGLE_TOKEN_FILE", "token.json")
	viper.SetDefault("OAUTH_REDIRECT_URL", "http://localhost:8080/google/callback")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_STATE_DB", 1)
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)

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
