package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type StoreConfig struct {
	ShippingFee       int64         // flat fee added to every order, in whole pesos
	PaymentDelay      time.Duration // simulated gateway processing time
	LowStockThreshold int           // at or below this a size shows a UI warning
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int

	// Rate limiting is optional; the API works without Redis.
	RateLimitEnabled bool
	RateLimitPerMin  int
}

// Load reads configuration from an optional .env file and the process
// environment, with defaults for every knob. A missing .env is not an
// error; a malformed one is returned alongside the defaulted config so
// the caller can log it once the logger exists.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{})
	viper.SetDefault("SHIPPING_FEE", 5000)
	viper.SetDefault("PAYMENT_DELAY_MS", 2000)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 3)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_PER_MIN", 120)

	var loadErr error
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			loadErr = err
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			ShippingFee:       viper.GetInt64("SHIPPING_FEE"),
			PaymentDelay:      time.Duration(viper.GetInt("PAYMENT_DELAY_MS")) * time.Millisecond,
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Redis: RedisConfig{
			Host:             viper.GetString("REDIS_HOST"),
			Port:             viper.GetString("REDIS_PORT"),
			Password:         viper.GetString("REDIS_PASSWORD"),
			DB:               viper.GetInt("REDIS_DB"),
			RateLimitEnabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RateLimitPerMin:  viper.GetInt("RATE_LIMIT_PER_MIN"),
		},
	}, loadErr
}
