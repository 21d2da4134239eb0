package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Remote    RemoteConfig
	Cache     CacheConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	MinIO     MinIOConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RemoteConfig addresses the hosted JSON bin holding the storefront document.
type RemoteConfig struct {
	BaseURL string
	BinID   string
	APIKey  string
	Timeout time.Duration
}

type CacheConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	FallbackKey string
}

// MongoDBConfig is only needed for the deployment variant that keeps menus
// in their own database.
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("REMOTE_BASE_URL", "https://api.jsonbin.io/v3")
	viper.SetDefault("REMOTE_TIMEOUT", 10)
	viper.SetDefault("CACHE_TTL", 30)
	viper.SetDefault("CACHE_POLL_INTERVAL", 10)
	viper.SetDefault("REDIS_FALLBACK_KEY", "storefront:fallback")
	viper.SetDefault("MONGODB_DATABASE", "storefront")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MINIO_BUCKET", "storefront-backups")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 720)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Remote: RemoteConfig{
			BaseURL: viper.GetString("REMOTE_BASE_URL"),
			BinID:   viper.GetString("REMOTE_BIN_ID"),
			APIKey:  os.Getenv("REMOTE_API_KEY"),
			Timeout: time.Duration(viper.GetInt("REMOTE_TIMEOUT")) * time.Second,
		},
		Cache: CacheConfig{
			TTL:          time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
			PollInterval: time.Duration(viper.GetInt("CACHE_POLL_INTERVAL")) * time.Second,
		},
		Redis: RedisConfig{
			Host:        viper.GetString("REDIS_HOST"),
			Port:        viper.GetString("REDIS_PORT"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          0,
			FallbackKey: viper.GetString("REDIS_FALLBACK_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetString("MINIO_USE_SSL") == "true",
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Remote.BinID == "" {
		log.Println("WARNING: REMOTE_BIN_ID is not set; reads will serve fallback or default data only")
	}
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}
