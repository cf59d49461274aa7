package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Google   GoogleConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int
	SearchRadius   int
	MaxRetries     int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Driver: viper.GetString("CACHE_DRIVER"),
			TTL:    time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
		},
		Google: GoogleConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        viper.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout: viper.GetInt("GOOGLE_REQUEST_TIMEOUT"),
			SearchRadius:   viper.GetInt("GOOGLE_SEARCH_RADIUS"),
			MaxRetries:     viper.GetInt("GOOGLE_MAX_RETRIES"),
		},
		Auth: AuthConfig{
			JWTSecret:  viper.GetString("JWT_SECRET"),
			TokenTTL:   time.Duration(viper.GetInt("JWT_TTL")) * time.Second,
			BcryptCost: viper.GetInt("BCRYPT_COST"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "redis"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 600 * time.Second
	}
	if cfg.Google.BaseURL == "" {
		cfg.Google.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 10
	}
	if cfg.Google.SearchRadius == 0 {
		cfg.Google.SearchRadius = 5000
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = time.Hour
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
