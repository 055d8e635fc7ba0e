package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	ShortLink  `yaml:"short_link"`
	Site       `yaml:"site"`
	Redis      `yaml:"redis"`
	Analytics  `yaml:"analytics"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Port         int           `yaml:"port" env:"HTTP_SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Database holds PostgreSQL connection configuration.
type Database struct {
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"presslink"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"false"`
}

// ShortLink holds short-link service configuration.
type ShortLink struct {
	CodeLength  int    `yaml:"code_length" env:"SHORT_CODE_LENGTH" env-default:"6"`
	MaxAttempts int    `yaml:"max_attempts" env:"SHORT_CODE_MAX_ATTEMPTS" env-default:"10"`
	BaseURL     string `yaml:"base_url" env:"SHORT_BASE_URL" env-default:"http://localhost:8080"`
	SiteURL     string `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000"`
}

// Site holds the publication identity used for social preview documents.
type Site struct {
	Name    string `yaml:"name" env:"SITE_NAME" env-default:"PressLink"`
	Tagline string `yaml:"tagline" env:"SITE_TAGLINE" env-default:"Breaking news, video and live coverage"`
	LogoURL string `yaml:"logo_url" env:"SITE_LOGO_URL" env-default:"http://localhost:3000/images/logo-social.png"`
	Locale  string `yaml:"locale" env:"SITE_LOCALE" env-default:"en_US"`
	Author  string `yaml:"author" env:"SITE_AUTHOR" env-default:"PressLink Newsroom"`
	Section string `yaml:"section" env:"SITE_SECTION" env-default:"News"`
}

// Redis holds the optional resolve-cache configuration.
type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Address string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	DB      int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"1h"`
}

// Analytics holds the click analytics pipeline configuration.
type Analytics struct {
	WorkerCount int `yaml:"worker_count" env:"ANALYTICS_WORKERS" env-default:"3"`
	BufferSize  int `yaml:"buffer_size" env:"ANALYTICS_BUFFER_SIZE" env-default:"1000"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	// Try to load config file
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}
