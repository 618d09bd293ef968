package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Session struct {
	IdleTTL       time.Duration `yaml:"IDLE_TTL" env:"SESSION_IDLE_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"SWEEP_INTERVAL" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

type Admin struct {
	Identity    string `yaml:"IDENTITY" env:"ADMIN_IDENTITY" env-default:"admin"`
	Passkey     string `yaml:"PASSKEY" env:"ADMIN_PASSKEY" env-default:"luxury2024"`
	PasskeyHash string `yaml:"PASSKEY_HASH" env:"ADMIN_PASSKEY_HASH"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"8"`
}

type Gemini struct {
	APIKey  string        `yaml:"API_KEY" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"MODEL" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	BaseURL string        `yaml:"BASE_URL" env:"GEMINI_BASE_URL"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"GEMINI_TIMEOUT" env-default:"30s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Cache struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"24h"`
}

type SendGrid struct {
	APIKey    string   `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string   `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"atelier@lumiere-stone.example"`
	FromName  string   `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Lumière & Stone"`
	BCC       []string `yaml:"BCC" env:"SENDGRID_BCC" env-separator:","`
	Host      string   `yaml:"HOST" env:"SENDGRID_HOST"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"atelier"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   HTTPServer   `yaml:"http_server"`
	Session      Session      `yaml:"session"`
	Admin        Admin        `yaml:"admin"`
	Security     Security     `yaml:"security"`
	Gemini       Gemini       `yaml:"gemini"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        Cache        `yaml:"cache"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Otel         Otel         `yaml:"otel"`
}

const defaultConfigPath = "config/local.yaml"

// MustLoad resolves the config path from CONFIG_PATH, the -config flag or the
// default location, and exits on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

// Enabled reports whether a Redis host was configured.
func (r *RedisConnect) Enabled() bool {
	return r.Host != ""
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

func (s *Security) JWTExpiry() time.Duration {
	return time.Duration(s.JWTExpiryHours) * time.Hour
}
