package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Env        string `yaml:"env"`
	LogLevel   string `yaml:"log_level"`
	BaseURL    string `yaml:"base_url"`
	Storage    string `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Mongo      `yaml:"mongo"`
	Checker    `yaml:"checker"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Mongo struct {
	URI                    string        `yaml:"uri"`
	DB                     string        `yaml:"db"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout"`
	MaxPoolSize            uint64        `yaml:"max_pool_size"`
}

var defaultMongo = Mongo{
	URI:                    "mongodb://localhost:27017",
	DB:                     "shortlinks",
	ConnectTimeout:         10 * time.Second,
	ServerSelectionTimeout: 10 * time.Second,
	MaxPoolSize:            100,
}

// Checker configures the dead redirect checker. A zero Interval disables the
// periodic run; the check can still be triggered over HTTP.
type Checker struct {
	Workers          int           `yaml:"workers"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	Interval         time.Duration `yaml:"interval"`
}

var defaultChecker = Checker{
	Workers:          100,
	RequestTimeout:   10 * time.Second,
	ProgressInterval: 10 * time.Second,
}

// Load reads the YAML config at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	setDefaults(&cfg)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.LogLevel = "info"
	cfg.BaseURL = "http://localhost:8080"
	cfg.Storage = StorageMongo
	cfg.HTTPServer = defaultHTTPServer
	cfg.Mongo = defaultMongo
	cfg.Checker = defaultChecker
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.HTTPServer.Port = port
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.Mongo.DB = v
	}
	if v := os.Getenv("SHORTLINK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	return nil
}

func (cfg *Config) validate() error {
	switch cfg.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", cfg.Env)
	}

	switch cfg.Storage {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if cfg.Env == EnvProd && (cfg.HTTPServer.CertFile == "" || cfg.HTTPServer.KeyFile == "") {
		return errors.New("cert_file and key_file are required in prod")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// SlogLevel returns the configured log level. Load guarantees it parses.
func (cfg *Config) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.LogLevel))
	return level
}
