package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// app config, mostly about where the generation service lives
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	ListenAddr     string        `yaml:"listen_addr"`
	DownloadDir    string        `yaml:"download_dir"`
	StatusSchedule string        `yaml:"status_schedule"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

const (
	defaultListenAddr     = "127.0.0.1:8090"
	defaultDownloadDir    = "./downloads"
	defaultStatusSchedule = "@every 30s"
	defaultLogLevel       = "info"
)

// loads configuration from .env, an optional YAML file (DRAFTER_CONFIG) and
// environment variables, in increasing order of precedence
func LoadConfig() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return LoadConfigFile(os.Getenv("DRAFTER_CONFIG"))
}

// LoadConfigFile is LoadConfig without the .env step; an empty path skips the YAML file
func LoadConfigFile(path string) (*Config, error) {
	config := &Config{
		ListenAddr:     defaultListenAddr,
		DownloadDir:    defaultDownloadDir,
		StatusSchedule: defaultStatusSchedule,
		LogLevel:       defaultLogLevel,
	}

	if path != "" {
		if err := readYAML(path, config); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://" + config.ListenAddr}
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func readYAML(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) error {
	config.BaseURL = getEnvOrDefault("DRAFTER_BASE_URL", config.BaseURL)
	config.ListenAddr = getEnvOrDefault("DRAFTER_LISTEN_ADDR", config.ListenAddr)
	config.DownloadDir = getEnvOrDefault("DRAFTER_DOWNLOAD_DIR", config.DownloadDir)
	config.LogLevel = getEnvOrDefault("DRAFTER_LOG_LEVEL", config.LogLevel)

	// an explicitly empty schedule disables the status monitor
	if schedule, ok := os.LookupEnv("DRAFTER_STATUS_SCHEDULE"); ok {
		config.StatusSchedule = strings.TrimSpace(schedule)
	}

	if raw := os.Getenv("DRAFTER_REQUEST_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid DRAFTER_REQUEST_TIMEOUT %q: %w", raw, err)
		}
		config.RequestTimeout = timeout
	}

	if raw := os.Getenv("DRAFTER_ALLOWED_ORIGINS"); raw != "" {
		config.AllowedOrigins = splitList(raw)
	}
	return nil
}

func validateConfig(config *Config) error {
	if config.BaseURL == "" {
		return errors.New("DRAFTER_BASE_URL is required")
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return errors.New("DRAFTER_BASE_URL must be an absolute http(s) URL, got: " + config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return errors.New("unsupported log level: " + config.LogLevel + ". Supported: debug, info, warn, error")
	}
	if config.DownloadDir == "" {
		return errors.New("download directory must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
