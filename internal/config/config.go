package config

import (
	"os"
	"strconv"
	"time"

	"statcalc/internal"
	"statcalc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Data   DataConfig
	Log    LogConfig
}

// ServerConfig holds web server settings for the UI and the JSON API
type ServerConfig struct {
	Port            string
	APIPort         string
	GinMode         string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// EngineConfig holds statistics engine settings
type EngineConfig struct {
	StrictParse      bool
	QuartileMinCount int
	HeightMinCount   int
}

// DataConfig holds optional data sources
type DataConfig struct {
	SampleFile   string // xlsx or csv replacing the built-in sample heights
	SampleColumn string // column header in SampleFile, first column if empty
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server configuration")
	}
	config.Server = *serverConfig

	engineConfig, err := LoadEngine()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}
	config.Engine = *engineConfig

	config.Data = DataConfig{
		SampleFile:   getEnvOrDefault("SAMPLE_FILE", ""),
		SampleColumn: getEnvOrDefault("SAMPLE_COLUMN", ""),
	}

	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load log configuration")
	}
	config.Log = *logConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() (*ServerConfig, error) {
	maxBody, err := getEnvInt64("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		APIPort:         getEnvOrDefault("API_PORT", "8081"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		MaxBodyBytes:    maxBody,
		ShutdownTimeout: timeout,
	}, nil
}

// LoadEngine reads only the engine section, for tools that serve no HTTP
func LoadEngine() (*EngineConfig, error) {
	quartileMin, err := getEnvInt64("QUARTILE_MIN_COUNT", 4)
	if err != nil {
		return nil, err
	}
	heightMin, err := getEnvInt64("HEIGHT_MIN_COUNT", 2)
	if err != nil {
		return nil, err
	}
	if quartileMin < 1 || heightMin < 1 {
		return nil, errors.ConfigInvalid("QUARTILE_MIN_COUNT and HEIGHT_MIN_COUNT must be at least 1")
	}

	return &EngineConfig{
		StrictParse:      getEnvBoolOrDefault("STRICT_PARSE", false),
		QuartileMinCount: int(quartileMin),
		HeightMinCount:   int(heightMin),
	}, nil
}

func loadLogConfig() (*LogConfig, error) {
	name := getEnvOrDefault("LOG_LEVEL", "INFO")
	level, ok := internal.ParseLogLevel(name)
	if !ok {
		return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	return &LogConfig{Level: level}, nil
}

func validateConfig(config *Config) error {
	if err := validatePort("PORT", config.Server.Port); err != nil {
		return err
	}
	if err := validatePort("API_PORT", config.Server.APIPort); err != nil {
		return err
	}
	if config.Server.Port == config.Server.APIPort {
		return errors.ConfigInvalid("PORT and API_PORT must differ")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return errors.ConfigInvalid("MAX_BODY_BYTES must be positive")
	}
	if config.Data.SampleColumn != "" && config.Data.SampleFile == "" {
		return errors.ConfigInvalid("SAMPLE_COLUMN requires SAMPLE_FILE")
	}
	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid(key + " must be a port number between 1 and 65535")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return intValue, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a duration such as 10s")
	}
	return duration, nil
}
