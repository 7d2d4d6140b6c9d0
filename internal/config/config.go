package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Redis struct {
		Addr         string `yaml:"addr" env:"REDIS_ADDR"`
		Password     string `yaml:"password" env:"REDIS_PASSWORD"`
		DB           int    `yaml:"db" env:"REDIS_DB"`
		DialTimeout  string `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
		ReadTimeout  string `yaml:"read_timeout" env:"REDIS_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT"`
	} `yaml:"redis"`

	JWT struct {
		Secret               string `yaml:"secret" env:"JWT_SECRET"`
		AdminTokenExpiration string `yaml:"admin_token_expiration" env:"JWT_ADMIN_TOKEN_EXPIRATION"`
		Issuer               string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Admin struct {
		Username string `yaml:"username" env:"ADMIN_USERNAME"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
		// LoginDelay reproduces the original portal's simulated login latency.
		LoginDelay string `yaml:"login_delay" env:"ADMIN_LOGIN_DELAY"`
	} `yaml:"admin"`

	Advisor struct {
		Endpoint string `yaml:"endpoint" env:"ADVISOR_ENDPOINT"`
		APIKey   string `yaml:"api_key" env:"ADVISOR_API_KEY"`
		Timeout  string `yaml:"timeout" env:"ADVISOR_TIMEOUT"`
	} `yaml:"advisor"`

	Intake struct {
		SubmitDelay   string `yaml:"submit_delay" env:"INTAKE_SUBMIT_DELAY"`
		MaxUploadSize int64  `yaml:"max_upload_size" env:"INTAKE_MAX_UPLOAD_SIZE"`
	} `yaml:"intake"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; environment variables can carry everything.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Redis.Addr = "localhost:6379"
	config.Redis.DB = 0
	config.Redis.DialTimeout = "5s"
	config.Redis.ReadTimeout = "3s"
	config.Redis.WriteTimeout = "3s"

	config.JWT.AdminTokenExpiration = "12h"
	config.JWT.Issuer = "ppdb.darulhuda.sch.id"

	// The credential pair the original portal shipped with.
	config.Admin.Username = "admin"
	config.Admin.Password = "admin123"
	config.Admin.LoginDelay = "1s"

	config.Advisor.Timeout = "10s"

	config.Intake.SubmitDelay = "1200ms"
	config.Intake.MaxUploadSize = 2 << 20 // 2MB per uploaded document

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Admin.Username == "" || config.Admin.Password == "" {
		return fmt.Errorf("admin credentials are required")
	}

	for name, value := range map[string]string{
		"JWT admin token expiration": config.JWT.AdminTokenExpiration,
		"admin login delay":          config.Admin.LoginDelay,
		"advisor timeout":            config.Advisor.Timeout,
		"intake submit delay":        config.Intake.SubmitDelay,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Intake.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	return nil
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
