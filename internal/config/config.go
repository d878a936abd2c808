package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	BlobStore BlobStoreConfig
	JWT       JWTConfig
	Events    EventsConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// BlobStoreConfig holds blob-store gateway configuration
type BlobStoreConfig struct {
	BaseURL       string
	APIKey        string
	Bucket        string
	UploadTimeout time.Duration
	Mock          bool
}

// JWTConfig holds the optional bearer-token guard for event creation.
// Disabled by default; authentication normally sits upstream.
type JWTConfig struct {
	Enabled bool
	Secret  string
}

// EventsConfig holds event-policy configuration
type EventsConfig struct {
	RejectPastDated bool
}

// Load loads configuration from environment variables and config files
func Load(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "eventhub")
	viper.SetDefault("BlobStore.BaseURL", "http://localhost:9000")
	viper.SetDefault("BlobStore.Bucket", "event-images")
	viper.SetDefault("BlobStore.UploadTimeout", 10*time.Second)
	viper.SetDefault("BlobStore.Mock", true)
	viper.SetDefault("JWT.Enabled", false)
	viper.SetDefault("Events.RejectPastDated", true)
	viper.SetDefault("LogLevel", "info")
}
