package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Session     SessionConfig     `mapstructure:"session"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Quiz        QuizConfig        `mapstructure:"quiz"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// SessionConfig bounds the lifetime of registry entries. Sessions idle
// past IdleTimeout without an end call are evicted; finalized sessions
// are kept for Retention so their metrics stay queryable.
type SessionConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	Retention     time.Duration `mapstructure:"retention"`
}

// PersistenceConfig selects where finalized sessions are written.
// Driver is one of "postgres", "file", or "none".
type PersistenceConfig struct {
	Driver    string `mapstructure:"driver"`
	Directory string `mapstructure:"directory"`
}

// QuizConfig points at the quiz bank file.
type QuizConfig struct {
	File string `mapstructure:"file"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5001")

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "fatigue-db")

	// Session lifetime defaults
	v.SetDefault("session.idle_timeout", "30m")
	v.SetDefault("session.sweep_interval", "1m")
	v.SetDefault("session.retention", "1h")

	// Persistence defaults
	v.SetDefault("persistence.driver", "file")
	v.SetDefault("persistence.directory", "data/sessions")

	// Quiz bank default
	v.SetDefault("quiz.file", "config/quizzes.yaml")
}

// Init initializes the configuration with Viper.
func Init(log *zap.Logger) error {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath("config") // Search for config file in the config directory
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // Type of config file

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("FATIGUE") // e.g., FATIGUE_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the config into our global Conf variable
	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
		}
	})

	log.Info("Configuration loaded successfully")
	return nil
}
