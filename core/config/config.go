package config

import (
	"reflect"
	"strings"

	"backend-launcher/core/backend"
	"backend-launcher/core/control"
	"backend-launcher/core/journal"
	"backend-launcher/core/logger"
	"backend-launcher/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the launcher.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Backend describes the on-disk layout of the Python backend.
	Backend backend.Config `mapstructure:"backend"`
	// Model configures the trained model artifact check.
	Model backend.ModelConfig `mapstructure:"model"`
	// Probe configures the post-launch readiness probe.
	Probe backend.ProbeConfig `mapstructure:"probe"`
	// Control configures the optional supervisor control endpoint.
	Control control.Config `mapstructure:"control"`
	// Journal holds configuration for the launch history database.
	Journal journal.Config `mapstructure:"journal"`
	// Storage holds configuration for the model artifact storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. BACKEND_SCRIPT -> backend.script)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
