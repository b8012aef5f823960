package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"dev-launcher/core/logger"
	"dev-launcher/core/server"
	"dev-launcher/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional YAML configuration file looked up in the config path.
const FileName = "launcher.yaml"

// Config holds all configuration for the launcher.
// It is divided into partial configurations for better modularity.
type Config struct {
	// App holds the launch settings (APP_*).
	App server.Config `mapstructure:"app"`
	// Storage holds configuration for the object storage used by the bucket app.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from the process environment, a .env file
// and an optional launcher.yaml found in path.
func LoadConfig(path string) (*Config, error) {
	return Load(path, Environ())
}

// Load resolves configuration from env, layered on top of the files in path.
// Precedence, lowest first: struct tag defaults, launcher.yaml, .env, env.
// An empty path skips the file layers entirely. Empty values count as unset.
func Load(path string, env map[string]string) (*Config, error) {
	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	vars := make(map[string]string, len(env))
	if path != "" {
		file := filepath.Join(path, FileName)
		if _, err := os.Stat(file); err == nil {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}
		}

		// Ignore error if file doesn't exist
		if dotenv, err := godotenv.Read(filepath.Join(path, ".env")); err == nil {
			for k, val := range dotenv {
				vars[k] = val
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}
	for k, val := range env {
		vars[k] = val
	}

	// Map environment variables to nested keys (e.g. APP_PORT -> app.port)
	for _, key := range v.AllKeys() {
		if val := vars[EnvName(key)]; val != "" {
			v.Set(key, val)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// EnvName returns the environment variable backing a config key.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, val, ok := strings.Cut(kv, "="); ok {
			env[k] = val
		}
	}
	return env
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

		// Always set default (even if empty) so the key shows up in AllKeys
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
