package launcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := ResolveConfig(map[string]string{"APP_ENTRY_POINT": "app"})
	require.NoError(t, err)

	assert.Equal(t, Config{
		EntryPoint: "app",
		Mode:       Development,
		Host:       "0.0.0.0",
		Port:       8000,
		Driver:     "builtin",
	}, cfg)
}

func TestResolveConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "AllSet",
			env: map[string]string{
				"APP_ENTRY_POINT": "static:./public",
				"APP_MODE":        "production",
				"APP_HOST":        "127.0.0.1",
				"APP_PORT":        "9000",
			},
			want: Config{EntryPoint: "static:./public", Mode: Production, Host: "127.0.0.1", Port: 9000, Driver: "builtin"},
		},
		{
			name: "ModeCaseInsensitive",
			env:  map[string]string{"APP_ENTRY_POINT": "app", "APP_MODE": " Production "},
			want: Config{EntryPoint: "app", Mode: Production, Host: "0.0.0.0", Port: 8000, Driver: "builtin"},
		},
		{
			name: "PortBounds",
			env:  map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "65535"},
			want: Config{EntryPoint: "app", Mode: Development, Host: "0.0.0.0", Port: 65535, Driver: "builtin"},
		},
		{
			name: "ExecDriver",
			env: map[string]string{
				"APP_ENTRY_POINT": "app:create_app()",
				"APP_DRIVER":      "exec",
				"APP_COMMAND":     "flask run",
				"APP_CONTEXT_DIR": "venv",
				"APP_ALLOW_FROM":  "127.0.0.1, 10.0.0.0/8",
			},
			want: Config{
				EntryPoint: "app:create_app()",
				Mode:       Development,
				Host:       "0.0.0.0",
				Port:       8000,
				Driver:     "exec",
				Command:    "flask run",
				ContextDir: "venv",
				AllowFrom:  []string{"127.0.0.1", "10.0.0.0/8"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveConfig(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"MissingEntryPoint", map[string]string{}, EnvEntryPoint},
		{"EmptyEntryPoint", map[string]string{"APP_ENTRY_POINT": ""}, EnvEntryPoint},
		{"BlankEntryPoint", map[string]string{"APP_ENTRY_POINT": "   "}, EnvEntryPoint},
		{"PortNotNumeric", map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "http"}, EnvPort},
		{"PortZero", map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "0"}, EnvPort},
		{"PortNegative", map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "-1"}, EnvPort},
		{"PortTooLarge", map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "65536"}, EnvPort},
		{"PortFloat", map[string]string{"APP_ENTRY_POINT": "app", "APP_PORT": "80.5"}, EnvPort},
		{"UnknownMode", map[string]string{"APP_ENTRY_POINT": "app", "APP_MODE": "staging"}, EnvMode},
		{"UnknownDriver", map[string]string{"APP_ENTRY_POINT": "app", "APP_DRIVER": "docker"}, EnvDriver},
		{"ExecWithoutCommand", map[string]string{"APP_ENTRY_POINT": "app", "APP_DRIVER": "exec"}, EnvCommand},
		{"BadAllowList", map[string]string{"APP_ENTRY_POINT": "app", "APP_ALLOW_FROM": "nope"}, EnvAllowFrom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConfig(tt.env)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field)
			assert.Equal(t, ExitConfiguration, ExitCode(err))
		})
	}
}

func TestResolveConfig_Idempotent(t *testing.T) {
	env := map[string]string{
		"APP_ENTRY_POINT": "app",
		"APP_PORT":        "8080",
		"APP_ALLOW_FROM":  "127.0.0.1",
	}

	first, err := ResolveConfig(env)
	require.NoError(t, err)
	second, err := ResolveConfig(env)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConfig_AddrAndExports(t *testing.T) {
	cfg := Config{EntryPoint: "app", Mode: Development, Host: "::1", Port: 8000}

	assert.Equal(t, "[::1]:8000", cfg.Addr())
	assert.Equal(t, map[string]string{
		"APP_ENTRY_POINT": "app",
		"APP_MODE":        "development",
		"APP_HOST":        "::1",
		"APP_PORT":        "8000",
	}, cfg.Exports())
}
