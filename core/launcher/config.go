package launcher

import (
	"net"
	"strconv"
	"strings"

	"dev-launcher/core/config"
	"dev-launcher/core/server"
)

// Mode is the runtime mode handed to the delegated server.
type Mode string

const (
	Development Mode = server.ModeDevelopment
	Production  Mode = server.ModeProduction
)

// Environment variables exported to the delegated server.
const (
	EnvEntryPoint = "APP_ENTRY_POINT"
	EnvMode       = "APP_MODE"
	EnvHost       = "APP_HOST"
	EnvPort       = "APP_PORT"
	EnvDriver     = "APP_DRIVER"
	EnvCommand    = "APP_COMMAND"
	EnvAllowFrom  = "APP_ALLOW_FROM"
)

// Config is the resolved launch record. It is built once and never mutated.
type Config struct {
	EntryPoint string   `yaml:"entry_point"`
	Mode       Mode     `yaml:"mode"`
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	Driver     string   `yaml:"driver"`
	Command    string   `yaml:"command,omitempty"`
	ContextDir string   `yaml:"context_dir,omitempty"`
	AllowFrom  []string `yaml:"allow_from,omitempty"`
}

// Addr returns the host:port the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Exports returns the variables exported to the delegated server.
func (c Config) Exports() map[string]string {
	return map[string]string{
		EnvEntryPoint: c.EntryPoint,
		EnvMode:       string(c.Mode),
		EnvHost:       c.Host,
		EnvPort:       strconv.Itoa(c.Port),
	}
}

// ResolveConfig builds the launch record from an environment mapping,
// applying defaults for every unset option.
func ResolveConfig(env map[string]string) (Config, error) {
	settings, err := config.Load("", env)
	if err != nil {
		return Config{}, &ConfigurationError{Err: err}
	}
	return FromSettings(settings.App)
}

// FromSettings validates raw settings and converts them into the launch record.
func FromSettings(s server.Config) (Config, error) {
	entry := strings.TrimSpace(s.EntryPoint)
	if entry == "" {
		return Config{}, &ConfigurationError{Field: EnvEntryPoint, Reason: "is required"}
	}

	if !s.IsValidMode() {
		return Config{}, &ConfigurationError{
			Field:  EnvMode,
			Reason: "must be development or production (got " + strconv.Quote(s.Mode) + ")",
		}
	}

	port, err := strconv.Atoi(strings.TrimSpace(s.Port))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, &ConfigurationError{
			Field:  EnvPort,
			Reason: "must be an integer between 1 and 65535 (got " + strconv.Quote(s.Port) + ")",
		}
	}

	host := strings.TrimSpace(s.Host)
	if host == "" {
		return Config{}, &ConfigurationError{Field: EnvHost, Reason: "must not be blank"}
	}

	if !s.IsValidDriver() {
		return Config{}, &ConfigurationError{
			Field:  EnvDriver,
			Reason: "must be builtin or exec (got " + strconv.Quote(s.Driver) + ")",
		}
	}
	driver := strings.ToLower(strings.TrimSpace(s.Driver))

	command := strings.TrimSpace(s.Command)
	if driver == server.DriverExec && command == "" {
		return Config{}, &ConfigurationError{Field: EnvCommand, Reason: "is required by the exec driver"}
	}

	allow := s.AllowList()
	if _, err := server.ParseAllowList(allow); err != nil {
		return Config{}, &ConfigurationError{Field: EnvAllowFrom, Err: err}
	}

	return Config{
		EntryPoint: entry,
		Mode:       Mode(server.NormalizeMode(s.Mode)),
		Host:       host,
		Port:       port,
		Driver:     driver,
		Command:    command,
		ContextDir: strings.TrimSpace(s.ContextDir),
		AllowFrom:  allow,
	}, nil
}
