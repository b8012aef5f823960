package server

import (
	"fmt"
	"net"
	"strings"
)

// Config holds the launch settings read from the APP_* environment variables.
type Config struct {
	// EntryPoint names the application to serve ("name" or "name:target").
	EntryPoint string `mapstructure:"entry_point" default:""`
	// Mode is the runtime mode (development, production).
	Mode string `mapstructure:"mode" default:"development"`
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Port is the TCP port the server binds to.
	Port string `mapstructure:"port" default:"8000"`
	// Driver selects the delegated server (builtin, exec).
	Driver string `mapstructure:"driver" default:"builtin"`
	// Command is the server command line run by the exec driver.
	Command string `mapstructure:"command" default:""`
	// ContextDir is the execution context to activate before starting.
	ContextDir string `mapstructure:"context_dir" default:""`
	// AllowFrom is a comma separated list of client IPs or CIDRs.
	AllowFrom string `mapstructure:"allow_from" default:""`
}

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

const (
	DriverBuiltin = "builtin"
	DriverExec    = "exec"
)

// IsValidMode checks if the configured mode is valid.
func (c Config) IsValidMode() bool {
	switch NormalizeMode(c.Mode) {
	case ModeDevelopment, ModeProduction:
		return true
	default:
		return false
	}
}

// IsValidDriver checks if the configured driver is valid.
func (c Config) IsValidDriver() bool {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverBuiltin, DriverExec:
		return true
	default:
		return false
	}
}

// NormalizeMode lowercases the mode and maps an empty value to development.
func NormalizeMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	if m == "" {
		return ModeDevelopment
	}
	return m
}

// AllowList splits AllowFrom into its non-empty entries.
func (c Config) AllowList() []string {
	var out []string
	for _, part := range strings.Split(c.AllowFrom, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseAllowList parses IP addresses and CIDR blocks. A bare address becomes a
// single-host network.
func ParseAllowList(entries []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e, "/") {
			_, n, err := net.ParseCIDR(e)
			if err != nil {
				return nil, fmt.Errorf("invalid network %q: %w", e, err)
			}
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(e)
		if ip == nil {
			return nil, fmt.Errorf("invalid address %q", e)
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		} else {
			ip = ip.To4()
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}
