package devserver

import (
	"fmt"

	"dev-launcher/core/launcher"
	"dev-launcher/core/loader"
	"dev-launcher/core/server"

	"go.uber.org/zap"
)

// NewFactory returns the launcher.ServerFactory selecting a driver by
// cfg.Driver.
func NewFactory(registry *loader.Manager, logger *zap.Logger) launcher.ServerFactory {
	return func(cfg launcher.Config) (launcher.Server, error) {
		switch cfg.Driver {
		case server.DriverBuiltin:
			return NewBuiltin(registry, logger), nil
		case server.DriverExec:
			return NewExec(logger), nil
		default:
			return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
		}
	}
}
