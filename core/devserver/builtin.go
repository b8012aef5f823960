package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"dev-launcher/core/launcher"
	"dev-launcher/core/loader"
	"dev-launcher/core/logger"
	"dev-launcher/core/middleware/allowlist"
	"dev-launcher/core/middleware/rayid"
	"dev-launcher/core/server"
	_ "dev-launcher/docs/swagger"
	"dev-launcher/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// HealthPath is mounted for every application.
const HealthPath = "/healthz"

// DocsPath serves the API docs in development mode.
const DocsPath = "/swagger"

// DefaultShutdownTimeout bounds the graceful shutdown after cancellation.
const DefaultShutdownTimeout = 5 * time.Second

// Builtin serves a registered application in-process with Fiber.
type Builtin struct {
	registry        *loader.Manager
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// NewBuiltin creates the in-process server driver.
func NewBuiltin(registry *loader.Manager, logger *zap.Logger) *Builtin {
	return &Builtin{
		registry:        registry,
		logger:          logger,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// Serve loads the entry point, binds host:port and serves until ctx is done.
// Nothing is bound if the entry point cannot be loaded, and nothing is started
// if ctx is done before binding.
func (s *Builtin) Serve(ctx context.Context, cfg launcher.Config, ready func()) error {
	app, err := s.newApp(ctx, cfg)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ready()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			s.logger.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
		// Shutdown only closes listeners Fiber has registered; close ours in
		// case Listener has not reached Serve yet.
		_ = ln.Close()
		<-errCh
		return nil
	case err := <-errCh:
		if err == nil {
			err = errors.New("listener closed unexpectedly")
		}
		return err
	}
}

// newApp builds the Fiber application for cfg without binding anything.
func (s *Builtin) newApp(ctx context.Context, cfg launcher.Config) (*fiber.App, error) {
	dev := cfg.Mode == launcher.Development

	app := fiber.New(fiber.Config{
		AppName:               "dev-launcher",
		DisableStartupMessage: true, // We log our own startup message
		ErrorHandler:          errorHandler(s.logger, dev),
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	if dev {
		app.Use(requestLogger(s.logger))
	}

	if len(cfg.AllowFrom) > 0 {
		nets, err := server.ParseAllowList(cfg.AllowFrom)
		if err != nil {
			return nil, err
		}
		app.Use(allowlist.New(allowlist.Config{
			Allowed: nets,
			OnDeny: func(c *fiber.Ctx, ip string) {
				logger.WithRayID(s.logger, c).Warn("Access denied", zap.String("ip", ip))
			},
		}))
	}

	if dev {
		app.Get(DocsPath+"/*", swagger.HandlerDefault)
	}

	mode := string(cfg.Mode)
	if err := health.NewFeature().Load(ctx, app.Group(HealthPath), loader.Mount{EntryPoint: cfg.EntryPoint, Mode: mode}); err != nil {
		return nil, err
	}

	if err := s.registry.Load(ctx, app, cfg.EntryPoint, mode); err != nil {
		return nil, err
	}

	return app, nil
}
