package launcher

import (
	"context"
	"errors"
	"sync"

	"dev-launcher/core/execctx"
	"dev-launcher/core/server"

	"go.uber.org/zap"
)

// Server is the delegated server. Serve blocks until the server shuts down; it
// must call ready exactly once after the listener is bound and before serving.
// If ctx is done before anything is bound, Serve returns nil without calling
// ready.
type Server interface {
	Serve(ctx context.Context, cfg Config, ready func()) error
}

// ServerFunc adapts a function to the Server interface.
type ServerFunc func(ctx context.Context, cfg Config, ready func()) error

func (f ServerFunc) Serve(ctx context.Context, cfg Config, ready func()) error {
	return f(ctx, cfg, ready)
}

// ServerFactory picks the delegated server for a resolved configuration.
type ServerFactory func(cfg Config) (Server, error)

// State is the launcher lifecycle state.
type State int

const (
	Unstarted State = iota
	Running
	Failed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Running:
		return "running"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Launcher runs the launch sequence once: resolve, activate, export, serve.
type Launcher struct {
	newServer ServerFactory
	activate  func(dir string) (*execctx.Activation, error)
	logger    *zap.Logger

	mu    sync.Mutex
	state State
	used  bool
}

// New creates a Launcher that starts servers built by newServer.
func New(newServer ServerFactory, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Launcher{
		newServer: newServer,
		activate:  execctx.Activate,
		logger:    logger,
	}
}

// State returns the current lifecycle state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Launcher) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Launch validates settings, prepares the execution context and blocks in the
// delegated server until it returns. The context activation and exported
// variables are restored before Launch returns, whatever the outcome.
func (l *Launcher) Launch(ctx context.Context, settings server.Config) error {
	l.mu.Lock()
	if l.used {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.used = true
	l.mu.Unlock()

	cfg, err := FromSettings(settings)
	if err != nil {
		return l.fail(err)
	}
	return l.start(ctx, cfg)
}

func (l *Launcher) start(ctx context.Context, cfg Config) error {
	srv, err := l.newServer(cfg)
	if err != nil {
		return l.fail(&ServerStartError{Addr: cfg.Addr(), Err: err})
	}

	act, err := l.activate(cfg.ContextDir)
	if err != nil {
		return l.fail(&ContextActivationError{Dir: cfg.ContextDir, Err: err})
	}
	defer act.Restore()

	if act.Active() {
		l.logger.Info("Execution context activated", zap.String("dir", act.Dir))
	}

	if err := act.Export(cfg.Exports()); err != nil {
		return l.fail(&ContextActivationError{Dir: cfg.ContextDir, Err: err})
	}

	if cfg.Mode == Development {
		l.logger.Warn("Development server: insecure, single process, not for production use")
	}

	l.logger.Info("Starting server",
		zap.String("entry_point", cfg.EntryPoint),
		zap.String("mode", string(cfg.Mode)),
		zap.String("driver", cfg.Driver),
		zap.String("addr", cfg.Addr()),
	)

	err = srv.Serve(ctx, cfg, func() {
		l.setState(Running)
		l.logger.Info("Server listening", zap.String("addr", cfg.Addr()))
	})
	if err != nil {
		var sse *ServerStartError
		if !errors.As(err, &sse) {
			err = &ServerStartError{Addr: cfg.Addr(), Err: err}
		}
		return l.fail(err)
	}

	l.logger.Info("Server stopped")
	return nil
}

func (l *Launcher) fail(err error) error {
	l.setState(Failed)
	return err
}
