package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"time"

	"dev-launcher/core/launcher"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// DefaultWaitDelay is how long a child gets to exit after the interrupt
// before it is killed.
const DefaultWaitDelay = 10 * time.Second

var errEmptyCommand = errors.New("server command is empty")

// Exec runs an external server command inside the activated context.
type Exec struct {
	logger    *zap.Logger
	stdout    io.Writer
	stderr    io.Writer
	waitDelay time.Duration
}

// NewExec creates the external command driver. The child inherits stdout and
// stderr.
func NewExec(logger *zap.Logger) *Exec {
	return &Exec{
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		waitDelay: DefaultWaitDelay,
	}
}

// Command splits the configured command line with shell quoting rules and
// expands $VARS in each word against the exported configuration, falling back
// to the process environment.
func Command(cfg launcher.Config) ([]string, error) {
	exports := cfg.Exports()
	lookup := func(key string) string {
		if v, ok := exports[key]; ok {
			return v
		}
		return os.Getenv(key)
	}

	fields, err := shellwords.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	for i, f := range fields {
		fields[i] = os.Expand(f, lookup)
	}
	return fields, nil
}

// Serve checks that host:port is free, then runs the command until it exits or
// ctx is done. Cancellation interrupts the child; its exit is then treated as
// a clean shutdown.
func (s *Exec) Serve(ctx context.Context, cfg launcher.Config, ready func()) error {
	if ctx.Err() != nil {
		return nil
	}

	args, err := Command(cfg)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errEmptyCommand
	}

	// The child binds the port itself; probe it so a busy port fails before
	// anything is spawned.
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	_ = ln.Close()

	path, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Errorf("locate %s: %w", args[0], err)
	}

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Env = os.Environ()
	for k, v := range cfg.Exports() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = s.waitDelay

	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	s.logger.Info("Server process started", zap.String("command", path), zap.Int("pid", cmd.Process.Pid))
	ready()

	err = cmd.Wait()
	if ctx.Err() != nil {
		s.logger.Info("Server process stopped", zap.NamedError("exit", err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	return nil
}
