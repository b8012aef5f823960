package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dev-launcher/core/launcher"
	"dev-launcher/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dev-launcher",
	Short: "Development server launcher",
	Long: `dev-launcher activates the project's execution context, exports the
APP_* configuration and starts a development server on APP_HOST:APP_PORT.

The server is insecure and single process. Do not use it in production.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd.Context())
	},
}

// Execute runs the CLI and exits with the code matching the error kind.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(err)
	}
	os.Exit(launcher.ExitCode(err))
}

// reportError logs err with a console logger; we use "debug" level
// configuration to get ISO8601 timestamps.
func reportError(err error) {
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		// Absolute fallback if logger creation fails (rare)
		fmt.Fprintln(os.Stderr, err)
		return
	}
	l.Error("launch failed", zap.Error(err), zap.Int("exit_code", launcher.ExitCode(err)))
	_ = l.Sync()
}
