package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhi11j/CodeCatalyst/internal/config"
	"github.com/abhi11j/CodeCatalyst/internal/logging"
	"github.com/abhi11j/CodeCatalyst/internal/server"
)

var (
	flagHost string
	flagPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		if flagHost != "" {
			cfg.Host = flagHost
		}
		if flagPort != 0 {
			cfg.Port = flagPort
		}

		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		logger := logging.WithComponent("server")

		srv := server.New(cfg,
			server.NewScannerFactory(cfg, logging.WithComponent("scan")),
			server.NewApplierFactory(cfg, logging.WithComponent("apply")),
			logger,
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Bind address (overrides CATALYST_HOST)")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Listen port (overrides CATALYST_PORT)")
}
