package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/LegalSpend-Research/internal/interfaces/http"
)

// NewServeCmd runs the HTTP API in the foreground until the command context
// is cancelled.  The --timeout flag does not apply.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the research API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.Server
			if port > 0 {
				cfg.Port = port
			}
			gin.SetMode(cfg.Mode)

			cliCtx.Logger.Info("serving research API",
				logging.Int("http_port", cfg.Port),
				logging.Bool("metrics", cliCtx.Config.Metrics.Enabled),
			)
			srv := httpserver.NewServer(cfg, cliCtx.Engine.Handler(Version), cliCtx.Logger)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides the config)")
	return cmd
}
