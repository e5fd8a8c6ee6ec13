package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/herodex/internal/server"
	"github.com/rshade/herodex/internal/tui"
)

// NewServeCmd creates the JSON proxy command.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the character catalog as a JSON API",
		Long: `Runs a JSON proxy in front of the Marvel API so that clients never see the
API key. Routes: GET /api/characters?offset=N, GET /api/characters/:id,
GET /api/characters/random and GET /healthz.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(client, server.Options{
				Logger: logger,
				PickID: tui.NewRangePicker(cfg.UI.RandomMinID, cfg.UI.RandomMaxID),
			})
			cmd.Printf("Serving on http://%s\n", addr)
			return srv.Start(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}
