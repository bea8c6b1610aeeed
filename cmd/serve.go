package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/server"
	"github.com/rcoplo/osu-api-go/tokencache"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	Long: `Serve the configured APIs over HTTP until interrupted.

The /v1 routes need v1.api_key and the /v2 routes an OAuth application;
routes of an unconfigured API answer 503. The v2 token is renewed a
minute before it expires. Client metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{server.WithGatherer(registry)}

	if cfg.RequireV1() == nil {
		v1, err := newV1Client()
		if err != nil {
			return err
		}
		opts = append(opts, server.WithV1(v1))
	} else {
		logger.Warn().Msg("v1.api_key not set, /v1 routes disabled")
	}

	if cfg.RequireV2() == nil {
		v2, err := newV2Client(ctx)
		if err != nil {
			return err
		}
		renew := func(ctx context.Context) (apiv2.Credential, error) {
			return obtainCredential(ctx)
		}
		opts = append(opts, server.WithV2(apiv2.NewRenewingClient(v2, renew, tokencache.DefaultMargin)))
	} else {
		logger.Warn().Msg("v2 client credentials not set, /v2 routes disabled")
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	return server.New(logger, opts...).Run(ctx, addr)
}
