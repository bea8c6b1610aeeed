package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/config"
	"github.com/rcoplo/osu-api-go/metrics"
	"github.com/rcoplo/osu-api-go/tokencache"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	logLevel string

	// registry collects the client metrics served by the gateway
	registry = prometheus.NewRegistry()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "osu-api",
	Short: "Query the osu! web API from the command line",
	Long: `osu-api queries both generations of the osu! web API.

The legacy v1 API needs an API key (v1.api_key). The modern v2 API needs an
OAuth application (v2.client_id and v2.client_secret); tokens are minted with
the client-credentials grant and, when token_cache.redis_addr is set, shared
through Redis until they expire.

Secrets are read from the config file, OSU_* environment variables or the
OS keyring (see 'osu-api config set-secret').`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information shown by --version.
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.config/osu-api/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputText, "output format (text or json)")
}

// initializeApp loads the configuration and sets up logging. API clients
// are created by the commands that need them.
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != outputText && outputFormat != outputJSON {
		return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", outputFormat)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, without colour when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newHTTPClient builds the client shared by both API generations. Every
// attempt, retries included, is recorded into registry.
func newHTTPClient() (*http.Client, error) {
	timeout, err := cfg.HTTP.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	transport, err := metrics.NewTransport(cleanhttp.DefaultPooledTransport(), registry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up request metrics: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: transport, Timeout: timeout}
	rc.RetryMax = cfg.HTTP.Retries
	rc.Logger = nil
	// Hand the last response back so its status still reaches the caller.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return rc.StandardClient(), nil
}

func newV1Client() (*apiv1.Client, error) {
	if err := cfg.RequireV1(); err != nil {
		return nil, err
	}
	hc, err := newHTTPClient()
	if err != nil {
		return nil, err
	}

	return apiv1.NewClient(cfg.V1.APIKey, logger,
		apiv1.WithBaseURL(cfg.V1.BaseURL),
		apiv1.WithUserAgent(cfg.HTTP.UserAgent),
		apiv1.WithHTTPClient(hc),
	)
}

func v2Options(hc *http.Client) []apiv2.Option {
	return []apiv2.Option{
		apiv2.WithBaseURL(cfg.V2.BaseURL),
		apiv2.WithTokenURL(cfg.V2.TokenURL),
		apiv2.WithUserAgent(cfg.HTTP.UserAgent),
		apiv2.WithHTTPClient(hc),
	}
}

// obtainCredential returns a cached v2 token or mints one.
func obtainCredential(ctx context.Context) (apiv2.Credential, error) {
	if err := cfg.RequireV2(); err != nil {
		return apiv2.Credential{}, err
	}
	hc, err := newHTTPClient()
	if err != nil {
		return apiv2.Credential{}, err
	}

	var store tokencache.Store
	if cfg.TokenCache.Enabled() {
		redisStore := tokencache.New(cfg.TokenCache.RedisAddr, cfg.TokenCache.RedisPassword, cfg.TokenCache.RedisDB, cfg.TokenCache.Key)
		defer redisStore.Close()
		store = redisStore
	}

	return tokencache.Obtain(ctx, store, func(ctx context.Context) (apiv2.Credential, error) {
		logger.Debug().Msg("Requesting a new token")
		return apiv2.RequestToken(ctx, cfg.V2.ClientID, cfg.V2.ClientSecret, v2Options(hc)...)
	}, logger)
}

func newV2Client(ctx context.Context) (*apiv2.Client, error) {
	cred, err := obtainCredential(ctx)
	if err != nil {
		return nil, err
	}
	hc, err := newHTTPClient()
	if err != nil {
		return nil, err
	}
	return apiv2.NewClient(cred, logger, v2Options(hc)...)
}
