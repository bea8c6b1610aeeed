package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/filter"
	"github.com/rcoplo/osu-api-go/osu"
	"github.com/rcoplo/osu-api-go/tokencache"
)

var (
	checksumFlag string
	filenameFlag string
	allFlag      bool
	typeFlag     string
	showToken    bool
	clearToken   bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [beatmap-id]",
	Short: "Look up a beatmap by id, checksum or file name (v2)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLookup,
}

var userScoreCmd = &cobra.Command{
	Use:   "user-score <beatmap-id> <user-id>",
	Short: "Show a player's best score on a beatmap (v2)",
	Long: `Show a player's best score on a beatmap, with its leaderboard position.
With --all, every score the player holds on the beatmap is listed instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runUserScore,
}

var topCmd = &cobra.Command{
	Use:   "top <beatmap-id>",
	Short: "Show a beatmap leaderboard (v2)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTop,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint or show the cached v2 access token",
	Long: `Obtain a v2 access token, from the Redis token cache when one is configured
and still valid, or by minting a new one with the client-credentials grant.

The token itself is only printed with --show.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(lookupCmd, userScoreCmd, topCmd, tokenCmd)

	lookupCmd.Flags().StringVar(&checksumFlag, "checksum", "", "beatmap .osu MD5 checksum")
	lookupCmd.Flags().StringVar(&filenameFlag, "filename", "", "beatmap .osu file name")

	userScoreCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	userScoreCmd.Flags().StringVar(&modsFlag, "mods", "", "only scores with these mods, e.g. HDDT")
	userScoreCmd.Flags().BoolVar(&allFlag, "all", false, "list every score of the player on the beatmap")
	userScoreCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "filter expression (with --all)")

	topCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	topCmd.Flags().StringVar(&modsFlag, "mods", "", "only scores with these mods")
	topCmd.Flags().StringVar(&typeFlag, "type", "", "leaderboard type (global, country, friend)")
	topCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "filter expression")

	tokenCmd.Flags().BoolVar(&showToken, "show", false, "print the access token")
	tokenCmd.Flags().BoolVar(&clearToken, "clear", false, "drop the cached token first")
}

func runLookup(cmd *cobra.Command, args []string) error {
	var q apiv2.LookupQuery
	if len(args) == 1 {
		id, err := parseID(args[0], "beatmap id")
		if err != nil {
			return err
		}
		q.ID = &id
	}
	if checksumFlag != "" {
		q.Checksum = &checksumFlag
	}
	if filenameFlag != "" {
		q.Filename = &filenameFlag
	}
	if q.ID == nil && q.Checksum == nil && q.Filename == nil {
		return fmt.Errorf("give a beatmap id, --checksum or --filename")
	}

	client, err := newV2Client(cmd.Context())
	if err != nil {
		return err
	}
	bm, err := client.LookupBeatmap(cmd.Context(), q)
	if err != nil {
		return err
	}
	return printResult(cmd, bm, func(w io.Writer) { printBeatmapV2(w, bm) })
}

func runUserScore(cmd *cobra.Command, args []string) error {
	beatmapID, err := parseID(args[0], "beatmap id")
	if err != nil {
		return err
	}
	userID, err := parseID(args[1], "user id")
	if err != nil {
		return err
	}
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	mods, err := osu.ParseMods(modsFlag)
	if err != nil {
		return err
	}
	q := apiv2.ScoreQuery{Mode: mode, Mods: mods}

	client, err := newV2Client(cmd.Context())
	if err != nil {
		return err
	}

	if allFlag {
		scores, err := client.GetUserBeatmapScores(cmd.Context(), beatmapID, userID, q)
		if err != nil {
			return err
		}
		scores, err = applyFilter(cmd, filterFlag, scores, filter.FromV2Score)
		if err != nil {
			return err
		}
		return printResult(cmd, scores, func(w io.Writer) { printScoresV2(w, scores) })
	}

	score, err := client.GetUserBeatmapScore(cmd.Context(), beatmapID, userID, q)
	if err != nil {
		return err
	}
	return printResult(cmd, score, func(w io.Writer) {
		fmt.Fprintf(w, "Position:\t#%d\n", score.Position)
		printScoresV2(w, []apiv2.Score{score.Score})
	})
}

func runTop(cmd *cobra.Command, args []string) error {
	beatmapID, err := parseID(args[0], "beatmap id")
	if err != nil {
		return err
	}
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	mods, err := osu.ParseMods(modsFlag)
	if err != nil {
		return err
	}
	q := apiv2.BeatmapScoresQuery{Mode: mode, Mods: mods}
	if typeFlag != "" {
		q.Type = &typeFlag
	}

	client, err := newV2Client(cmd.Context())
	if err != nil {
		return err
	}
	board, err := client.GetBeatmapScores(cmd.Context(), beatmapID, q)
	if err != nil {
		return err
	}
	scores, err := applyFilter(cmd, filterFlag, board.Scores, filter.FromV2Score)
	if err != nil {
		return err
	}
	return printResult(cmd, scores, func(w io.Writer) { printScoresV2(w, scores) })
}

func runToken(cmd *cobra.Command, args []string) error {
	if clearToken && cfg.TokenCache.Enabled() {
		store := tokencache.New(cfg.TokenCache.RedisAddr, cfg.TokenCache.RedisPassword, cfg.TokenCache.RedisDB, cfg.TokenCache.Key)
		err := store.Clear(cmd.Context())
		store.Close()
		if err != nil {
			return err
		}
		logger.Info().Msg("Cached token cleared")
	}

	cred, err := obtainCredential(cmd.Context())
	if err != nil {
		return err
	}

	summary := struct {
		TokenType   string    `json:"token_type"`
		ExpiresAt   time.Time `json:"expires_at"`
		TTLSeconds  int64     `json:"ttl_seconds"`
		AccessToken string    `json:"access_token,omitempty"`
	}{
		TokenType:  cred.TokenType,
		ExpiresAt:  cred.ExpiresAt(),
		TTLSeconds: int64(cred.TTL().Seconds()),
	}
	if showToken {
		summary.AccessToken = cred.AccessToken
	}

	return printResult(cmd, summary, func(w io.Writer) {
		fmt.Fprintf(w, "Type:\t%s\n", summary.TokenType)
		fmt.Fprintf(w, "Expires:\t%s (in %s)\n", summary.ExpiresAt.Local().Format(time.RFC3339), cred.TTL().Round(time.Second))
		if showToken {
			fmt.Fprintf(w, "Token:\t%s\n", summary.AccessToken)
		}
	})
}
