package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/filter"
	"github.com/rcoplo/osu-api-go/osu"
)

// maxConcurrentLookups bounds parallel requests from a single command
const maxConcurrentLookups = 4

var (
	modeFlag      string
	modsFlag      string
	limitFlag     int16
	filterFlag    string
	userFlag      string
	eventDays     int8
	nthFlag       int
	latestFlag    bool
	replayOut     string
	sinceFlag     string
	setFlag       int64
	hashFlag      string
	convertedFlag bool
)

var beatmapCmd = &cobra.Command{
	Use:   "beatmap <id>...",
	Short: "Show one or more beatmap difficulties (v1)",
	Long: `Fetch beatmap difficulties by id. Several ids are fetched concurrently.

With --user, the difficulty is only shown when that player created it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBeatmap,
}

var beatmapsCmd = &cobra.Command{
	Use:   "beatmaps",
	Short: "Search beatmaps with the full get_beatmaps query (v1)",
	Args:  cobra.NoArgs,
	RunE:  runBeatmaps,
}

var beatmapsetCmd = &cobra.Command{
	Use:   "beatmapset <set-id>",
	Short: "List the difficulties of a beatmap set (v1)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBeatmapset,
}

var userCmd = &cobra.Command{
	Use:   "user <user>",
	Short: "Show a player profile (v1)",
	Long: `Show a player profile. <user> is an id or a name; prefix a name made only of
digits with "@", e.g. @727.`,
	Args: cobra.ExactArgs(1),
	RunE: runUser,
}

var scoresCmd = &cobra.Command{
	Use:   "scores <beatmap-id> [user]",
	Short: "Show a beatmap leaderboard, optionally for one player (v1)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runScores,
}

var scoreCmd = &cobra.Command{
	Use:   "score <beatmap-id> <user>",
	Short: "Show a player's top score on a beatmap (v1)",
	Args:  cobra.ExactArgs(2),
	RunE:  runScore,
}

var bestCmd = &cobra.Command{
	Use:   "best <user>",
	Short: "Show a player's top plays (v1)",
	Long: `Show a player's top plays, best first.

--nth N shows only the N-th best play. --filter narrows the list with an
expression, for example:

  osu-api best peppy --filter 'pp > 200 && hasMod("HD")'
  osu-api best peppy --filter 'rankAtLeast("S") && accuracy > 99'`,
	Args: cobra.ExactArgs(1),
	RunE: runBest,
}

var recentCmd = &cobra.Command{
	Use:   "recent <user>",
	Short: "Show a player's plays from the last 24 hours (v1)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecent,
}

var matchCmd = &cobra.Command{
	Use:   "match <match-id>",
	Short: "Show a multiplayer match (v1)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

var replayCmd = &cobra.Command{
	Use:   "replay <beatmap-id> <user>",
	Short: "Download replay data for a player's score (v1)",
	Long: `Download the LZMA replay stream of a player's top score on a beatmap.

The data is written to --out, or reported by size when no file is given.
The legacy API allows about ten replay requests per minute.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(beatmapCmd, beatmapsCmd, beatmapsetCmd, userCmd, scoresCmd, scoreCmd, bestCmd, recentCmd, matchCmd, replayCmd)

	beatmapCmd.Flags().StringVar(&userFlag, "user", "", "only show difficulties created by this player")

	beatmapsCmd.Flags().StringVar(&sinceFlag, "since", "", "only beatmaps ranked or loved since this UTC date (YYYY-MM-DD)")
	beatmapsCmd.Flags().Int64Var(&setFlag, "set", 0, "beatmap set id")
	beatmapsCmd.Flags().StringVar(&userFlag, "user", "", "creator id or name")
	beatmapsCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode (osu, taiko, fruits, mania or 0-3)")
	beatmapsCmd.Flags().BoolVar(&convertedFlag, "converted", false, "include converted beatmaps (needs --mode)")
	beatmapsCmd.Flags().StringVar(&hashFlag, "hash", "", "beatmap .osu checksum")
	beatmapsCmd.Flags().Int16Var(&limitFlag, "limit", 0, "maximum results (service default 500)")
	beatmapsCmd.Flags().StringVar(&modsFlag, "mods", "", "mods affecting difficulty, e.g. HRDT")

	userCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	userCmd.Flags().Int8Var(&eventDays, "event-days", 0, "include events from the last 1-31 days")

	scoresCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	scoresCmd.Flags().StringVar(&modsFlag, "mods", "", "only scores with exactly these mods")
	scoresCmd.Flags().Int16Var(&limitFlag, "limit", 0, "maximum results (1-100)")
	scoresCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "filter expression")

	scoreCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode (default osu)")

	bestCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	bestCmd.Flags().Int16Var(&limitFlag, "limit", 0, "maximum results (1-100)")
	bestCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "filter expression")
	bestCmd.Flags().IntVar(&nthFlag, "nth", 0, "show only the n-th best play")

	recentCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode")
	recentCmd.Flags().Int16Var(&limitFlag, "limit", 0, "maximum results (1-50)")
	recentCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "filter expression")
	recentCmd.Flags().BoolVar(&latestFlag, "latest", false, "show only the most recent play")

	matchCmd.Flags().BoolVar(&latestFlag, "latest", false, "show only the last game played")

	replayCmd.Flags().StringVar(&modeFlag, "mode", "", "game mode (default osu)")
	replayCmd.Flags().StringVar(&replayOut, "out", "", "write the replay stream to this file")
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s: %q", what, arg)
	}
	return id, nil
}

// optionalMode returns nil when --mode was not given.
func optionalMode() (*osu.Mode, error) {
	if modeFlag == "" {
		return nil, nil
	}
	m, err := osu.ParseMode(modeFlag)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// modeOrDefault is optionalMode for calls that need a mode, defaulting to
// osu!standard.
func modeOrDefault() (osu.Mode, error) {
	m, err := optionalMode()
	if err != nil || m == nil {
		return osu.ModeOsu, err
	}
	return *m, nil
}

func optionalLimit(cmd *cobra.Command) *int16 {
	if !cmd.Flags().Changed("limit") {
		return nil
	}
	return &limitFlag
}

func runBeatmap(cmd *cobra.Command, args []string) error {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg, "beatmap id")
		if err != nil {
			return err
		}
		ids[i] = id
	}

	client, err := newV1Client()
	if err != nil {
		return err
	}

	beatmaps := make([]apiv1.Beatmap, len(ids))
	var mu sync.Mutex
	var missing []int64

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentLookups)
	for i, id := range ids {
		g.Go(func() error {
			var bm *apiv1.Beatmap
			var err error
			if userFlag != "" {
				bm, err = client.GetBeatmapForUser(ctx, id, osu.ParseUserRef(userFlag))
			} else {
				bm, err = client.GetBeatmap(ctx, id)
			}
			if osu.Classify(err) == osu.KindNoData {
				mu.Lock()
				missing = append(missing, id)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("beatmap %d: %w", id, err)
			}
			beatmaps[i] = *bm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, id := range missing {
		logger.Warn().Int64("beatmap_id", id).Msg("Beatmap not found")
	}
	found := beatmaps[:0]
	for _, bm := range beatmaps {
		if bm.BeatmapID != "" {
			found = append(found, bm)
		}
	}
	if len(found) == 0 {
		return fmt.Errorf("no beatmaps found")
	}

	return printResult(cmd, found, func(w io.Writer) { printBeatmapsV1(w, found) })
}

func runBeatmaps(cmd *cobra.Command, args []string) error {
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	mods, err := osu.ParseMods(modsFlag)
	if err != nil {
		return err
	}

	q := apiv1.BeatmapsQuery{Mode: mode, Limit: optionalLimit(cmd), Mods: mods}
	if sinceFlag != "" {
		q.Since = &sinceFlag
	}
	if setFlag > 0 {
		q.SetID = &setFlag
	}
	if userFlag != "" {
		q.User = osu.ParseUserRef(userFlag)
	}
	if cmd.Flags().Changed("converted") {
		q.IncludeConverted = &convertedFlag
	}
	if hashFlag != "" {
		q.Hash = &hashFlag
	}

	client, err := newV1Client()
	if err != nil {
		return err
	}
	beatmaps, err := client.GetBeatmaps(cmd.Context(), q)
	if err != nil {
		return err
	}
	return printResult(cmd, beatmaps, func(w io.Writer) { printBeatmapsV1(w, beatmaps) })
}

func runBeatmapset(cmd *cobra.Command, args []string) error {
	setID, err := parseID(args[0], "beatmap set id")
	if err != nil {
		return err
	}
	client, err := newV1Client()
	if err != nil {
		return err
	}

	beatmaps, err := client.GetBeatmapSet(cmd.Context(), setID)
	if err != nil {
		return err
	}
	return printResult(cmd, beatmaps, func(w io.Writer) { printBeatmapsV1(w, beatmaps) })
}

func runUser(cmd *cobra.Command, args []string) error {
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	q := apiv1.UserQuery{Mode: mode}
	if cmd.Flags().Changed("event-days") {
		q.EventDays = &eventDays
	}

	client, err := newV1Client()
	if err != nil {
		return err
	}
	u, err := client.GetUser(cmd.Context(), osu.ParseUserRef(args[0]), q)
	if err != nil {
		return err
	}
	return printResult(cmd, u, func(w io.Writer) { printUserV1(w, u) })
}

func runScores(cmd *cobra.Command, args []string) error {
	beatmapID, err := parseID(args[0], "beatmap id")
	if err != nil {
		return err
	}
	var user osu.UserRef
	if len(args) == 2 {
		user = osu.ParseUserRef(args[1])
	}
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	mods, err := osu.ParseMods(modsFlag)
	if err != nil {
		return err
	}

	client, err := newV1Client()
	if err != nil {
		return err
	}
	scores, err := client.GetScores(cmd.Context(), beatmapID, user, apiv1.ScoresQuery{Mode: mode, Mods: mods, Limit: optionalLimit(cmd)})
	if err != nil {
		return err
	}

	viewMode := osu.ModeOsu
	if mode != nil {
		viewMode = *mode
	}
	scores, err = applyFilter(cmd, filterFlag, scores, func(s apiv1.Score) filter.Score {
		return filter.FromV1Score(s, beatmapID, viewMode)
	})
	if err != nil {
		return err
	}
	return printResult(cmd, scores, func(w io.Writer) { printScoresV1(w, scores) })
}

func runScore(cmd *cobra.Command, args []string) error {
	beatmapID, err := parseID(args[0], "beatmap id")
	if err != nil {
		return err
	}
	mode, err := modeOrDefault()
	if err != nil {
		return err
	}

	client, err := newV1Client()
	if err != nil {
		return err
	}
	score, err := client.GetScore(cmd.Context(), beatmapID, osu.ParseUserRef(args[1]), mode)
	if err != nil {
		return err
	}
	return printResult(cmd, score, func(w io.Writer) { printScoresV1(w, []apiv1.Score{*score}) })
}

func runBest(cmd *cobra.Command, args []string) error {
	user := osu.ParseUserRef(args[0])
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	client, err := newV1Client()
	if err != nil {
		return err
	}

	if nthFlag > 0 {
		m, _ := modeOrDefault()
		record, err := client.GetUserBestAt(cmd.Context(), user, m, nthFlag)
		if err != nil {
			return err
		}
		return printResult(cmd, record, func(w io.Writer) { printRecordsV1(w, []apiv1.GameRecord{*record}) })
	}

	records, err := client.GetUserBest(cmd.Context(), user, apiv1.ListQuery{Mode: mode, Limit: optionalLimit(cmd)})
	if err != nil {
		return err
	}
	return printRecords(cmd, records, mode)
}

func runRecent(cmd *cobra.Command, args []string) error {
	user := osu.ParseUserRef(args[0])
	mode, err := optionalMode()
	if err != nil {
		return err
	}
	client, err := newV1Client()
	if err != nil {
		return err
	}

	if latestFlag {
		m, _ := modeOrDefault()
		record, err := client.GetUserMostRecent(cmd.Context(), user, m)
		if err != nil {
			return err
		}
		return printResult(cmd, record, func(w io.Writer) { printRecordsV1(w, []apiv1.GameRecord{*record}) })
	}

	records, err := client.GetUserRecent(cmd.Context(), user, apiv1.ListQuery{Mode: mode, Limit: optionalLimit(cmd)})
	if err != nil {
		return err
	}
	return printRecords(cmd, records, mode)
}

func printRecords(cmd *cobra.Command, records []apiv1.GameRecord, mode *osu.Mode) error {
	viewMode := osu.ModeOsu
	if mode != nil {
		viewMode = *mode
	}
	records, err := applyFilter(cmd, filterFlag, records, func(r apiv1.GameRecord) filter.Score {
		return filter.FromV1GameRecord(r, viewMode)
	})
	if err != nil {
		return err
	}
	return printResult(cmd, records, func(w io.Writer) { printRecordsV1(w, records) })
}

func runMatch(cmd *cobra.Command, args []string) error {
	matchID, err := parseID(args[0], "match id")
	if err != nil {
		return err
	}
	client, err := newV1Client()
	if err != nil {
		return err
	}

	if latestFlag {
		game, err := client.GetMatchLatestGame(cmd.Context(), matchID)
		if err != nil {
			return err
		}
		return printResult(cmd, game, func(w io.Writer) { printGameV1(w, game) })
	}

	match, err := client.GetMatch(cmd.Context(), matchID)
	if err != nil {
		return err
	}
	return printResult(cmd, match, func(w io.Writer) { printMatchV1(w, match) })
}

func runReplay(cmd *cobra.Command, args []string) error {
	beatmapID, err := parseID(args[0], "beatmap id")
	if err != nil {
		return err
	}
	mode, err := modeOrDefault()
	if err != nil {
		return err
	}
	client, err := newV1Client()
	if err != nil {
		return err
	}

	replay, err := client.GetReplay(cmd.Context(), beatmapID, osu.ParseUserRef(args[1]), mode)
	if err != nil {
		return err
	}
	data, err := replay.Bytes()
	if err != nil {
		return err
	}

	if replayOut != "" {
		if err := os.WriteFile(replayOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write replay: %w", err)
		}
		logger.Info().Str("file", replayOut).Int("bytes", len(data)).Msg("Replay saved")
	}

	summary := struct {
		Bytes    int    `json:"bytes"`
		Encoding string `json:"encoding"`
		File     string `json:"file,omitempty"`
		Content  string `json:"content,omitempty"`
	}{Bytes: len(data), Encoding: replay.Encoding, File: replayOut}
	if replayOut == "" {
		summary.Content = replay.Content
	}
	return printResult(cmd, summary, func(w io.Writer) {
		fmt.Fprintf(w, "Replay:\t%d bytes (%s)\n", summary.Bytes, summary.Encoding)
		if summary.File != "" {
			fmt.Fprintf(w, "Saved to:\t%s\n", summary.File)
		}
	})
}
