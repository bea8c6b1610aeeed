package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/filter"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var outputFormat = outputText

// printResult writes v as indented JSON with --output json, or through
// text otherwise.
func printResult(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if outputFormat == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

var legacyStatus = map[string]string{
	"4":  "loved",
	"3":  "qualified",
	"2":  "approved",
	"1":  "ranked",
	"0":  "pending",
	"-1": "wip",
	"-2": "graveyard",
}

func printBeatmapsV1(w io.Writer, beatmaps []apiv1.Beatmap) {
	fmt.Fprintln(w, "ID\tSET\tMODE\tSTARS\tSTATUS\tBEATMAP")
	for _, bm := range beatmaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s - %s [%s]\n",
			bm.BeatmapID, bm.BeatmapsetID, bm.Mode, trimFloat(bm.DifficultyRating, 2),
			legacyStatus[bm.Approved], bm.Artist, bm.Title, bm.Version)
	}
}

func printUserV1(w io.Writer, u *apiv1.User) {
	fmt.Fprintf(w, "User:\t%s (%s)\n", u.Username, u.UserID)
	fmt.Fprintf(w, "Country:\t%s (#%s)\n", u.Country, u.PPCountryRank)
	fmt.Fprintf(w, "Rank:\t#%s\n", u.PPRank)
	fmt.Fprintf(w, "PP:\t%s\n", trimFloat(u.PPRaw, 2))
	fmt.Fprintf(w, "Accuracy:\t%s%%\n", trimFloat(u.Accuracy, 2))
	fmt.Fprintf(w, "Level:\t%s\n", trimFloat(u.Level, 1))
	fmt.Fprintf(w, "Play count:\t%s\n", u.Playcount)
	if len(u.Events) > 0 {
		fmt.Fprintln(w, "Events:")
		for _, e := range u.Events {
			fmt.Fprintf(w, "  %s\t%s\n", e.Date, stripTags(e.DisplayHTML))
		}
	}
}

func printRecordsV1(w io.Writer, records []apiv1.GameRecord) {
	fmt.Fprintln(w, "BEATMAP\tSCORE\tPP\tRANK\tMODS\tCOMBO\tMISSES\tDATE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.BeatmapID, r.Score, trimFloat(r.PP, 2), r.Rank, r.Mods(), r.MaxCombo, r.CountMiss, r.Date)
	}
}

func printScoresV1(w io.Writer, scores []apiv1.Score) {
	fmt.Fprintln(w, "#\tPLAYER\tSCORE\tPP\tRANK\tMODS\tCOMBO\tMISSES\tDATE")
	for i, s := range scores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, s.Username, s.Score, trimFloat(s.PP, 2), s.Rank, s.Mods(), s.MaxCombo, s.CountMiss, s.Date)
	}
}

func printMatchV1(w io.Writer, m *apiv1.MatchRoom) {
	end := "in progress"
	if m.Match.EndTime != nil {
		end = *m.Match.EndTime
	}
	fmt.Fprintf(w, "Match:\t%s (%s)\n", m.Match.Name, m.Match.MatchID)
	fmt.Fprintf(w, "Played:\t%s - %s\n", m.Match.StartTime, end)
	fmt.Fprintf(w, "Games:\t%d\n", len(m.Games))
	for _, g := range m.Games {
		printGameV1(w, &g)
	}
}

func printGameV1(w io.Writer, g *apiv1.Game) {
	fmt.Fprintf(w, "\nGame %s\tbeatmap %s\tmods %s\n", g.GameID, g.BeatmapID, g.GlobalMods())
	fmt.Fprintln(w, "  SLOT\tPLAYER\tSCORE\tCOMBO\tMISSES\tPASS")
	for _, s := range g.Scores {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n", s.Slot, s.UserID, s.Score, s.MaxCombo, s.CountMiss, s.Pass)
	}
}

func printBeatmapV2(w io.Writer, bm *apiv2.Beatmap) {
	title := bm.Version
	if bm.Beatmapset != nil {
		title = fmt.Sprintf("%s - %s [%s] (%s)", bm.Beatmapset.Artist, bm.Beatmapset.Title, bm.Version, bm.Beatmapset.Creator)
	}
	fmt.Fprintf(w, "Beatmap:\t%s\n", title)
	fmt.Fprintf(w, "ID:\t%d (set %d)\n", bm.ID, bm.BeatmapsetID)
	fmt.Fprintf(w, "Mode:\t%s\n", bm.Mode)
	fmt.Fprintf(w, "Status:\t%s\n", bm.Status)
	fmt.Fprintf(w, "Stars:\t%.2f\n", bm.DifficultyRating)
	fmt.Fprintf(w, "CS/AR/OD/HP:\t%.1f/%.1f/%.1f/%.1f\n", bm.CS, bm.AR, bm.Accuracy, bm.Drain)
	fmt.Fprintf(w, "BPM:\t%.0f\n", bm.BPM)
	fmt.Fprintf(w, "Length:\t%d:%02d\n", bm.TotalLength/60, bm.TotalLength%60)
	fmt.Fprintf(w, "Max combo:\t%d\n", bm.MaxCombo)
	fmt.Fprintf(w, "URL:\t%s\n", bm.URL)
}

func printScoresV2(w io.Writer, scores []apiv2.Score) {
	fmt.Fprintln(w, "#\tPLAYER\tSCORE\tPP\tACC\tRANK\tMODS\tCOMBO\tMISSES\tDATE")
	for i, s := range scores {
		player := fmt.Sprint(s.UserID)
		if s.User != nil {
			player = s.User.Username
		}
		pp := "-"
		if s.PP != nil {
			pp = fmt.Sprintf("%.2f", *s.PP)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.2f%%\t%s\t%s\t%d\t%d\t%s\n",
			i+1, player, s.Score, pp, s.Accuracy*100, s.Rank, s.ModList(), s.MaxCombo,
			s.Statistics.CountMiss, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// trimFloat shortens a decimal string to prec fraction digits.
func trimFloat(s string, prec int) string {
	var f float64
	if _, err := fmt.Sscan(s, &f); err != nil {
		return s
	}
	return fmt.Sprintf("%.*f", prec, f)
}

// stripTags drops the markup from a legacy event's display_html.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// applyFilter narrows records with a --filter expression. An empty
// expression keeps every record.
func applyFilter[T any](cmd *cobra.Command, expression string, records []T, view func(T) filter.Score) ([]T, error) {
	if expression == "" {
		return records, nil
	}
	f, err := filter.NewExprCompiler().Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	matched, err := filter.Select(cmd.Context(), filter.NewConcurrentEvaluator(), f, records, view)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("filter", f.Expression()).Int("total", len(records)).Int("matched", len(matched)).Msg("Filter applied")
	return matched, nil
}
