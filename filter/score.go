package filter

import (
	"strconv"
	"time"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/osu"
)

// legacyDateLayout is the UTC timestamp format of the legacy API.
const legacyDateLayout = "2006-01-02 15:04:05"

// Score is the typed view of a play that filters run against. Legacy
// records carry numbers as strings; the view holds them converted.
type Score struct {
	ScoreID   int64
	BeatmapID int64
	UserID    int64
	Score     int64
	MaxCombo  int64
	Count300  int
	Count100  int
	Count50   int
	CountMiss int
	CountKatu int
	CountGeki int
	Perfect   bool
	Passed    bool
	Rank      string
	PP        float64
	Accuracy  float64 // 0..1
	Mods      osu.Mods
	Date      time.Time
	Mode      osu.Mode

	pos int
}

// FromV1Score builds the view of a get_scores record. The legacy API does
// not report the mode or the beatmap on these records, so both come from
// the caller.
func FromV1Score(s apiv1.Score, beatmapID int64, mode osu.Mode) Score {
	v := Score{
		ScoreID:   parseInt(s.ScoreID),
		BeatmapID: beatmapID,
		UserID:    parseInt(s.UserID),
		Score:     parseInt(s.Score),
		MaxCombo:  parseInt(s.MaxCombo),
		Count300:  int(parseInt(s.Count300)),
		Count100:  int(parseInt(s.Count100)),
		Count50:   int(parseInt(s.Count50)),
		CountMiss: int(parseInt(s.CountMiss)),
		CountKatu: int(parseInt(s.CountKatu)),
		CountGeki: int(parseInt(s.CountGeki)),
		Perfect:   s.Perfect == "1",
		Rank:      s.Rank,
		PP:        parseFloat(s.PP),
		Mods:      s.Mods(),
		Date:      parseDate(s.Date),
		Mode:      mode,
	}
	v.Passed = v.Rank != "F"
	v.Accuracy = accuracy(v)
	return v
}

// FromV1GameRecord builds the view of a get_user_best or get_user_recent
// record, which names its beatmap.
func FromV1GameRecord(r apiv1.GameRecord, mode osu.Mode) Score {
	v := FromV1Score(apiv1.Score{
		ScoreID:     r.ScoreID,
		Score:       r.Score,
		MaxCombo:    r.MaxCombo,
		Count50:     r.Count50,
		Count100:    r.Count100,
		Count300:    r.Count300,
		CountMiss:   r.CountMiss,
		CountKatu:   r.CountKatu,
		CountGeki:   r.CountGeki,
		Perfect:     r.Perfect,
		EnabledMods: r.EnabledMods,
		UserID:      r.UserID,
		Date:        r.Date,
		Rank:        r.Rank,
		PP:          r.PP,
	}, parseInt(r.BeatmapID), mode)
	return v
}

// FromV2Score builds the view of a modern score. A nil pp counts as zero.
func FromV2Score(s apiv2.Score) Score {
	v := Score{
		ScoreID:   s.ID,
		UserID:    s.UserID,
		Score:     s.Score,
		MaxCombo:  s.MaxCombo,
		Count300:  s.Statistics.Count300,
		Count100:  s.Statistics.Count100,
		Count50:   s.Statistics.Count50,
		CountMiss: s.Statistics.CountMiss,
		CountKatu: s.Statistics.CountKatu,
		CountGeki: s.Statistics.CountGeki,
		Perfect:   s.Perfect,
		Passed:    s.Passed,
		Rank:      s.Rank,
		Accuracy:  s.Accuracy,
		Mods:      s.ModList(),
		Date:      s.CreatedAt,
		Mode:      osu.Mode(s.ModeInt),
	}
	if s.PP != nil {
		v.PP = *s.PP
	}
	if s.Beatmap != nil {
		v.BeatmapID = s.Beatmap.ID
	}
	return v
}

// accuracy computes the hit accuracy the way each mode's results screen
// does. Plays without any judgement score zero.
func accuracy(s Score) float64 {
	n300, n100, n50 := float64(s.Count300), float64(s.Count100), float64(s.Count50)
	miss, katu, geki := float64(s.CountMiss), float64(s.CountKatu), float64(s.CountGeki)

	var hit, total float64
	switch s.Mode {
	case osu.ModeTaiko:
		hit, total = n300+0.5*n100, n300+n100+miss
	case osu.ModeFruits:
		hit, total = n300+n100+n50, n300+n100+n50+katu+miss
	case osu.ModeMania:
		hit = 300*(geki+n300) + 200*katu + 100*n100 + 50*n50
		total = 300 * (geki + n300 + katu + n100 + n50 + miss)
	default:
		hit = 300*n300 + 100*n100 + 50*n50
		total = 300 * (n300 + n100 + n50 + miss)
	}
	if total == 0 {
		return 0
	}
	return hit / total
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(legacyDateLayout, s)
	return t
}
