package apiv2

import (
	"encoding/json"
	"time"

	"github.com/rcoplo/osu-api-go/osu"
)

// Beatmap is a difficulty, as returned by beatmaps/lookup.
type Beatmap struct {
	ID               int64       `json:"id"`
	BeatmapsetID     int64       `json:"beatmapset_id"`
	UserID           int64       `json:"user_id"`
	DifficultyRating float64     `json:"difficulty_rating"`
	Mode             string      `json:"mode"`
	ModeInt          int         `json:"mode_int"`
	Status           string      `json:"status"`
	Ranked           int         `json:"ranked"`
	TotalLength      int         `json:"total_length"`
	HitLength        int         `json:"hit_length"`
	Version          string      `json:"version"`
	Accuracy         float64     `json:"accuracy"`
	AR               float64     `json:"ar"`
	CS               float64     `json:"cs"`
	Drain            float64     `json:"drain"`
	BPM              float64     `json:"bpm"`
	Convert          bool        `json:"convert"`
	CountCircles     int         `json:"count_circles"`
	CountSliders     int         `json:"count_sliders"`
	CountSpinners    int         `json:"count_spinners"`
	IsScoreable      bool        `json:"is_scoreable"`
	LastUpdated      time.Time   `json:"last_updated"`
	Passcount        int64       `json:"passcount"`
	Playcount        int64       `json:"playcount"`
	URL              string      `json:"url"`
	Checksum         string      `json:"checksum"`
	MaxCombo         int         `json:"max_combo"`
	Beatmapset       *Beatmapset `json:"beatmapset,omitempty"`
	Failtimes        *Failtimes  `json:"failtimes,omitempty"`
}

// Beatmapset is the set a Beatmap belongs to.
type Beatmapset struct {
	ID                 int64               `json:"id"`
	UserID             int64               `json:"user_id"`
	Artist             string              `json:"artist"`
	ArtistUnicode      string              `json:"artist_unicode"`
	Title              string              `json:"title"`
	TitleUnicode       string              `json:"title_unicode"`
	Creator            string              `json:"creator"`
	Source             string              `json:"source"`
	Tags               string              `json:"tags"`
	Covers             Covers              `json:"covers"`
	FavouriteCount     int64               `json:"favourite_count"`
	PlayCount          int64               `json:"play_count"`
	PreviewURL         string              `json:"preview_url"`
	Status             string              `json:"status"`
	Ranked             int                 `json:"ranked"`
	NSFW               bool                `json:"nsfw"`
	Offset             int                 `json:"offset"`
	Spotlight          bool                `json:"spotlight"`
	Video              bool                `json:"video"`
	Storyboard         bool                `json:"storyboard"`
	BPM                float64             `json:"bpm"`
	CanBeHyped         bool                `json:"can_be_hyped"`
	DiscussionEnabled  bool                `json:"discussion_enabled"`
	DiscussionLocked   bool                `json:"discussion_locked"`
	IsScoreable        bool                `json:"is_scoreable"`
	LastUpdated        time.Time           `json:"last_updated"`
	LegacyThreadURL    string              `json:"legacy_thread_url"`
	RankedDate         *time.Time          `json:"ranked_date"`
	SubmittedDate      *time.Time          `json:"submitted_date"`
	Availability       Availability        `json:"availability"`
	NominationsSummary NominationsSummary  `json:"nominations_summary"`
	Ratings            []int64             `json:"ratings"`
}

// Covers holds the image URLs of a set.
type Covers struct {
	Cover       string `json:"cover"`
	Cover2x     string `json:"cover@2x"`
	Card        string `json:"card"`
	Card2x      string `json:"card@2x"`
	List        string `json:"list"`
	List2x      string `json:"list@2x"`
	Slimcover   string `json:"slimcover"`
	Slimcover2x string `json:"slimcover@2x"`
}

// Availability reports whether a set can be downloaded.
type Availability struct {
	DownloadDisabled bool    `json:"download_disabled"`
	MoreInformation  *string `json:"more_information"`
}

// NominationsSummary counts the nominations of a pending set.
type NominationsSummary struct {
	Current  int `json:"current"`
	Required int `json:"required"`
}

// Failtimes are 100-bucket histograms of where players fail or quit.
type Failtimes struct {
	Fail []int64 `json:"fail"`
	Exit []int64 `json:"exit"`
}

// UserBeatmapScore is a player's best score on a beatmap with its
// leaderboard position.
type UserBeatmapScore struct {
	Position int64 `json:"position"`
	Score    Score `json:"score"`
}

// Score is a single play.
type Score struct {
	ID                    int64           `json:"id"`
	BestID                *int64          `json:"best_id"`
	UserID                int64           `json:"user_id"`
	Accuracy              float64         `json:"accuracy"`
	CreatedAt             time.Time       `json:"created_at"`
	MaxCombo              int64           `json:"max_combo"`
	Mode                  string          `json:"mode"`
	ModeInt               int             `json:"mode_int"`
	Mods                  []string        `json:"mods"`
	Passed                bool            `json:"passed"`
	Perfect               bool            `json:"perfect"`
	PP                    *float64        `json:"pp"` // nil for unranked maps
	Rank                  string          `json:"rank"`
	Replay                bool            `json:"replay"`
	Score                 int64           `json:"score"`
	Statistics            Statistics      `json:"statistics"`
	Type                  string          `json:"type"`
	CurrentUserAttributes json.RawMessage `json:"current_user_attributes,omitempty"`
	Beatmap               *ScoreBeatmap   `json:"beatmap,omitempty"`
	User                  *User           `json:"user,omitempty"`
}

// ModList converts Mods to osu.Mods, skipping acronyms this package does
// not know.
func (s Score) ModList() osu.Mods {
	out := make(osu.Mods, 0, len(s.Mods))
	for _, name := range s.Mods {
		if m, err := osu.ParseMod(name); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// ScoreBeatmap is the beatmap embedded in a Score, without its set.
type ScoreBeatmap struct {
	ID               int64     `json:"id"`
	BeatmapsetID     int64     `json:"beatmapset_id"`
	UserID           int64     `json:"user_id"`
	DifficultyRating float64   `json:"difficulty_rating"`
	Mode             string    `json:"mode"`
	ModeInt          int       `json:"mode_int"`
	Status           string    `json:"status"`
	Ranked           int       `json:"ranked"`
	TotalLength      int       `json:"total_length"`
	HitLength        int       `json:"hit_length"`
	Version          string    `json:"version"`
	Accuracy         float64   `json:"accuracy"`
	AR               float64   `json:"ar"`
	CS               float64   `json:"cs"`
	Drain            float64   `json:"drain"`
	BPM              float64   `json:"bpm"`
	Convert          bool      `json:"convert"`
	CountCircles     int       `json:"count_circles"`
	CountSliders     int       `json:"count_sliders"`
	CountSpinners    int       `json:"count_spinners"`
	IsScoreable      bool      `json:"is_scoreable"`
	LastUpdated      time.Time `json:"last_updated"`
	Passcount        int64     `json:"passcount"`
	Playcount        int64     `json:"playcount"`
	URL              string    `json:"url"`
	Checksum         string    `json:"checksum"`
}

// Statistics counts the judgements of a Score.
type Statistics struct {
	Count300  int `json:"count_300"`
	Count100  int `json:"count_100"`
	Count50   int `json:"count_50"`
	CountGeki int `json:"count_geki"`
	CountKatu int `json:"count_katu"`
	CountMiss int `json:"count_miss"`
}

// User is the compact player record embedded in scores.
type User struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	AvatarURL     string     `json:"avatar_url"`
	CountryCode   string     `json:"country_code"`
	DefaultGroup  string     `json:"default_group"`
	IsActive      bool       `json:"is_active"`
	IsBot         bool       `json:"is_bot"`
	IsDeleted     bool       `json:"is_deleted"`
	IsOnline      bool       `json:"is_online"`
	IsSupporter   bool       `json:"is_supporter"`
	LastVisit     *time.Time `json:"last_visit"`
	PMFriendsOnly bool       `json:"pm_friends_only"`
	Country       *Country   `json:"country,omitempty"`
	Cover         *Cover     `json:"cover,omitempty"`
}

// Country is an ISO 3166-1 alpha-2 code with its display name.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Cover is a profile banner.
type Cover struct {
	CustomURL *string `json:"custom_url"`
	URL       string  `json:"url"`
	ID        *string `json:"id"`
}

// BeatmapScores is the top of a beatmap leaderboard.
type BeatmapScores struct {
	Scores []Score `json:"scores"`
}
