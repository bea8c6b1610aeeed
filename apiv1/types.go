package apiv1

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/rcoplo/osu-api-go/osu"
)

// Beatmap is one difficulty as returned by get_beatmaps. The legacy service
// sends every value as a string.
type Beatmap struct {
	BeatmapsetID        string `json:"beatmapset_id"`
	BeatmapID           string `json:"beatmap_id"`
	Approved            string `json:"approved"` // 4 loved, 3 qualified, 2 approved, 1 ranked, 0 pending, -1 WIP, -2 graveyard
	TotalLength         string `json:"total_length"`
	HitLength           string `json:"hit_length"`
	Version             string `json:"version"`
	FileMD5             string `json:"file_md5"`
	DiffSize            string `json:"diff_size"`
	DiffOverall         string `json:"diff_overall"`
	DiffApproach        string `json:"diff_approach"`
	DiffDrain           string `json:"diff_drain"`
	Mode                string `json:"mode"`
	CountNormal         string `json:"count_normal"`
	CountSlider         string `json:"count_slider"`
	CountSpinner        string `json:"count_spinner"`
	SubmitDate          string `json:"submit_date"`
	ApprovedDate        string `json:"approved_date"`
	LastUpdate          string `json:"last_update"`
	Artist              string `json:"artist"`
	ArtistUnicode       string `json:"artist_unicode"`
	Title               string `json:"title"`
	TitleUnicode        string `json:"title_unicode"`
	Creator             string `json:"creator"`
	CreatorID           string `json:"creator_id"`
	BPM                 string `json:"bpm"`
	Source              string `json:"source"`
	Tags                string `json:"tags"`
	GenreID             string `json:"genre_id"`
	LanguageID          string `json:"language_id"`
	FavouriteCount      string `json:"favourite_count"`
	Rating              string `json:"rating"`
	Storyboard          string `json:"storyboard"`
	Video               string `json:"video"`
	DownloadUnavailable string `json:"download_unavailable"`
	AudioUnavailable    string `json:"audio_unavailable"`
	Playcount           string `json:"playcount"`
	Passcount           string `json:"passcount"`
	Packs               string `json:"packs"`
	MaxCombo            string `json:"max_combo"`
	DifficultyRating    string `json:"difficultyrating"`
}

// User is a player profile as returned by get_user.
type User struct {
	UserID             string      `json:"user_id"`
	Username           string      `json:"username"`
	JoinDate           string      `json:"join_date"`
	Count300           string      `json:"count300"`
	Count100           string      `json:"count100"`
	Count50            string      `json:"count50"`
	Playcount          string      `json:"playcount"`
	RankedScore        string      `json:"ranked_score"`
	TotalScore         string      `json:"total_score"`
	PPRank             string      `json:"pp_rank"`
	Level              string      `json:"level"`
	PPRaw              string      `json:"pp_raw"`
	Accuracy           string      `json:"accuracy"`
	CountRankSS        string      `json:"count_rank_ss"`
	CountRankSSH       string      `json:"count_rank_ssh"`
	CountRankS         string      `json:"count_rank_s"`
	CountRankSH        string      `json:"count_rank_sh"`
	CountRankA         string      `json:"count_rank_a"`
	Country            string      `json:"country"`
	TotalSecondsPlayed string      `json:"total_seconds_played"`
	PPCountryRank      string      `json:"pp_country_rank"`
	Events             []UserEvent `json:"events"`
}

// UserEvent is an entry of a profile's recent activity.
type UserEvent struct {
	DisplayHTML  string `json:"display_html"`
	BeatmapID    string `json:"beatmap_id"`
	BeatmapsetID string `json:"beatmapset_id"`
	Date         string `json:"date"`
	Epicfactor   string `json:"epicfactor"`
}

// Score is a leaderboard entry from get_scores.
type Score struct {
	ScoreID         string `json:"score_id"`
	Score           string `json:"score"`
	Username        string `json:"username"`
	MaxCombo        string `json:"maxcombo"`
	Count50         string `json:"count50"`
	Count100        string `json:"count100"`
	Count300        string `json:"count300"`
	CountMiss       string `json:"countmiss"`
	CountKatu       string `json:"countkatu"`
	CountGeki       string `json:"countgeki"`
	Perfect         string `json:"perfect"`
	EnabledMods     string `json:"enabled_mods"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	Rank            string `json:"rank"`
	PP              string `json:"pp"`
	ReplayAvailable string `json:"replay_available"`
}

// Mods decodes EnabledMods. An unparsable value yields nil.
func (s Score) Mods() osu.Mods {
	return decodeMods(s.EnabledMods)
}

// GameRecord is a play from get_user_best or get_user_recent.
type GameRecord struct {
	BeatmapID       string `json:"beatmap_id"`
	ScoreID         string `json:"score_id"`
	Score           string `json:"score"`
	MaxCombo        string `json:"maxcombo"`
	Count50         string `json:"count50"`
	Count100        string `json:"count100"`
	Count300        string `json:"count300"`
	CountMiss       string `json:"countmiss"`
	CountKatu       string `json:"countkatu"`
	CountGeki       string `json:"countgeki"`
	Perfect         string `json:"perfect"`
	EnabledMods     string `json:"enabled_mods"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	Rank            string `json:"rank"`
	PP              string `json:"pp"`
	ReplayAvailable string `json:"replay_available"`
}

// Mods decodes EnabledMods. An unparsable value yields nil.
func (r GameRecord) Mods() osu.Mods {
	return decodeMods(r.EnabledMods)
}

// MatchRoom is the history of a multiplayer room from get_match.
type MatchRoom struct {
	Match RoomInfo `json:"match"`
	Games []Game   `json:"games"`
}

// RoomInfo describes the room itself. EndTime is nil while it is open.
type RoomInfo struct {
	MatchID   string  `json:"match_id"`
	Name      string  `json:"name"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// Game is one map played in a room.
type Game struct {
	GameID      string      `json:"game_id"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	BeatmapID   string      `json:"beatmap_id"`
	PlayMode    string      `json:"play_mode"`
	MatchType   string      `json:"match_type"`
	ScoringType string      `json:"scoring_type"`
	TeamType    string      `json:"team_type"`
	Mods        string      `json:"mods"`
	Scores      []GameScore `json:"scores"`
}

// GlobalMods decodes the room-wide mods bitmask.
func (g Game) GlobalMods() osu.Mods {
	return decodeMods(g.Mods)
}

// GameScore is one player's result in a Game.
type GameScore struct {
	Slot        string  `json:"slot"`
	Team        string  `json:"team"`
	UserID      string  `json:"user_id"`
	Score       string  `json:"score"`
	MaxCombo    string  `json:"maxcombo"`
	Rank        string  `json:"rank"`
	Count50     string  `json:"count50"`
	Count100    string  `json:"count100"`
	Count300    string  `json:"count300"`
	CountMiss   string  `json:"countmiss"`
	CountGeki   string  `json:"countgeki"`
	CountKatu   string  `json:"countkatu"`
	Perfect     string  `json:"perfect"`
	Pass        string  `json:"pass"`
	EnabledMods *string `json:"enabled_mods"` // only set in free-mod rooms
}

// Mods decodes the per-player mods, nil outside free-mod rooms.
func (s GameScore) Mods() osu.Mods {
	if s.EnabledMods == nil {
		return nil
	}
	return decodeMods(*s.EnabledMods)
}

// Replay is the payload of get_replay.
type Replay struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Bytes decodes the base64 replay data. This is the raw replay stream,
// not a complete .osr file.
func (r Replay) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(r.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode replay content: %w", err)
	}
	return data, nil
}

func decodeMods(s string) osu.Mods {
	bits, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return osu.ModsFromBits(bits)
}
