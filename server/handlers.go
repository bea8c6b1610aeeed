package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/filter"
	"github.com/rcoplo/osu-api-go/osu"
)

func (s *Server) handleV1User(w http.ResponseWriter, r *http.Request) {
	user := osu.ParseUserRef(chi.URLParam(r, "user"))

	mode, err := modeParam(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var q apiv1.UserQuery
	q.Mode = mode
	if raw := r.URL.Query().Get("event_days"); raw != "" {
		days, err := strconv.ParseInt(raw, 10, 8)
		if err != nil || days < 1 || days > 31 {
			writeBadRequest(w, fmt.Errorf("event_days must be between 1 and 31"))
			return
		}
		q.EventDays = osu.Ptr(int8(days))
	}

	u, err := s.v1.GetUser(r.Context(), user, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleV1UserBest(w http.ResponseWriter, r *http.Request) {
	s.handleV1Records(w, r, s.v1.GetUserBest)
}

func (s *Server) handleV1UserRecent(w http.ResponseWriter, r *http.Request) {
	s.handleV1Records(w, r, s.v1.GetUserRecent)
}

type recordsFunc func(ctx context.Context, user osu.UserRef, q apiv1.ListQuery) ([]apiv1.GameRecord, error)

// handleV1Records serves best and recent plays, optionally narrowed by a
// filter expression evaluated locally.
func (s *Server) handleV1Records(w http.ResponseWriter, r *http.Request, fetch recordsFunc) {
	user := osu.ParseUserRef(chi.URLParam(r, "user"))

	mode, err := modeParam(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	q := apiv1.ListQuery{Mode: mode}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 16)
		if err != nil || limit < 1 {
			writeBadRequest(w, fmt.Errorf("limit must be a positive number"))
			return
		}
		q.Limit = osu.Ptr(int16(limit))
	}

	var f filter.CompiledFilter
	if expression := r.URL.Query().Get("filter"); expression != "" {
		if f, err = s.compiler.Compile(expression); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	records, err := fetch(r.Context(), user, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if f != nil {
		viewMode := osu.ModeOsu
		if mode != nil {
			viewMode = *mode
		}
		records, err = filter.Select(r.Context(), s.evaluator, f, records, func(rec apiv1.GameRecord) filter.Score {
			return filter.FromV1GameRecord(rec, viewMode)
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleV1Beatmap(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	bm, err := s.v1.GetBeatmap(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bm)
}

func (s *Server) handleV1Match(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	match, err := s.v1.GetMatch(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleV2Beatmap(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	bm, err := s.v2.LookupBeatmapByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bm)
}

func (s *Server) handleV2BeatmapScores(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	mode, mods, err := modeAndMods(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	q := apiv2.BeatmapScoresQuery{Mode: mode, Mods: mods}
	if kind := r.URL.Query().Get("type"); kind != "" {
		q.Type = &kind
	}

	scores, err := s.v2.GetBeatmapScores(r.Context(), id, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleV2UserScore(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	userID, err := idParam(r, "user")
	if err != nil {
		writeBadRequest(w, fmt.Errorf("the v2 API needs a numeric user id: %w", err))
		return
	}
	mode, mods, err := modeAndMods(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	score, err := s.v2.GetUserBeatmapScore(r.Context(), id, userID, apiv2.ScoreQuery{Mode: mode, Mods: mods})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func modeParam(r *http.Request) (*osu.Mode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return nil, nil
	}
	mode, err := osu.ParseMode(raw)
	if err != nil {
		return nil, err
	}
	return &mode, nil
}

func modeAndMods(r *http.Request) (*osu.Mode, osu.Mods, error) {
	mode, err := modeParam(r)
	if err != nil {
		return nil, nil, err
	}
	mods, err := osu.ParseMods(r.URL.Query().Get("mods"))
	if err != nil {
		return nil, nil, err
	}
	return mode, mods, nil
}
