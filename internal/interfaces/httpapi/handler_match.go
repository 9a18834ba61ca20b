package httpapi

import (
	"net/http"
	"strings"

	"github.com/Porizovatel/kulda/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	var err error
	var items []matchDTO
	if seasonName := strings.TrimSpace(r.URL.Query().Get("season")); seasonName != "" {
		rows, listErr := h.matchService.ListBySeason(ctx, seasonName)
		if listErr != nil {
			err = listErr
		} else {
			items = make([]matchDTO, 0, len(rows))
			for _, row := range rows {
				items = append(items, matchToDTO(row))
			}
		}
	} else {
		rows, listErr := h.matchService.List(ctx)
		if listErr != nil {
			err = listErr
		} else {
			items = make([]matchDTO, 0, len(rows))
			for _, row := range rows {
				items = append(items, matchToDTO(row))
			}
		}
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	item, err := h.matchService.Get(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail := matchDetailDTO{Match: matchToDTO(item)}
	if item.Completed {
		players, teams, perfErr := h.matchService.Performances(ctx, item.ID)
		if perfErr != nil {
			writeError(ctx, w, perfErr)
			return
		}
		detail.Players = make([]playerPerformanceDTO, 0, len(players))
		for _, row := range players {
			detail.Players = append(detail.Players, playerPerformanceToDTO(row))
		}
		detail.Teams = make([]teamPerformanceDTO, 0, len(teams))
		for _, row := range teams {
			detail.Teams = append(detail.Teams, teamPerformanceToDTO(row))
		}
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseTimestamp(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		Date:       date,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Venue:      req.Venue,
		Season:     req.Season,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	var req updateMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseTimestamp(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Update(ctx, usecase.UpdateMatchInput{
		MatchID: r.PathValue("matchID"),
		Date:    date,
		Venue:   req.Venue,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	if err := h.matchService.Delete(ctx, r.PathValue("matchID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreMatch")
	defer span.End()

	var req scoreMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ScoreMatch(ctx, usecase.ScoreMatchInput{
		MatchID: r.PathValue("matchID"),
		Home:    scoresFromRecords(req.Home),
		Away:    scoresFromRecords(req.Away),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreResultToDTO(result))
}
