package httpapi

import (
	"net/http"
	"strings"

	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasonService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	item, err := h.seasonService.Get(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) GetActiveSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveSeason")
	defer span.End()

	item, err := h.seasonService.GetActive(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Create(ctx, usecase.CreateSeasonInput{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Active:    req.Active,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	var req updateSeasonRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Update(ctx, usecase.UpdateSeasonInput{
		SeasonID:  r.PathValue("seasonID"),
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateSeason")
	defer span.End()

	item, err := h.seasonService.Activate(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	if err := h.seasonService.Delete(ctx, r.PathValue("seasonID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	items, err := h.standingsService.ForSeason(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GenerateSeasonSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSeasonSchedule")
	defer span.End()

	result, err := h.scheduleService.Generate(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scheduleResultToDTO(result))
}

func (h *Handler) GetSeasonPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonPlayerStats")
	defer span.End()

	gender := player.Gender(strings.TrimSpace(r.URL.Query().Get("gender")))
	items, err := h.statsService.PlayerStats(ctx, r.PathValue("seasonID"), gender)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]playerStatsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerStatsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
