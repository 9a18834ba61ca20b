package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
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
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:  req.Name,
		Venue: req.Venue,
		Slot: team.Slot{
			DayOfWeek: req.Slot.DayOfWeek,
			TimeStart: req.Slot.TimeStart,
			TimeEnd:   req.Slot.TimeEnd,
		},
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	var req updateTeamRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateTeamInput{
		TeamID: r.PathValue("teamID"),
		Name:   req.Name,
		Venue:  req.Venue,
	}
	if req.Slot != nil {
		input.Slot = &team.Slot{
			DayOfWeek: req.Slot.DayOfWeek,
			TimeStart: req.Slot.TimeStart,
			TimeEnd:   req.Slot.TimeEnd,
		}
	}
	if strings.TrimSpace(req.StartDate) != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.StartDate = startDate
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.EndDate = endDate

	item, err := h.teamService.Update(ctx, input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	if err := h.teamService.Delete(ctx, r.PathValue("teamID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTeamPlayers returns the players with an open stint on the team at the
// given date (today when the query parameter is absent).
func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if teamID == "" {
		writeError(ctx, w, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput))
		return
	}
	if _, err := h.teamService.Get(ctx, teamID); err != nil {
		writeError(ctx, w, err)
		return
	}

	date := nowUTC()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		date = parsed
	}

	items, err := h.eligibility.ActivePlayers(ctx, teamID, date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
