package httpapi

import (
	"net/http"

	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	items, err := h.playerService.List(ctx)
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

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	item, err := h.playerService.Get(ctx, r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreatePlayerInput{
		Name:   req.Name,
		Gender: player.Gender(req.Gender),
		TeamID: req.TeamID,
	}
	if req.JoinDate != "" {
		joinDate, err := parseDate(req.JoinDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.JoinDate = joinDate
	}

	item, err := h.playerService.Create(ctx, input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req updatePlayerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Update(ctx, usecase.UpdatePlayerInput{
		PlayerID: r.PathValue("playerID"),
		Name:     req.Name,
		Gender:   player.Gender(req.Gender),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	if err := h.playerService.Delete(ctx, r.PathValue("playerID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTeam")
	defer span.End()

	var req joinTeamRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stint, err := h.playerService.JoinTeam(ctx, r.PathValue("playerID"), req.TeamID, joinDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stintToDTO(stint))
}

func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTeam")
	defer span.End()

	var req leaveTeamRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leaveDate, err := parseDate(req.LeaveDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stint, err := h.playerService.LeaveTeam(ctx, r.PathValue("playerID"), leaveDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stintToDTO(stint))
}
