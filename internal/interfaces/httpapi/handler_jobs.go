package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/Porizovatel/kulda/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// RunRescoreJob replays the scoring engine over completed matches. It is an
// internal maintenance entry point guarded by the job token.
func (h *Handler) RunRescoreJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRescoreJob")
	defer span.End()

	req, err := decodeRescoreRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rescoreService.Rescore(ctx, usecase.RescoreInput{
		SeasonName: req.Season,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rescore job failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "rescore job finished",
		"season", req.Season,
		"match_count", result.MatchCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
		"skipped_count", result.SkippedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

// An empty body means a full-history rescore with default workers.
func decodeRescoreRequest(r *http.Request) (rescoreRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req rescoreRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return rescoreRequest{}, nil
		}
		return rescoreRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
