package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Read endpoints are open; every mutation goes through the manager routes.
func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/active", handler.GetActiveSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetSeasonStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/player-stats", handler.GetSeasonPlayerStats)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

// Mutations need the manager role; deletes are held back for admins.
func registerManagerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	manage := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireManager(h))
	}
	administer := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/teams", manage(handler.CreateTeam))
	mux.Handle("PUT /v1/teams/{teamID}", manage(handler.UpdateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", administer(handler.DeleteTeam))

	mux.Handle("POST /v1/players", manage(handler.CreatePlayer))
	mux.Handle("PUT /v1/players/{playerID}", manage(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/players/{playerID}", administer(handler.DeletePlayer))
	mux.Handle("POST /v1/players/{playerID}/join-team", manage(handler.JoinTeam))
	mux.Handle("POST /v1/players/{playerID}/leave-team", manage(handler.LeaveTeam))

	mux.Handle("POST /v1/seasons", manage(handler.CreateSeason))
	mux.Handle("PUT /v1/seasons/{seasonID}", manage(handler.UpdateSeason))
	mux.Handle("POST /v1/seasons/{seasonID}/activate", manage(handler.ActivateSeason))
	mux.Handle("DELETE /v1/seasons/{seasonID}", administer(handler.DeleteSeason))
	mux.Handle("POST /v1/seasons/{seasonID}/schedule", manage(handler.GenerateSeasonSchedule))

	mux.Handle("POST /v1/matches", manage(handler.CreateMatch))
	mux.Handle("PUT /v1/matches/{matchID}", manage(handler.UpdateMatch))
	mux.Handle("DELETE /v1/matches/{matchID}", administer(handler.DeleteMatch))
	mux.Handle("POST /v1/matches/{matchID}/score", manage(handler.ScoreMatch))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/rescore", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRescoreJob)))
}
