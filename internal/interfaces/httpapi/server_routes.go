package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweek)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/feed/matches", handler.ListFeedMatches)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/fantasy/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPick)))
	mux.Handle("PUT /v1/fantasy/picks", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyPick)))
	mux.Handle("POST /v1/fantasy/picks/validate", RequireAuth(verifier, http.HandlerFunc(handler.ValidateMyPick)))
	mux.Handle("GET /v1/fantasy/scores", RequireAuth(verifier, http.HandlerFunc(handler.GetMyScores)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/players", RequireAdmin(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/admin/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/admin/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeletePlayer)))

	mux.Handle("POST /v1/admin/gameweeks", RequireAdmin(verifier, http.HandlerFunc(handler.CreateGameweek)))
	mux.Handle("PUT /v1/admin/gameweeks/{gameweekID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateGameweek)))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/complete", RequireAdmin(verifier, http.HandlerFunc(handler.CompleteGameweek)))

	mux.Handle("PUT /v1/admin/gameweeks/{gameweekID}/match-stats", RequireAdmin(verifier, http.HandlerFunc(handler.EnterMatchStats)))
	mux.Handle("GET /v1/admin/gameweeks/{gameweekID}/match-stats", RequireAdmin(verifier, http.HandlerFunc(handler.ListMatchStats)))

	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/calculate-points", RequireAdmin(verifier, http.HandlerFunc(handler.CalculateGameweekPoints)))
	mux.Handle("POST /v1/admin/recalculate-all", RequireAdmin(verifier, http.HandlerFunc(handler.RecalculateAllPoints)))
}
