package server

import (
	"encoding/json"
	"net/http"
)

// newMux builds the route table. Split from serve so tests can drive
// the handlers through httptest.
func (a *App) newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("GET /api/asteroids", a.handleListAsteroids)
	mux.HandleFunc("GET /api/asteroids/{id}", a.handleGetAsteroid)

	mux.HandleFunc("POST /api/simulate/impact", a.handleSimulateImpact)
	mux.HandleFunc("POST /api/simulate/mitigation", a.handleSimulateMitigation)
	mux.HandleFunc("POST /api/physics/calculate", a.handlePhysicsCalculate)

	mux.HandleFunc("GET /api/scenarios/{name}", a.handleScenario)
	mux.HandleFunc("GET /api/strategies", a.handleStrategies)

	mux.HandleFunc("POST /api/game/start", a.handleGameStart)
	mux.HandleFunc("POST /api/game/update", a.handleGameUpdate)
	mux.HandleFunc("POST /api/game/deflect", a.handleGameDeflect)
	mux.HandleFunc("POST /api/game/pause", a.handleGamePause)
	mux.HandleFunc("POST /api/game/resume", a.handleGameResume)
	mux.HandleFunc("POST /api/game/reset", a.handleGameReset)
	mux.HandleFunc("GET /api/game/status", a.handleGameStatus)
	mux.HandleFunc("GET /api/game/asteroid", a.handleGameAsteroid)

	mux.HandleFunc("POST /api/game/score", a.handleSaveScore)
	mux.HandleFunc("GET /api/leaderboard", a.handleLeaderboard)

	mux.HandleFunc("GET /ws/game", a.handleGameWS)

	return mux
}

func (a *App) serve(addr string) error {
	return http.ListenAndServe(addr, a.newMux())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorDTO{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
