package server

import (
	"net/http"
	"strconv"

	"EarthsFirewall/internal/game"
	"EarthsFirewall/internal/storage"
)

func (a *App) sessionFromQuery(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return nil, false
	}
	s, ok := a.Hub.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such session: "+id)
		return nil, false
	}
	return s, true
}

func (a *App) sessionFromBody(w http.ResponseWriter, r *http.Request) (*game.Session, gameActionRequestDTO, bool) {
	var req gameActionRequestDTO
	if !decodeJSON(w, r, &req) {
		return nil, req, false
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return nil, req, false
	}
	s, ok := a.Hub.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "no such session: "+req.SessionID)
		return nil, req, false
	}
	return s, req, true
}

func (a *App) handleGameStart(w http.ResponseWriter, r *http.Request) {
	var req gameStartRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Player == "" {
		req.Player = "anonymous"
	}
	if req.Level == 0 {
		req.Level = 1
	}

	s, err := a.Hub.Start(req.Player, req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.Logger.Info("session started", "session", s.ID, "player", req.Player, "level", req.Level)
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

// handleGameUpdate advances a session manually for clients that drive
// their own loop instead of riding the server tick.
func (a *App) handleGameUpdate(w http.ResponseWriter, r *http.Request) {
	var req gameUpdateRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return
	}
	s, ok := a.Hub.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "no such session: "+req.SessionID)
		return
	}
	dt := req.Dt
	if dt <= 0 {
		dt = 1.0
	}
	s.Tick(dt)
	if s.MarkRecorded() {
		a.recordOutcome(s.Snapshot())
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

func (a *App) handleGameDeflect(w http.ResponseWriter, r *http.Request) {
	s, req, ok := a.sessionFromBody(w, r)
	if !ok {
		return
	}
	res, err := s.Attempt(req.Strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.MarkRecorded() {
		a.recordOutcome(s.Snapshot())
	}
	writeJSON(w, http.StatusOK, deflectResponseDTO{Session: toSessionDTO(s.Snapshot()), Result: res})
}

func (a *App) handleGamePause(w http.ResponseWriter, r *http.Request) {
	s, _, ok := a.sessionFromBody(w, r)
	if !ok {
		return
	}
	if err := s.Pause(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

func (a *App) handleGameResume(w http.ResponseWriter, r *http.Request) {
	s, _, ok := a.sessionFromBody(w, r)
	if !ok {
		return
	}
	if err := s.Resume(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

func (a *App) handleGameReset(w http.ResponseWriter, r *http.Request) {
	s, _, ok := a.sessionFromBody(w, r)
	if !ok {
		return
	}
	s.Reset()
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

func (a *App) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()))
}

func (a *App) handleGameAsteroid(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s.Snapshot()).Threat)
}

// recordOutcome persists a finished session. Failures only log; the
// game result still reaches the player.
func (a *App) recordOutcome(snap game.Snapshot) {
	if _, err := a.Store.SaveScore(snap.Player, snap.Level.Number, snap.Score, snap.Outcome); err != nil {
		a.Logger.Error("could not save score", "session", snap.ID, "error", err)
	}
}

func (a *App) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Player == "" {
		writeError(w, http.StatusBadRequest, "player required")
		return
	}
	if req.Level < 1 || req.Level > game.MaxLevel {
		writeError(w, http.StatusBadRequest, "level out of range")
		return
	}
	if req.Outcome == "" {
		req.Outcome = "deflected"
	}

	id, err := a.Store.SaveScore(req.Player, req.Level, req.Score, req.Outcome)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (a *App) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level, _ := strconv.Atoi(q.Get("level"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := a.Store.TopScores(level, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
