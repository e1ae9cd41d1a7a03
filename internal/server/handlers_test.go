package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EarthsFirewall/internal/deflect"
	"EarthsFirewall/internal/game"
	"EarthsFirewall/internal/neo"
	"EarthsFirewall/internal/storage"
)

// newTestApp wires an App against the built-in catalog, a throwaway
// database, and a NASA endpoint that always 404s.
func newTestApp(t *testing.T) *App {
	t.Helper()

	nasa := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(nasa.Close)

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &App{
		Config:  DefaultConfig(),
		Logger:  log.New(io.Discard),
		Store:   store,
		Hub:     game.NewHub(),
		Catalog: neo.FallbackCatalog(),
		NASA:    neo.NewClient(nasa.URL, "test"),
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	mux := newTestApp(t).newMux()
	rec := doJSON(t, mux, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAsteroids(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/asteroids", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]asteroidSummaryDTO](t, rec)
	assert.Len(t, all, 5)

	rec = doJSON(t, mux, http.MethodGet, "/api/asteroids?hazardous=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hazardous := decodeBody[[]asteroidSummaryDTO](t, rec)
	for _, a := range hazardous {
		assert.True(t, a.Hazardous, "%s should be hazardous", a.Name)
	}
	assert.Less(t, len(hazardous), len(all))

	rec = doJSON(t, mux, http.MethodGet, "/api/asteroids?limit=2", nil)
	limited := decodeBody[[]asteroidSummaryDTO](t, rec)
	assert.Len(t, limited, 2)
}

func TestGetAsteroid(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/asteroids/99942", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody[asteroidDetailDTO](t, rec)
	assert.Equal(t, "Apophis", detail.Name)
	assert.NotEmpty(t, detail.Composition)
	assert.Greater(t, detail.ImpactEnergy, 0.0)

	rec = doJSON(t, mux, http.MethodGet, "/api/asteroids/no-such-rock", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateImpact(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/impact", impactRequestDTO{
		DiameterKm:  1,
		VelocityKmS: 20,
		AngleDeg:    45,
		Lat:         40.7,
		Lon:         -74.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[impactResponseDTO](t, rec)

	assert.Greater(t, resp.EnergyMegatons, 1.0)
	assert.Greater(t, resp.Crater.DiameterKm, 0.0)
	assert.True(t, resp.Crater.Complex)
	assert.Greater(t, resp.Seismic.Magnitude, 5.0)
	assert.NotEmpty(t, resp.Blast)
	assert.Nil(t, resp.Tsunami, "land impact must not carry tsunami risk")
	// A 1 km impactor near New York reaches the city.
	require.NotEmpty(t, resp.AffectedCities)
	assert.Equal(t, "New York", resp.AffectedCities[0].Name)
}

func TestSimulateImpactOcean(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/impact", impactRequestDTO{
		DiameterKm:  1,
		VelocityKmS: 20,
		Lat:         0,
		Lon:         -140,
		OceanImpact: true,
		OceanDepthM: 4000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[impactResponseDTO](t, rec)

	require.NotNil(t, resp.Tsunami)
	assert.True(t, resp.Tsunami.HighRisk)
	assert.Greater(t, resp.Tsunami.WaveHeightM, 1.0)
}

func TestSimulateImpactByAsteroidID(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/impact", impactRequestDTO{
		AsteroidID: "101955",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[impactResponseDTO](t, rec)
	assert.Greater(t, resp.EnergyJoules, 0.0)
}

func TestSimulateImpactValidation(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/impact", impactRequestDTO{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/simulate/impact", impactRequestDTO{AsteroidID: "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateMitigationSingleStrategy(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/mitigation", mitigationRequestDTO{
		DiameterKm:    0.05,
		Strategy:      deflect.StrategyKineticImpactor,
		LeadTimeYears: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[mitigationResponseDTO](t, rec)

	require.NotNil(t, resp.Result)
	assert.Nil(t, resp.Recommendation)
	assert.Equal(t, deflect.StrategyKineticImpactor, resp.Result.Strategy)
	assert.True(t, resp.Result.Success)
}

func TestSimulateMitigationRecommendation(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/mitigation", mitigationRequestDTO{
		AsteroidID:    "99942",
		LeadTimeYears: 12,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[mitigationResponseDTO](t, rec)

	require.NotNil(t, resp.Recommendation)
	assert.Nil(t, resp.Result)
	assert.NotEmpty(t, resp.Recommendation.Strategies)
}

func TestSimulateMitigationValidation(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/simulate/mitigation", mitigationRequestDTO{
		DiameterKm: 0.05,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing lead time")

	rec = doJSON(t, mux, http.MethodPost, "/api/simulate/mitigation", mitigationRequestDTO{
		DiameterKm:    0.05,
		Strategy:      "wishful_thinking",
		LeadTimeYears: 5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown strategy")
}

func TestPhysicsCalculate(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/physics/calculate", physicsRequestDTO{
		Operation: "kinetic_energy",
		Params:    map[string]float64{"mass": 1e9, "velocity": 20},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[physicsResponseDTO](t, rec)
	// E = 0.5 * 1e9 * (2e4)^2 = 2e17 J
	assert.InDelta(t, 2e17, resp.Results["energy_joules"], 1e10)

	rec = doJSON(t, mux, http.MethodPost, "/api/physics/calculate", physicsRequestDTO{
		Operation: "orbital_period",
		Params:    map[string]float64{"semi_major_axis": 1},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[physicsResponseDTO](t, rec)
	assert.InDelta(t, 365.25, resp.Results["period_days"], 1.0)

	rec = doJSON(t, mux, http.MethodPost, "/api/physics/calculate", physicsRequestDTO{
		Operation: "divination",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenario(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/scenarios/tunguska", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[scenarioResponseDTO](t, rec)
	assert.Equal(t, "Tunguska", resp.Scenario.Name)
	assert.Greater(t, resp.Impact.EnergyMegatons, 1.0)

	rec = doJSON(t, mux, http.MethodGet, "/api/scenarios/atlantis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStrategies(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/strategies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	infos := decodeBody[[]strategyInfoDTO](t, rec)
	assert.Len(t, infos, 4)
}

func TestGameLifecycle(t *testing.T) {
	app := newTestApp(t)
	mux := app.newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/game/start", gameStartRequestDTO{Player: "alice", Level: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	session := decodeBody[sessionDTO](t, rec)
	require.NotEmpty(t, session.SessionID)
	assert.Equal(t, "playing", session.State)
	assert.Equal(t, 300.0, session.TimeLeft)

	rec = doJSON(t, mux, http.MethodGet, "/api/game/status?session_id="+session.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/pause", gameActionRequestDTO{SessionID: session.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paused", decodeBody[sessionDTO](t, rec).State)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/resume", gameActionRequestDTO{SessionID: session.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	// Deflecting a 10 m training rock with full lead time always works.
	rec = doJSON(t, mux, http.MethodPost, "/api/game/deflect", gameActionRequestDTO{
		SessionID: session.SessionID,
		Strategy:  deflect.StrategyKineticImpactor,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[deflectResponseDTO](t, rec)
	assert.True(t, result.Result.Success)
	assert.Equal(t, "victory", result.Session.State)
	assert.Greater(t, result.Session.Score, 0)

	// The win lands on the leaderboard.
	rec = doJSON(t, mux, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[[]storage.ScoreEntry](t, rec)
	require.Len(t, board, 1)
	assert.Equal(t, "alice", board[0].Player)
	assert.Equal(t, result.Session.Score, board[0].Score)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/reset", gameActionRequestDTO{SessionID: session.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", decodeBody[sessionDTO](t, rec).State)
}

func TestGameUpdate(t *testing.T) {
	app := newTestApp(t)
	mux := app.newMux()

	session, err := app.Hub.Start("alice", 1)
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodPost, "/api/game/update", gameUpdateRequestDTO{
		SessionID: session.ID,
		Dt:        5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[sessionDTO](t, rec)
	assert.Equal(t, 295.0, snap.TimeLeft)

	// Exhausting the clock ends the game and the clock stops at zero.
	rec = doJSON(t, mux, http.MethodPost, "/api/game/update", gameUpdateRequestDTO{
		SessionID: session.ID,
		Dt:        1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decodeBody[sessionDTO](t, rec)
	assert.Equal(t, 0.0, snap.TimeLeft)
	assert.Equal(t, "game_over", snap.State)
}

func TestScenarioImpactor2025(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/scenarios/impactor-2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[scenarioResponseDTO](t, rec)
	assert.Equal(t, "Impactor-2025", resp.Scenario.Name)
	assert.True(t, resp.Impact.Crater.Complex)
}

func TestGameSessionValidation(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodGet, "/api/game/status", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/game/status?session_id=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/start", gameStartRequestDTO{Player: "bob", Level: 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveScoreAndLeaderboard(t *testing.T) {
	mux := newTestApp(t).newMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/game/score", scoreRequestDTO{
		Player: "carol", Level: 2, Score: 2500, Outcome: "deflected",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/score", scoreRequestDTO{
		Player: "dave", Level: 1, Score: 1200, Outcome: "deflected",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[[]storage.ScoreEntry](t, rec)
	require.Len(t, board, 2)
	assert.Equal(t, "carol", board[0].Player)

	rec = doJSON(t, mux, http.MethodGet, "/api/leaderboard?level=1", nil)
	board = decodeBody[[]storage.ScoreEntry](t, rec)
	require.Len(t, board, 1)
	assert.Equal(t, "dave", board[0].Player)

	rec = doJSON(t, mux, http.MethodPost, "/api/game/score", scoreRequestDTO{Level: 1, Score: 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing player")
}
