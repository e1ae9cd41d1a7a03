package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"EarthsFirewall/internal/astro"
	"EarthsFirewall/internal/deflect"
)

// State is the session lifecycle phase.
type State string

const (
	StateMenu     State = "menu"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "game_over"
	StateVictory  State = "victory"
)

// Threat is the incoming body for one session.
type Threat struct {
	DiameterM   float64
	MassKg      float64
	VelocityKmS float64
	DistanceKm  float64
	Deflected   bool
}

// Session is one playthrough. Callers hold Mu around any direct field
// access; the exported methods lock internally.
type Session struct {
	ID       string
	Player   string
	Level    Level
	State    State
	TimeLeft float64
	Score    int
	Attempts int
	Outcome  string
	Threat   Threat
	Mu       sync.Mutex

	recorded bool
}

// Snapshot is a consistent copy of the session for reporting.
type Snapshot struct {
	ID       string
	Player   string
	Level    Level
	State    State
	TimeLeft float64
	Score    int
	Attempts int
	Outcome  string
	Threat   Threat
}

type Hub struct {
	Sessions map[string]*Session
	Mu       sync.Mutex
}

func NewHub() *Hub { return &Hub{Sessions: map[string]*Session{}} }

// Start creates a session at the given level and begins play.
func (h *Hub) Start(player string, level int) (*Session, error) {
	lv, err := LevelByNumber(level)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.NewString(),
		Player:   player,
		Level:    lv,
		State:    StatePlaying,
		TimeLeft: lv.TimeLimitS,
		Threat:   newThreat(lv),
	}
	h.Mu.Lock()
	h.Sessions[s.ID] = s
	h.Mu.Unlock()
	return s, nil
}

func (h *Hub) Get(id string) (*Session, bool) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.Sessions[id]
	return s, ok
}

func (h *Hub) Remove(id string) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	delete(h.Sessions, id)
}

// newThreat spawns the level's asteroid with mild random variation in
// velocity and density so runs of the same level differ.
func newThreat(lv Level) Threat {
	diameterKm := lv.DiameterM / 1000
	density := astro.DefaultDensity * (0.9 + 0.2*rand.Float64())
	return Threat{
		DiameterM:   lv.DiameterM,
		MassKg:      astro.MassFromDiameter(diameterKm, density),
		VelocityKmS: lv.VelocityKmS * (0.9 + 0.2*rand.Float64()),
		DistanceKm:  lv.StartDistKm,
	}
}

// Tick advances the session by dt seconds. The clock never goes below
// zero; running out of time or closing inside one Earth radius ends the
// game.
func (s *Session) Tick(dt float64) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.State != StatePlaying {
		return
	}

	s.TimeLeft -= dt
	if s.TimeLeft < 0 {
		s.TimeLeft = 0
	}

	if !s.Threat.Deflected {
		s.Threat.DistanceKm -= s.Threat.VelocityKmS * dt
		if s.Threat.DistanceKm < 0 {
			s.Threat.DistanceKm = 0
		}
	}

	if s.Threat.DistanceKm <= astro.EarthRadiusKm && !s.Threat.Deflected {
		s.endLocked(StateGameOver, "impact")
		return
	}
	if s.TimeLeft == 0 {
		if s.Threat.Deflected {
			s.endLocked(StateVictory, "deflected")
		} else {
			s.endLocked(StateGameOver, "timeout")
		}
	}
}

// Attempt runs one deflection mission. The warning time scales with the
// clock: acting early gives the mission more lead. A successful attempt
// wins the session immediately.
func (s *Session) Attempt(strategy string) (deflect.Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.State != StatePlaying {
		return deflect.Result{}, fmt.Errorf("session is %s, not playing", s.State)
	}

	lead := s.Level.LeadYears * s.TimeLeft / s.Level.TimeLimitS
	res, err := deflect.ReferenceMission(strategy, s.Threat.MassKg, lead, s.Threat.VelocityKmS)
	if err != nil {
		return deflect.Result{}, err
	}

	s.Attempts++
	if res.Success {
		s.Threat.Deflected = true
		s.endLocked(StateVictory, "deflected")
	}
	return res, nil
}

// Pause freezes the clock; only a playing session can pause.
func (s *Session) Pause() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.State != StatePlaying {
		return fmt.Errorf("cannot pause from %s", s.State)
	}
	s.State = StatePaused
	return nil
}

func (s *Session) Resume() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.State != StatePaused {
		return fmt.Errorf("cannot resume from %s", s.State)
	}
	s.State = StatePlaying
	return nil
}

// Reset restarts the same level from the top, keeping the session ID.
func (s *Session) Reset() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.State = StatePlaying
	s.TimeLeft = s.Level.TimeLimitS
	s.Score = 0
	s.Attempts = 0
	s.Outcome = ""
	s.Threat = newThreat(s.Level)
	s.recorded = false
}

// MarkRecorded reports whether the caller is the first to persist this
// finished session's outcome. It returns false for sessions still in
// play and for outcomes already recorded.
func (s *Session) MarkRecorded() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.recorded || (s.State != StateVictory && s.State != StateGameOver) {
		return false
	}
	s.recorded = true
	return true
}

func (s *Session) Snapshot() Snapshot {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return Snapshot{
		ID:       s.ID,
		Player:   s.Player,
		Level:    s.Level,
		State:    s.State,
		TimeLeft: s.TimeLeft,
		Score:    s.Score,
		Attempts: s.Attempts,
		Outcome:  s.Outcome,
		Threat:   s.Threat,
	}
}

// endLocked finalizes the session; Mu must be held.
func (s *Session) endLocked(state State, outcome string) {
	s.State = state
	s.Outcome = outcome
	if state == StateVictory {
		s.Score = finalScore(s.Level.Number, s.TimeLeft, s.Attempts)
	}
}

// finalScore rewards the level cleared, time to spare, and restraint in
// mission attempts. Never negative.
func finalScore(level int, timeLeft float64, attempts int) int {
	score := BaseScore*level + int(timeLeft)*TimeBonusRate
	if attempts > 1 {
		score -= (attempts - 1) * AttemptCost
	}
	if score < 0 {
		score = 0
	}
	return score
}
