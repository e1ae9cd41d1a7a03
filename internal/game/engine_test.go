package game

import (
	"testing"

	"EarthsFirewall/internal/astro"
	"EarthsFirewall/internal/deflect"
)

func TestStartSession(t *testing.T) {
	h := NewHub()
	s, err := h.Start("alice", 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.ID == "" {
		t.Errorf("empty session ID")
	}
	if s.State != StatePlaying {
		t.Errorf("State = %s, want playing", s.State)
	}
	if s.TimeLeft != 300 {
		t.Errorf("TimeLeft = %v, want 300", s.TimeLeft)
	}
	if s.Threat.MassKg <= 0 {
		t.Errorf("Threat.MassKg = %v, want > 0", s.Threat.MassKg)
	}
	if got, ok := h.Get(s.ID); !ok || got != s {
		t.Errorf("Get(%q) did not return the session", s.ID)
	}
}

func TestStartUnknownLevel(t *testing.T) {
	h := NewHub()
	if _, err := h.Start("alice", 0); err == nil {
		t.Errorf("Start(0) returned nil error")
	}
	if _, err := h.Start("alice", MaxLevel+1); err == nil {
		t.Errorf("Start(%d) returned nil error", MaxLevel+1)
	}
}

func TestTickAdvancesClockAndThreat(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 1)
	startDist := s.Threat.DistanceKm

	s.Tick(1.0)

	snap := s.Snapshot()
	if snap.TimeLeft != 299 {
		t.Errorf("TimeLeft = %v, want 299", snap.TimeLeft)
	}
	wantDist := startDist - snap.Threat.VelocityKmS
	if snap.Threat.DistanceKm != wantDist {
		t.Errorf("DistanceKm = %v, want %v", snap.Threat.DistanceKm, wantDist)
	}
}

func TestClockNeverNegative(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 5)
	s.Tick(61)

	snap := s.Snapshot()
	if snap.TimeLeft != 0 {
		t.Errorf("TimeLeft = %v, want exactly 0", snap.TimeLeft)
	}
	if snap.State != StateGameOver || snap.Outcome != "timeout" {
		t.Errorf("state = %s/%s, want game_over/timeout", snap.State, snap.Outcome)
	}
}

func TestImpactEndsSession(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 1)
	s.Mu.Lock()
	s.Threat.DistanceKm = astro.EarthRadiusKm + 1
	s.Mu.Unlock()

	s.Tick(1.0)

	snap := s.Snapshot()
	if snap.State != StateGameOver || snap.Outcome != "impact" {
		t.Errorf("state = %s/%s, want game_over/impact", snap.State, snap.Outcome)
	}
}

func TestAttemptEarlyWinsEasyLevel(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 1)

	res, err := s.Attempt(deflect.StrategyKineticImpactor)
	if err != nil {
		t.Fatalf("Attempt: %v", err)
	}
	if !res.Success {
		t.Fatalf("kinetic impactor failed against a 10 m body with full lead time")
	}
	snap := s.Snapshot()
	if snap.State != StateVictory || snap.Outcome != "deflected" {
		t.Errorf("state = %s/%s, want victory/deflected", snap.State, snap.Outcome)
	}
	// BaseScore*1 + 300s of time bonus, one attempt costs nothing.
	if snap.Score != BaseScore+300*TimeBonusRate {
		t.Errorf("Score = %d, want %d", snap.Score, BaseScore+300*TimeBonusRate)
	}
}

func TestAttemptFailsOnNightmareLevel(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 5)

	res, err := s.Attempt(deflect.StrategyKineticImpactor)
	if err != nil {
		t.Fatalf("Attempt: %v", err)
	}
	if res.Success {
		t.Errorf("kinetic impactor deflected a 1 km body with one year of lead")
	}
	snap := s.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing after a failed attempt", snap.State)
	}
	if snap.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", snap.Attempts)
	}
}

func TestAttemptUnknownStrategy(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 1)
	if _, err := s.Attempt("tractor_beam"); err == nil {
		t.Errorf("unknown strategy returned nil error")
	}
	if snap := s.Snapshot(); snap.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0 for a rejected strategy", snap.Attempts)
	}
}

func TestPauseResume(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 2)

	if err := s.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	s.Tick(10)
	if snap := s.Snapshot(); snap.TimeLeft != 240 {
		t.Errorf("clock moved while paused: TimeLeft = %v", snap.TimeLeft)
	}
	if err := s.Pause(); err == nil {
		t.Errorf("Pause while paused returned nil error")
	}
	if err := s.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	s.Tick(10)
	if snap := s.Snapshot(); snap.TimeLeft != 230 {
		t.Errorf("TimeLeft = %v, want 230", snap.TimeLeft)
	}
	if err := s.Resume(); err == nil {
		t.Errorf("Resume while playing returned nil error")
	}
}

func TestReset(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 3)
	s.Tick(1e6)
	s.Reset()

	snap := s.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
	if snap.TimeLeft != 180 {
		t.Errorf("TimeLeft = %v, want 180", snap.TimeLeft)
	}
	if snap.Score != 0 || snap.Attempts != 0 || snap.Outcome != "" {
		t.Errorf("reset left state behind: %+v", snap)
	}
	if snap.Threat.DistanceKm != snap.Level.StartDistKm {
		t.Errorf("DistanceKm = %v, want %v", snap.Threat.DistanceKm, snap.Level.StartDistKm)
	}
}

func TestFinalScoreFloorsAtZero(t *testing.T) {
	if got := finalScore(1, 0, 100); got != 0 {
		t.Errorf("finalScore = %d, want 0", got)
	}
}

func TestRemove(t *testing.T) {
	h := NewHub()
	s, _ := h.Start("alice", 1)
	h.Remove(s.ID)
	if _, ok := h.Get(s.ID); ok {
		t.Errorf("session still present after Remove")
	}
}
