package server

import (
	"EarthsFirewall/internal/astro"
	"EarthsFirewall/internal/deflect"
	"EarthsFirewall/internal/game"
	"EarthsFirewall/internal/neo"
)

type errorDTO struct {
	Error string `json:"error"`
}

/* ----------------------------- Asteroids ---------------------------- */

type asteroidSummaryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DiameterKm  float64 `json:"diameter"`
	VelocityKmS float64 `json:"velocity"`
	Hazardous   bool    `json:"is_potentially_hazardous"`
}

type asteroidDetailDTO struct {
	neo.Asteroid
	Composition  string  `json:"composition"`
	ImpactEnergy float64 `json:"impact_energy_mt"`
}

func toAsteroidSummary(a neo.Asteroid) asteroidSummaryDTO {
	return asteroidSummaryDTO{
		ID:          a.ID,
		Name:        a.Name,
		DiameterKm:  a.DiameterKm,
		VelocityKmS: a.VelocityKmS,
		Hazardous:   a.Hazardous,
	}
}

func toAsteroidDetail(a neo.Asteroid) asteroidDetailDTO {
	energy := astro.KineticEnergy(a.MassKg, a.VelocityKmS)
	return asteroidDetailDTO{
		Asteroid:     a,
		Composition:  a.Composition(),
		ImpactEnergy: astro.JoulesToMegatons(energy),
	}
}

/* ------------------------- Impact simulation ------------------------ */

type impactRequestDTO struct {
	AsteroidID  string  `json:"asteroid_id,omitempty"`
	DiameterKm  float64 `json:"diameter,omitempty"`
	DensityKgM3 float64 `json:"density,omitempty"`
	VelocityKmS float64 `json:"velocity,omitempty"`
	AngleDeg    float64 `json:"angle,omitempty"`
	Lat         float64 `json:"latitude"`
	Lon         float64 `json:"longitude"`
	OceanImpact bool    `json:"ocean_impact"`
	OceanDepthM float64 `json:"ocean_depth,omitempty"`
}

type impactResponseDTO struct {
	EnergyJoules   float64                   `json:"energy_joules"`
	EnergyMegatons float64                   `json:"energy_megatons"`
	Crater         astro.CraterDimensions    `json:"crater"`
	Devastation    astro.DevastationRadii    `json:"devastation"`
	Blast          []astro.BlastEffects      `json:"blast_effects"`
	Seismic        seismicDTO                `json:"seismic"`
	Tsunami        *astro.TsunamiRisk        `json:"tsunami,omitempty"`
	Atmospheric    *astro.AtmosphericEffects `json:"atmospheric,omitempty"`
	AffectedCities []astro.CityImpact        `json:"affected_cities"`
}

type seismicDTO struct {
	Magnitude  float64              `json:"magnitude"`
	FeltRadius float64              `json:"felt_radius_km"`
	Samples    []astro.GroundMotion `json:"ground_motion"`
}

/* --------------------------- Mitigation ----------------------------- */

type mitigationRequestDTO struct {
	AsteroidID    string  `json:"asteroid_id,omitempty"`
	MassKg        float64 `json:"mass,omitempty"`
	DiameterKm    float64 `json:"diameter,omitempty"`
	VelocityKmS   float64 `json:"velocity,omitempty"`
	Strategy      string  `json:"strategy,omitempty"`
	LeadTimeYears float64 `json:"lead_time_years"`

	SpacecraftMassKg float64 `json:"spacecraft_mass,omitempty"`
	ApproachVelKmS   float64 `json:"approach_velocity,omitempty"`
	HoverDistanceM   float64 `json:"hover_distance,omitempty"`
	ThrustN          float64 `json:"thrust,omitempty"`
	YieldMegatons    float64 `json:"yield_megatons,omitempty"`
}

type mitigationResponseDTO struct {
	Result         *deflect.Result         `json:"result,omitempty"`
	Recommendation *deflect.Recommendation `json:"recommendation,omitempty"`
}

/* ------------------------ Physics calculator ------------------------ */

type physicsRequestDTO struct {
	Operation string             `json:"operation"`
	Params    map[string]float64 `json:"params"`
}

type physicsResponseDTO struct {
	Operation string             `json:"operation"`
	Results   map[string]float64 `json:"results"`
}

/* ------------------------------ Game -------------------------------- */

type gameStartRequestDTO struct {
	Player string `json:"player"`
	Level  int    `json:"level"`
}

type gameActionRequestDTO struct {
	SessionID string `json:"session_id"`
	Strategy  string `json:"strategy,omitempty"`
}

type gameUpdateRequestDTO struct {
	SessionID string  `json:"session_id"`
	Dt        float64 `json:"dt,omitempty"`
}

type threatDTO struct {
	DiameterM   float64 `json:"diameter_m"`
	MassKg      float64 `json:"mass"`
	VelocityKmS float64 `json:"velocity"`
	DistanceKm  float64 `json:"distance_km"`
	Deflected   bool    `json:"deflected"`
}

type sessionDTO struct {
	SessionID string    `json:"session_id"`
	Player    string    `json:"player"`
	Level     int       `json:"level"`
	LevelName string    `json:"level_name"`
	State     string    `json:"state"`
	TimeLeft  float64   `json:"time_remaining"`
	Score     int       `json:"score"`
	Attempts  int       `json:"attempts"`
	Outcome   string    `json:"outcome,omitempty"`
	Threat    threatDTO `json:"asteroid"`
}

func toSessionDTO(snap game.Snapshot) sessionDTO {
	return sessionDTO{
		SessionID: snap.ID,
		Player:    snap.Player,
		Level:     snap.Level.Number,
		LevelName: snap.Level.Name,
		State:     string(snap.State),
		TimeLeft:  snap.TimeLeft,
		Score:     snap.Score,
		Attempts:  snap.Attempts,
		Outcome:   snap.Outcome,
		Threat: threatDTO{
			DiameterM:   snap.Threat.DiameterM,
			MassKg:      snap.Threat.MassKg,
			VelocityKmS: snap.Threat.VelocityKmS,
			DistanceKm:  snap.Threat.DistanceKm,
			Deflected:   snap.Threat.Deflected,
		},
	}
}

type deflectResponseDTO struct {
	Session sessionDTO     `json:"session"`
	Result  deflect.Result `json:"result"`
}

type scoreRequestDTO struct {
	Player  string `json:"player"`
	Level   int    `json:"level"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"`
}
