// Package neo models near-Earth objects and fetches live data from the
// NASA NEO REST service, falling back to a built-in catalog of
// well-characterised asteroids when the service is unreachable.
package neo

import (
	"EarthsFirewall/internal/astro"
)

// Asteroid is a near-Earth object with the physical and orbital
// properties the simulator needs.
type Asteroid struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	DiameterKm        float64               `json:"diameter"`
	MassKg            float64               `json:"mass"`
	VelocityKmS       float64               `json:"velocity"`
	DensityKgM3       float64               `json:"density"`
	AlbedoValue       float64               `json:"albedo"`
	SpectralType      string                `json:"spectral_type"`
	AbsoluteMagnitude float64               `json:"absolute_magnitude"`
	Hazardous         bool                  `json:"is_potentially_hazardous"`
	Orbit             astro.OrbitalElements `json:"orbital_elements"`
	CloseApproaches   []CloseApproach       `json:"close_approach_data,omitempty"`
}

// CloseApproach records one Earth flyby.
type CloseApproach struct {
	Date           string  `json:"close_approach_date"`
	VelocityKmS    float64 `json:"relative_velocity_km_s"`
	MissDistanceKm float64 `json:"miss_distance_km"`
}

// Normalize fills derived fields: the mass from diameter and density
// when the catalog gives none, and the velocity from the orbit when no
// close-approach data is available.
func (a *Asteroid) Normalize() {
	if a.DensityKgM3 <= 0 {
		a.DensityKgM3 = astro.DefaultDensity
	}
	if a.MassKg <= 0 && a.DiameterKm > 0 {
		a.MassKg = astro.MassFromDiameter(a.DiameterKm, a.DensityKgM3)
	}
	if a.VelocityKmS <= 0 {
		a.VelocityKmS = astro.OrbitalVelocityKmS(a.Orbit.SemiMajorAxisAU, a.Orbit.Eccentricity)
	}
	if a.Orbit.PeriodDays <= 0 && a.Orbit.SemiMajorAxisAU > 0 {
		a.Orbit.PeriodDays = astro.OrbitalPeriodDays(a.Orbit.SemiMajorAxisAU)
	}
}

// Composition buckets the asteroid by spectral class, falling back to a
// brightness heuristic when the class is unknown.
func (a *Asteroid) Composition() string {
	switch {
	case containsAny(a.SpectralType, "C", "B"):
		return "carbonaceous"
	case containsAny(a.SpectralType, "S", "Q"):
		return "rock"
	case containsAny(a.SpectralType, "M", "X"):
		return "iron"
	}
	switch {
	case a.AbsoluteMagnitude > 0 && a.AbsoluteMagnitude < 15:
		return "iron"
	case a.AbsoluteMagnitude < 20:
		return "rock"
	default:
		return "carbonaceous"
	}
}

func containsAny(spectral string, classes ...string) bool {
	if spectral == "" {
		return false
	}
	head := spectral[:1]
	for _, c := range classes {
		if head == c {
			return true
		}
	}
	return false
}
