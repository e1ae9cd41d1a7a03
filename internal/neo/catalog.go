package neo

import (
	"errors"
	"sort"

	"EarthsFirewall/internal/astro"
)

// ErrNotFound is returned when no asteroid matches the requested id or
// designation.
var ErrNotFound = errors.New("neo: asteroid not found")

// fallbackCatalog lists well-characterised NEOs served when the NASA API
// is unreachable. Elements are J2000 heliocentric.
var fallbackCatalog = []Asteroid{
	{
		ID: "433", Name: "Eros",
		DiameterKm: 16.84, MassKg: 6.69e15, VelocityKmS: 24.36,
		AbsoluteMagnitude: 11.16, AlbedoValue: 0.25, SpectralType: "S",
		Orbit: astro.OrbitalElements{
			SemiMajorAxisAU: 1.458, Eccentricity: 0.223, InclinationDeg: 10.829,
			ArgPerihelion: 178.664, LongAscNode: 304.401, PeriodDays: 643.219,
		},
	},
	{
		ID: "99942", Name: "Apophis", Hazardous: true,
		DiameterKm: 0.37, MassKg: 6.1e10, VelocityKmS: 30.73,
		AbsoluteMagnitude: 19.7, AlbedoValue: 0.23, SpectralType: "S",
		Orbit: astro.OrbitalElements{
			SemiMajorAxisAU: 0.922, Eccentricity: 0.191, InclinationDeg: 3.331,
			ArgPerihelion: 126.404, LongAscNode: 204.446, PeriodDays: 323.596,
		},
	},
	{
		ID: "101955", Name: "Bennu", Hazardous: true,
		DiameterKm: 0.492, MassKg: 7.3e10, VelocityKmS: 28.0,
		AbsoluteMagnitude: 20.12, AlbedoValue: 0.046, SpectralType: "B",
		Orbit: astro.OrbitalElements{
			SemiMajorAxisAU: 1.126, Eccentricity: 0.204, InclinationDeg: 6.035,
			ArgPerihelion: 66.223, LongAscNode: 2.061, PeriodDays: 436.604,
		},
	},
	{
		ID: "25143", Name: "Itokawa",
		DiameterKm: 0.535, MassKg: 3.5e10, VelocityKmS: 29.73,
		AbsoluteMagnitude: 19.2, AlbedoValue: 0.53, SpectralType: "S",
		Orbit: astro.OrbitalElements{
			SemiMajorAxisAU: 1.324, Eccentricity: 0.280, InclinationDeg: 1.621,
			ArgPerihelion: 162.815, LongAscNode: 69.095, PeriodDays: 556.355,
		},
	},
	{
		ID: "162173", Name: "Ryugu", Hazardous: true,
		DiameterKm: 0.866, MassKg: 4.5e11, VelocityKmS: 27.64,
		AbsoluteMagnitude: 19.25, AlbedoValue: 0.047, SpectralType: "C",
		Orbit: astro.OrbitalElements{
			SemiMajorAxisAU: 1.189, Eccentricity: 0.190, InclinationDeg: 5.884,
			ArgPerihelion: 211.446, LongAscNode: 251.592, PeriodDays: 473.723,
		},
	},
}

// FallbackCatalog returns a copy of the built-in asteroid set with
// derived fields filled in.
func FallbackCatalog() []Asteroid {
	out := make([]Asteroid, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	for i := range out {
		out[i].Normalize()
	}
	return out
}

// Filter narrows a listing the way the /api/asteroids endpoint does.
type Filter struct {
	HazardousOnly bool
	MinDiameterKm float64
	Limit         int
}

// Apply filters and sorts the set by diameter, largest first. A zero or
// negative limit returns everything that matches.
func (f Filter) Apply(in []Asteroid) []Asteroid {
	out := make([]Asteroid, 0, len(in))
	for _, a := range in {
		if f.HazardousOnly && !a.Hazardous {
			continue
		}
		if a.DiameterKm < f.MinDiameterKm {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DiameterKm > out[j].DiameterKm })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// FindByID looks an asteroid up by id or name in the given set.
func FindByID(set []Asteroid, id string) (Asteroid, error) {
	for _, a := range set {
		if a.ID == id || a.Name == id {
			return a, nil
		}
	}
	return Asteroid{}, ErrNotFound
}
