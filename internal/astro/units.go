// Package astro implements the closed-form impact physics used by the
// simulator: kinetic energy, crater scaling, blast and thermal falloff,
// seismic conversion, tsunami estimates and Keplerian orbit sampling.
// All functions are stateless; units are documented per function.
package astro

import "math"

const (
	GravitationalConstant = 6.674e-11    // m^3 kg^-1 s^-2
	EarthRadiusKm         = 6371.0       // km
	EarthMassKg           = 5.972e24     // kg
	SunMassKg             = 1.989e30     // kg
	DefaultDensity        = 3000.0       // kg/m^3, stony asteroid
	SpeedOfLightKmS       = 299792.458   // km/s
	AuKm                  = 1.496e8      // km per astronomical unit
	AuM                   = 1.496e11     // m per astronomical unit
	EarthOrbitalVelKmS    = 30.0         // km/s, Earth around the Sun

	MegatonJoules = 4.184e15 // J per megaton TNT
	TonTNTJoules  = 4.184e9  // J per ton TNT
	ErgsPerJoule  = 1e7

	SecondsPerDay  = 86400.0
	SecondsPerYear = 365.25 * SecondsPerDay
)

// Scaling factors for the devastation radii power laws, km per MT^(1/3).
const (
	blastScale   = 1.2
	thermalScale = 3.0
	seismicScale = 0.5
)

const (
	MinCraterKm = 0.001 // even small impacts leave a crater
	MaxCraterKm = 1000.0
)

// JoulesToMegatons converts an energy in joules to megatons of TNT.
func JoulesToMegatons(j float64) float64 { return j / MegatonJoules }

// MegatonsToJoules converts megatons of TNT to joules.
func MegatonsToJoules(mt float64) float64 { return mt * MegatonJoules }

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Haversine returns the great-circle distance in km between two
// latitude/longitude points in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}
