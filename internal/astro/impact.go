package astro

import "math"

// CraterTarget selects the material scaling constants for crater formation.
type CraterTarget string

const (
	TargetEarth CraterTarget = "earth"
	TargetMoon  CraterTarget = "moon"
	TargetMars  CraterTarget = "mars"
)

type craterScaling struct {
	k float64 // km per erg^(1/3)
	n float64 // impact-angle exponent
}

var craterScalings = map[CraterTarget]craterScaling{
	TargetEarth: {k: 0.1, n: 0.3},
	TargetMoon:  {k: 0.08, n: 0.3},
	TargetMars:  {k: 0.12, n: 0.3},
}

// MassFromDiameter returns the mass in kg of a spherical body with the
// given diameter in km and bulk density in kg/m^3. Non-positive density
// falls back to DefaultDensity.
func MassFromDiameter(diameterKm, density float64) float64 {
	if density <= 0 {
		density = DefaultDensity
	}
	radiusM := diameterKm * 1000 / 2
	volume := 4.0 / 3.0 * math.Pi * radiusM * radiusM * radiusM
	return volume * density
}

// KineticEnergy returns the impact kinetic energy in joules for a mass in
// kg moving at velocityKmS km/s.
func KineticEnergy(massKg, velocityKmS float64) float64 {
	v := velocityKmS * 1000
	return 0.5 * massKg * v * v
}

// ImpactVelocity combines the asteroid's orbital velocity with Earth's
// own orbital motion in quadrature, both in km/s.
func ImpactVelocity(orbitalVelKmS, earthVelKmS float64) float64 {
	return math.Sqrt(orbitalVelKmS*orbitalVelKmS + earthVelKmS*earthVelKmS)
}

// CraterDiameter estimates the crater diameter in km from the impact
// energy in joules and the impact angle in degrees (0 = grazing,
// 90 = vertical), using D = k * E^(1/3) * sin(angle)^n with per-target
// constants. The result is floored at MinCraterKm.
func CraterDiameter(energyJ, impactAngleDeg float64, target CraterTarget) float64 {
	sc, ok := craterScalings[target]
	if !ok {
		sc = craterScalings[TargetEarth]
	}
	if energyJ <= 0 {
		return MinCraterKm
	}
	energyErgs := energyJ * ErgsPerJoule
	angleFactor := math.Pow(math.Sin(impactAngleDeg*math.Pi/180), sc.n)
	d := sc.k * math.Cbrt(energyErgs) * angleFactor
	return Clamp(d, MinCraterKm, MaxCraterKm)
}

// CraterDimensions describes the excavated crater.
type CraterDimensions struct {
	DiameterKm      float64 `json:"diameter_km"`
	DepthKm         float64 `json:"depth_km"`
	VolumeKm3       float64 `json:"volume_km3"`
	TNTEquivalentMt float64 `json:"tnt_equivalent_megatons"`
	Complex         bool    `json:"complex"`
}

// CraterFromEnergy computes crater dimensions from impact energy using
// experimental scaling relations. Impacts below one megaton form simple
// bowl craters (depth ≈ D/5); larger impacts collapse into complex
// craters (depth ≈ D/10).
func CraterFromEnergy(energyJ float64) CraterDimensions {
	tntTons := energyJ / TonTNTJoules
	megatons := tntTons / 1e6

	var dims CraterDimensions
	dims.TNTEquivalentMt = megatons
	if megatons < 1 {
		dims.DiameterKm = 1.2 * math.Pow(megatons, 0.294)
		dims.DepthKm = dims.DiameterKm / 5.0
	} else {
		dims.Complex = true
		dims.DiameterKm = 1.8 * math.Pow(megatons, 0.294)
		dims.DepthKm = dims.DiameterKm / 10.0
	}
	if dims.DiameterKm < MinCraterKm {
		dims.DiameterKm = MinCraterKm
	}
	r := dims.DiameterKm / 2
	dims.VolumeKm3 = math.Pi * r * r * dims.DepthKm
	return dims
}

// DevastationRadii holds the footprint of the main damage mechanisms, km.
type DevastationRadii struct {
	BlastKm   float64 `json:"blast_radius"`
	ThermalKm float64 `json:"thermal_radius"`
	SeismicKm float64 `json:"seismic_radius"`
	TotalKm   float64 `json:"total_radius"`
}

// Devastation estimates damage radii from the TNT-equivalent yield in
// megatons using nuclear-weapon cube-root scaling. Total is the maximum
// of the individual mechanisms.
func Devastation(megatons float64) DevastationRadii {
	if megatons < 0 {
		megatons = 0
	}
	cbrt := math.Cbrt(megatons)
	r := DevastationRadii{
		BlastKm:   blastScale * cbrt,
		ThermalKm: thermalScale * cbrt,
		SeismicKm: seismicScale * cbrt,
	}
	r.TotalKm = math.Max(r.BlastKm, math.Max(r.ThermalKm, r.SeismicKm))
	return r
}

// BlastEffects describes overpressure and thermal loading at a distance.
type BlastEffects struct {
	OverpressureKPa float64 `json:"overpressure_kpa"`
	ThermalFlux     float64 `json:"thermal_flux_cal_cm2"`
	DamageLevel     string  `json:"damage_level"`
	DistanceKm      float64 `json:"distance_km"`
}

// BlastAtDistance evaluates blast effects at distanceKm from an impact of
// the given energy. Both overpressure and thermal flux follow cube-root
// yield scaling with inverse-square distance falloff.
func BlastAtDistance(energyJ, distanceKm float64) BlastEffects {
	if distanceKm <= 0 {
		distanceKm = 1
	}
	tntTons := energyJ / TonTNTJoules
	cbrt := math.Cbrt(tntTons)
	over := 1000 * cbrt / (distanceKm * distanceKm)
	return BlastEffects{
		OverpressureKPa: over,
		ThermalFlux:     1000 * cbrt / (distanceKm * distanceKm),
		DamageLevel:     blastDamageLevel(over),
		DistanceKm:      distanceKm,
	}
}

func blastDamageLevel(overpressureKPa float64) string {
	switch {
	case overpressureKPa > 200:
		return "Complete destruction"
	case overpressureKPa > 100:
		return "Severe damage"
	case overpressureKPa > 50:
		return "Moderate damage"
	case overpressureKPa > 20:
		return "Light damage"
	default:
		return "No significant damage"
	}
}

// ImpactPressure returns the stagnation pressure in Pa for an impactor of
// the given density hitting at velocityKmS.
func ImpactPressure(velocityKmS, density float64) float64 {
	if density <= 0 {
		density = DefaultDensity
	}
	v := velocityKmS * 1000
	return density * v * v
}

// ShockWaveVelocity approximates the shock front speed in the target in
// km/s. Material detail is deliberately ignored.
func ShockWaveVelocity(impactVelKmS float64) float64 {
	return impactVelKmS * 1.5
}

// EjectaVelocity estimates the speed of excavated material in km/s;
// it scales with impact speed and falls off with crater size.
func EjectaVelocity(impactVelKmS, craterDiameterKm float64) float64 {
	if craterDiameterKm <= 0 {
		craterDiameterKm = MinCraterKm
	}
	return impactVelKmS * 0.1 / craterDiameterKm
}
