// Package deflect models planetary-defense missions as closed-form
// momentum-transfer calculations: kinetic impactors, gravity tractors,
// ion-beam shepherds and nuclear standoff detonations.
package deflect

import (
	"math"

	"EarthsFirewall/internal/astro"
)

// Strategy names accepted over the API.
const (
	StrategyKineticImpactor = "kinetic_impactor"
	StrategyGravityTractor  = "gravity_tractor"
	StrategyIonBeam         = "ion_beam"
	StrategyNuclear         = "nuclear"
)

// DART demonstrated a momentum enhancement factor of roughly 3.5 from
// ejecta recoil.
const dartBeta = 3.5

// OrbitalChange summarises how the deflection perturbs the orbit.
type OrbitalChange struct {
	SemiMajorAxisAU float64 `json:"semi_major_axis_change"`
	Eccentricity    float64 `json:"eccentricity_change"`
	InclinationDeg  float64 `json:"inclination_change"`
}

// Result is the outcome of a deflection attempt. Success means the
// asteroid is displaced by more than one Earth radius at encounter.
type Result struct {
	Strategy             string        `json:"strategy"`
	Success              bool          `json:"success"`
	VelocityChangeMS     float64       `json:"velocity_change"`
	DeflectionDistanceKm float64       `json:"deflection_distance"`
	OrbitalChange        OrbitalChange `json:"orbital_change"`
	Confidence           float64       `json:"confidence_level"`
	CostUSD              float64       `json:"mission_cost"`
	DurationYears        float64       `json:"mission_duration"`
}

// KineticImpactor computes a DART-style deflection: spacecraftMassKg
// hitting at approachVelKmS, leadYears before the predicted impact of an
// asteroid moving at impactVelKmS.
func KineticImpactor(asteroidMassKg, spacecraftMassKg, approachVelKmS, leadYears, impactVelKmS float64) Result {
	if asteroidMassKg <= 0 || leadYears <= 0 {
		return Result{Strategy: StrategyKineticImpactor}
	}
	momentum := spacecraftMassKg * approachVelKmS * 1000 * dartBeta
	dv := momentum / asteroidMassKg

	res := buildResult(StrategyKineticImpactor, dv, leadYears, impactVelKmS)
	res.CostUSD = kineticImpactorCost(spacecraftMassKg, leadYears)
	res.Confidence = math.Min(0.95, 0.5+0.1*leadYears)
	return res
}

// GravityTractor computes the slow gravitational tug of a spacecraft
// hovering hoverDistanceM from the asteroid for leadYears.
func GravityTractor(asteroidMassKg, spacecraftMassKg, hoverDistanceM, leadYears, impactVelKmS float64) Result {
	if asteroidMassKg <= 0 || leadYears <= 0 || hoverDistanceM <= 0 {
		return Result{Strategy: StrategyGravityTractor}
	}
	force := astro.GravitationalConstant * spacecraftMassKg * asteroidMassKg / (hoverDistanceM * hoverDistanceM)
	accel := force / asteroidMassKg
	dv := accel * leadYears * astro.SecondsPerYear

	res := buildResult(StrategyGravityTractor, dv, leadYears, impactVelKmS)
	res.CostUSD = gravityTractorCost(spacecraftMassKg, leadYears)
	res.Confidence = math.Min(0.8, 0.3+0.05*leadYears)
	return res
}

// IonBeam computes continuous low-thrust deflection by an ion-beam
// shepherd producing thrustN newtons for leadYears.
func IonBeam(asteroidMassKg, thrustN, leadYears, impactVelKmS float64) Result {
	if asteroidMassKg <= 0 || leadYears <= 0 {
		return Result{Strategy: StrategyIonBeam}
	}
	impulse := thrustN * leadYears * astro.SecondsPerYear
	dv := impulse / asteroidMassKg

	res := buildResult(StrategyIonBeam, dv, leadYears, impactVelKmS)
	res.CostUSD = ionBeamCost(thrustN, leadYears)
	res.Confidence = math.Min(0.9, 0.6+0.1*leadYears)
	return res
}

// Nuclear computes a standoff nuclear deflection of yieldMegatons.
// The momentum coupling is the optimistic sqrt(2*E*m) bound.
func Nuclear(asteroidMassKg, yieldMegatons, leadYears, impactVelKmS float64) Result {
	if asteroidMassKg <= 0 || leadYears <= 0 || yieldMegatons <= 0 {
		return Result{Strategy: StrategyNuclear}
	}
	yieldJ := astro.MegatonsToJoules(yieldMegatons)
	momentum := math.Sqrt(2 * yieldJ * asteroidMassKg)
	dv := momentum / asteroidMassKg

	res := buildResult(StrategyNuclear, dv, leadYears, impactVelKmS)
	res.CostUSD = nuclearCost(yieldMegatons, leadYears)
	res.Confidence = math.Min(0.7, 0.4+0.05*leadYears)
	return res
}

// buildResult propagates a velocity change of dv m/s over the lead time.
// The displacement at encounter grows linearly with time; success
// requires clearing one Earth radius.
func buildResult(strategy string, dvMS, leadYears, impactVelKmS float64) Result {
	leadSeconds := leadYears * astro.SecondsPerYear
	deflectionKm := dvMS * leadSeconds / 1000

	var change OrbitalChange
	if impactVelKmS > 0 {
		ratio := dvMS / (impactVelKmS * 1000)
		change = OrbitalChange{
			SemiMajorAxisAU: ratio * 0.01,
			Eccentricity:    ratio * 0.001,
			InclinationDeg:  ratio * 0.1,
		}
	}

	return Result{
		Strategy:             strategy,
		Success:              deflectionKm > astro.EarthRadiusKm,
		VelocityChangeMS:     dvMS,
		DeflectionDistanceKm: deflectionKm,
		OrbitalChange:        change,
		DurationYears:        leadYears,
	}
}

// Cost models scale from reference missions: DART (~$325M, 500 kg),
// notional tractor/ion/nuclear baselines. Short lead times carry a
// schedule premium.

func kineticImpactorCost(spacecraftMassKg, leadYears float64) float64 {
	base := 325e6
	massFactor := math.Sqrt(spacecraftMassKg / 500)
	timeFactor := math.Pow(10/leadYears, 0.3)
	return base * massFactor * timeFactor
}

func gravityTractorCost(spacecraftMassKg, leadYears float64) float64 {
	base := 500e6
	massFactor := math.Pow(spacecraftMassKg/1000, 0.6)
	return base * massFactor * leadYears / 5
}

func ionBeamCost(thrustN, leadYears float64) float64 {
	base := 800e6
	thrustFactor := math.Pow(thrustN/0.1, 0.4)
	return base * thrustFactor * leadYears / 3
}

func nuclearCost(yieldMegatons, leadYears float64) float64 {
	base := 2000e6
	yieldFactor := math.Pow(yieldMegatons, 0.3)
	timeFactor := math.Pow(1/leadYears, 0.5)
	return base * yieldFactor * timeFactor
}
