package deflect

import "fmt"

// Candidate pairs a computed mission result with suitability guidance.
type Candidate struct {
	Result         Result   `json:"result"`
	Suitability    string   `json:"suitability"`
	RecommendedFor []string `json:"recommended_for"`
}

// Recommendation is the full strategy comparison for a threat.
type Recommendation struct {
	Strategies  map[string]Candidate `json:"strategies"`
	Recommended string               `json:"recommended_strategy"`
	Reason      string               `json:"recommendation_reason"`
}

// Reference mission parameters used when comparing strategies.
const (
	refImpactorMassKg = 1000.0
	refImpactorVelKmS = 6.6 // DART closing speed
	refTractorMassKg  = 2000.0
	refHoverDistM     = 100.0
	refIonThrustN     = 0.5
	refNuclearYieldMt = 1.0
)

var strategyReasons = map[string]string{
	StrategyKineticImpactor: "Kinetic impactor is the most proven method (DART mission) with high success probability and reasonable cost.",
	StrategyGravityTractor:  "Gravity tractor provides precise deflection for small asteroids with sufficient warning time.",
	StrategyIonBeam:         "Ion beam offers continuous control and high precision for medium-sized asteroids.",
	StrategyNuclear:         "Nuclear deflection is the only viable option for large asteroids or short warning scenarios.",
}

// Recommend evaluates every feasible strategy for an asteroid of the
// given mass and diameter with leadYears of warning, and picks the best
// by confidence per unit cost. Recommended is empty when nothing works.
func Recommend(asteroidMassKg, diameterKm, leadYears, impactVelKmS float64) Recommendation {
	strategies := map[string]Candidate{}

	if leadYears > 2 {
		r := KineticImpactor(asteroidMassKg, refImpactorMassKg, refImpactorVelKmS, leadYears, impactVelKmS)
		strategies[StrategyKineticImpactor] = Candidate{
			Result:         r,
			Suitability:    suitability(r, "high"),
			RecommendedFor: []string{"small_medium_asteroids", "sufficient_warning"},
		}
	}
	if leadYears > 10 && diameterKm < 0.5 {
		r := GravityTractor(asteroidMassKg, refTractorMassKg, refHoverDistM, leadYears, impactVelKmS)
		strategies[StrategyGravityTractor] = Candidate{
			Result:         r,
			Suitability:    suitability(r, "high"),
			RecommendedFor: []string{"small_asteroids", "long_warning", "precise_deflection"},
		}
	}
	if leadYears > 5 {
		r := IonBeam(asteroidMassKg, refIonThrustN, leadYears, impactVelKmS)
		strategies[StrategyIonBeam] = Candidate{
			Result:         r,
			Suitability:    suitability(r, "medium"),
			RecommendedFor: []string{"medium_asteroids", "continuous_control"},
		}
	}
	if leadYears < 5 || diameterKm > 1.0 {
		r := Nuclear(asteroidMassKg, refNuclearYieldMt, leadYears, impactVelKmS)
		c := Candidate{
			Result:         r,
			RecommendedFor: []string{"large_asteroids", "short_warning", "emergency"},
		}
		if r.Success {
			c.Suitability = "last_resort"
		} else {
			c.Suitability = "not_recommended"
		}
		strategies[StrategyNuclear] = c
	}

	best := ""
	bestScore := 0.0
	for name, c := range strategies {
		if !c.Result.Success || c.Result.CostUSD <= 0 {
			continue
		}
		score := c.Result.Confidence / c.Result.CostUSD * 1e9
		if score > bestScore {
			bestScore = score
			best = name
		}
	}

	reason := "No viable mitigation strategies available with current technology and time constraints."
	if best != "" {
		reason = strategyReasons[best]
	}
	return Recommendation{Strategies: strategies, Recommended: best, Reason: reason}
}

// ReferenceMission runs the named strategy with the standard mission
// parameters used by Recommend. It returns an error for unknown
// strategy names.
func ReferenceMission(strategy string, asteroidMassKg, leadYears, impactVelKmS float64) (Result, error) {
	switch strategy {
	case StrategyKineticImpactor:
		return KineticImpactor(asteroidMassKg, refImpactorMassKg, refImpactorVelKmS, leadYears, impactVelKmS), nil
	case StrategyGravityTractor:
		return GravityTractor(asteroidMassKg, refTractorMassKg, refHoverDistM, leadYears, impactVelKmS), nil
	case StrategyIonBeam:
		return IonBeam(asteroidMassKg, refIonThrustN, leadYears, impactVelKmS), nil
	case StrategyNuclear:
		return Nuclear(asteroidMassKg, refNuclearYieldMt, leadYears, impactVelKmS), nil
	}
	return Result{}, fmt.Errorf("unknown strategy %q", strategy)
}

func suitability(r Result, whenSuccessful string) string {
	if r.Success {
		return whenSuccessful
	}
	return "low"
}
