package deflect

import (
	"math"
	"testing"

	"EarthsFirewall/internal/astro"
)

// apophisMass is roughly the mass of a 370 m stony asteroid in kg.
var apophisMass = astro.MassFromDiameter(0.37, 3000)

func TestKineticImpactorDeltaV(t *testing.T) {
	// dv = m_sc * v * beta / m_ast, in m/s.
	r := KineticImpactor(1e10, 500, 6.6, 10, 20)
	want := 500 * 6600 * 3.5 / 1e10
	if math.Abs(r.VelocityChangeMS-want) > 1e-12 {
		t.Errorf("dv = %g m/s, want %g", r.VelocityChangeMS, want)
	}
	if r.Strategy != StrategyKineticImpactor {
		t.Errorf("strategy = %q", r.Strategy)
	}
	if r.DurationYears != 10 {
		t.Errorf("duration = %g years, want 10", r.DurationYears)
	}
}

func TestKineticImpactorSuccessThreshold(t *testing.T) {
	// A small asteroid with a decade of warning is clearly deflectable.
	ok := KineticImpactor(1e9, 1000, 6.6, 10, 20)
	if !ok.Success {
		t.Errorf("expected success, deflection = %g km", ok.DeflectionDistanceKm)
	}
	if ok.DeflectionDistanceKm <= astro.EarthRadiusKm {
		t.Errorf("successful mission must clear one Earth radius, got %g", ok.DeflectionDistanceKm)
	}

	// A billion-tonne body with one year of warning is not.
	fail := KineticImpactor(1e15, 1000, 6.6, 1, 20)
	if fail.Success {
		t.Errorf("expected failure, deflection = %g km", fail.DeflectionDistanceKm)
	}
}

func TestKineticImpactorDegenerateInputs(t *testing.T) {
	for _, r := range []Result{
		KineticImpactor(0, 1000, 6.6, 10, 20),
		KineticImpactor(1e10, 1000, 6.6, 0, 20),
		KineticImpactor(-5, 1000, 6.6, 10, 20),
	} {
		if r.Success || r.VelocityChangeMS != 0 || r.DeflectionDistanceKm != 0 {
			t.Errorf("degenerate input should zero the result: %+v", r)
		}
		if math.IsNaN(r.CostUSD) || math.IsInf(r.CostUSD, 0) {
			t.Errorf("cost must stay finite: %g", r.CostUSD)
		}
	}
}

func TestGravityTractorScalesWithTime(t *testing.T) {
	short := GravityTractor(apophisMass, 2000, 100, 5, 20)
	long := GravityTractor(apophisMass, 2000, 100, 20, 20)
	if long.VelocityChangeMS <= short.VelocityChangeMS {
		t.Error("longer tugging should accumulate more delta-v")
	}
	if long.Confidence > 0.8 {
		t.Errorf("tractor confidence caps at 0.8, got %g", long.Confidence)
	}
}

func TestGravityTractorHoverDistance(t *testing.T) {
	near := GravityTractor(apophisMass, 2000, 100, 10, 20)
	far := GravityTractor(apophisMass, 2000, 400, 10, 20)
	// Inverse-square: 4x distance means 16x weaker.
	ratio := near.VelocityChangeMS / far.VelocityChangeMS
	if math.Abs(ratio-16) > 1e-6 {
		t.Errorf("hover distance ratio = %g, want 16", ratio)
	}

	if r := GravityTractor(apophisMass, 2000, 0, 10, 20); r.Success {
		t.Error("zero hover distance must not succeed (or divide by zero)")
	}
}

func TestIonBeamImpulse(t *testing.T) {
	r := IonBeam(1e10, 0.5, 4, 20)
	want := 0.5 * 4 * astro.SecondsPerYear / 1e10
	if math.Abs(r.VelocityChangeMS-want) > 1e-15 {
		t.Errorf("ion beam dv = %g, want %g", r.VelocityChangeMS, want)
	}
}

func TestNuclearMomentumBound(t *testing.T) {
	r := Nuclear(1e12, 1.0, 3, 20)
	wantDv := math.Sqrt(2*astro.MegatonsToJoules(1)*1e12) / 1e12
	if math.Abs(r.VelocityChangeMS-wantDv) > 1e-9 {
		t.Errorf("nuclear dv = %g, want %g", r.VelocityChangeMS, wantDv)
	}
	// Nuclear confidence never exceeds 0.7.
	big := Nuclear(1e12, 10, 50, 20)
	if big.Confidence > 0.7 {
		t.Errorf("nuclear confidence = %g, cap is 0.7", big.Confidence)
	}
}

func TestOrbitalChangeScalesWithDv(t *testing.T) {
	small := KineticImpactor(1e12, 500, 6.6, 10, 20)
	large := KineticImpactor(1e12, 5000, 6.6, 10, 20)
	if large.OrbitalChange.SemiMajorAxisAU <= small.OrbitalChange.SemiMajorAxisAU {
		t.Error("bigger impactor should perturb the orbit more")
	}
}

func TestCostModels(t *testing.T) {
	// Short-notice kinetic missions cost more.
	rushed := KineticImpactor(1e10, 500, 6.6, 2, 20)
	planned := KineticImpactor(1e10, 500, 6.6, 10, 20)
	if rushed.CostUSD <= planned.CostUSD {
		t.Errorf("schedule premium missing: rushed=%g planned=%g", rushed.CostUSD, planned.CostUSD)
	}

	// Tractor cost grows with duration.
	if GravityTractor(1e10, 2000, 100, 20, 20).CostUSD <= GravityTractor(1e10, 2000, 100, 5, 20).CostUSD {
		t.Error("tractor cost should grow with mission duration")
	}
}

func TestRecommendLongWarningSmallBody(t *testing.T) {
	mass := astro.MassFromDiameter(0.2, 3000)
	rec := Recommend(mass, 0.2, 15, 20)

	for _, name := range []string{StrategyKineticImpactor, StrategyGravityTractor, StrategyIonBeam} {
		if _, ok := rec.Strategies[name]; !ok {
			t.Errorf("expected %s to be considered", name)
		}
	}
	if _, ok := rec.Strategies[StrategyNuclear]; ok {
		t.Error("nuclear should not be considered for a small body with long warning")
	}
	if rec.Recommended == "" {
		t.Fatal("a 200 m body with 15 years of warning must have a viable strategy")
	}
	if rec.Reason == "" {
		t.Error("recommendation must carry a reason")
	}
}

func TestRecommendShortWarning(t *testing.T) {
	mass := astro.MassFromDiameter(2.0, 3000)
	rec := Recommend(mass, 2.0, 1, 20)

	if _, ok := rec.Strategies[StrategyNuclear]; !ok {
		t.Error("nuclear must be on the table for short-warning large bodies")
	}
	if _, ok := rec.Strategies[StrategyKineticImpactor]; ok {
		t.Error("kinetic impactor needs more than 2 years of lead time")
	}
}

func TestRecommendHopelessCase(t *testing.T) {
	// An 800 m body with six years of warning: too small for the nuclear
	// window, too heavy for impactor or ion beam to clear an Earth radius.
	mass := astro.MassFromDiameter(0.8, 3000)
	rec := Recommend(mass, 0.8, 6, 20)
	if rec.Recommended != "" {
		t.Errorf("no strategy should be recommended, got %q", rec.Recommended)
	}
	if rec.Reason == "" {
		t.Error("hopeless case still needs an explanatory reason")
	}
}

func TestReferenceMission(t *testing.T) {
	mass := astro.MassFromDiameter(0.05, 3000)
	for _, strategy := range []string{StrategyKineticImpactor, StrategyGravityTractor, StrategyIonBeam, StrategyNuclear} {
		res, err := ReferenceMission(strategy, mass, 8, 18)
		if err != nil {
			t.Fatalf("ReferenceMission(%s): %v", strategy, err)
		}
		if res.Strategy != strategy {
			t.Errorf("Strategy = %q, want %q", res.Strategy, strategy)
		}
		if res.VelocityChangeMS <= 0 {
			t.Errorf("%s: VelocityChangeMS = %v, want > 0", strategy, res.VelocityChangeMS)
		}
	}

	if _, err := ReferenceMission("solar_sail", mass, 8, 18); err == nil {
		t.Error("unknown strategy returned nil error")
	}
}
