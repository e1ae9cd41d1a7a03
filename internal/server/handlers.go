package server

import (
	"net/http"
	"strconv"
	"strings"

	"EarthsFirewall/internal/astro"
	"EarthsFirewall/internal/deflect"
	"EarthsFirewall/internal/neo"
)

/* ----------------------------- Asteroids ---------------------------- */

func (a *App) handleListAsteroids(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := neo.Filter{
		HazardousOnly: q.Get("hazardous") == "true",
	}
	if v, err := strconv.ParseFloat(q.Get("min_diameter"), 64); err == nil {
		f.MinDiameterKm = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}

	matched := f.Apply(a.Catalog)
	out := make([]asteroidSummaryDTO, 0, len(matched))
	for _, ast := range matched {
		out = append(out, toAsteroidSummary(ast))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetAsteroid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ast, err := neo.FindByID(a.Catalog, id)
	if err != nil {
		// Not in the cached catalog; the live API may still know it.
		live, liveErr := a.NASA.Lookup(r.Context(), id)
		if liveErr != nil {
			writeError(w, http.StatusNotFound, "asteroid not found: "+id)
			return
		}
		ast = live
	}
	writeJSON(w, http.StatusOK, toAsteroidDetail(ast))
}

/* ------------------------- Impact simulation ------------------------ */

// resolveImpactor fills the request from the catalog when asteroid_id is
// set, otherwise from the explicit parameters with sensible defaults.
func (a *App) resolveImpactor(req *impactRequestDTO) error {
	if req.AsteroidID != "" {
		ast, err := neo.FindByID(a.Catalog, req.AsteroidID)
		if err != nil {
			return err
		}
		req.DiameterKm = ast.DiameterKm
		req.DensityKgM3 = ast.DensityKgM3
		if req.VelocityKmS <= 0 {
			req.VelocityKmS = ast.VelocityKmS
		}
	}
	if req.DensityKgM3 <= 0 {
		req.DensityKgM3 = astro.DefaultDensity
	}
	if req.VelocityKmS <= 0 {
		req.VelocityKmS = 20
	}
	if req.AngleDeg <= 0 || req.AngleDeg > 90 {
		req.AngleDeg = 45
	}
	return nil
}

func (a *App) handleSimulateImpact(w http.ResponseWriter, r *http.Request) {
	var req impactRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.resolveImpactor(&req); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if req.DiameterKm <= 0 {
		writeError(w, http.StatusBadRequest, "diameter or asteroid_id required")
		return
	}

	mass := astro.MassFromDiameter(req.DiameterKm, req.DensityKgM3)
	energy := astro.KineticEnergy(mass, req.VelocityKmS)
	megatons := astro.JoulesToMegatons(energy)
	magnitude := astro.SeismicMagnitude(energy)
	devastation := astro.Devastation(megatons)

	resp := impactResponseDTO{
		EnergyJoules:   energy,
		EnergyMegatons: megatons,
		Crater:         astro.CraterFromEnergy(energy),
		Devastation:    devastation,
		Seismic: seismicDTO{
			Magnitude:  magnitude,
			FeltRadius: astro.FeltRadius(magnitude),
		},
		AffectedCities: astro.CityImpacts(req.Lat, req.Lon, energy, devastation.TotalKm),
	}

	// Blast profile at a few representative ranges.
	for _, d := range []float64{1, 10, 50, 100, 500} {
		resp.Blast = append(resp.Blast, astro.BlastAtDistance(energy, d))
	}
	for _, d := range []float64{10, 100, 1000} {
		resp.Seismic.Samples = append(resp.Seismic.Samples, astro.GroundMotionAt(magnitude, d))
	}

	if req.OceanImpact {
		risk := astro.AssessTsunamiRisk(req.Lat, req.Lon, energy, req.OceanDepthM, true)
		resp.Tsunami = &risk
	}
	if fx := astro.AtmosphericFromYield(megatons, req.OceanImpact); fx.DustEjectedTons > 0 {
		resp.Atmospheric = &fx
	}

	writeJSON(w, http.StatusOK, resp)
}

/* --------------------------- Mitigation ----------------------------- */

func (a *App) handleSimulateMitigation(w http.ResponseWriter, r *http.Request) {
	var req mitigationRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.AsteroidID != "" {
		ast, err := neo.FindByID(a.Catalog, req.AsteroidID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		req.MassKg = ast.MassKg
		req.DiameterKm = ast.DiameterKm
		if req.VelocityKmS <= 0 {
			req.VelocityKmS = ast.VelocityKmS
		}
	}
	if req.MassKg <= 0 && req.DiameterKm > 0 {
		req.MassKg = astro.MassFromDiameter(req.DiameterKm, astro.DefaultDensity)
	}
	if req.MassKg <= 0 {
		writeError(w, http.StatusBadRequest, "mass, diameter or asteroid_id required")
		return
	}
	if req.LeadTimeYears <= 0 {
		writeError(w, http.StatusBadRequest, "lead_time_years must be positive")
		return
	}
	if req.VelocityKmS <= 0 {
		req.VelocityKmS = 20
	}

	// No strategy means "compare them all".
	if req.Strategy == "" {
		rec := deflect.Recommend(req.MassKg, req.DiameterKm, req.LeadTimeYears, req.VelocityKmS)
		writeJSON(w, http.StatusOK, mitigationResponseDTO{Recommendation: &rec})
		return
	}

	var res deflect.Result
	switch req.Strategy {
	case deflect.StrategyKineticImpactor:
		mass, vel := req.SpacecraftMassKg, req.ApproachVelKmS
		if mass <= 0 {
			mass = 1000
		}
		if vel <= 0 {
			vel = 6.6
		}
		res = deflect.KineticImpactor(req.MassKg, mass, vel, req.LeadTimeYears, req.VelocityKmS)
	case deflect.StrategyGravityTractor:
		mass, hover := req.SpacecraftMassKg, req.HoverDistanceM
		if mass <= 0 {
			mass = 2000
		}
		if hover <= 0 {
			hover = 100
		}
		res = deflect.GravityTractor(req.MassKg, mass, hover, req.LeadTimeYears, req.VelocityKmS)
	case deflect.StrategyIonBeam:
		thrust := req.ThrustN
		if thrust <= 0 {
			thrust = 0.5
		}
		res = deflect.IonBeam(req.MassKg, thrust, req.LeadTimeYears, req.VelocityKmS)
	case deflect.StrategyNuclear:
		yield := req.YieldMegatons
		if yield <= 0 {
			yield = 1
		}
		res = deflect.Nuclear(req.MassKg, yield, req.LeadTimeYears, req.VelocityKmS)
	default:
		writeError(w, http.StatusBadRequest, "unknown strategy: "+req.Strategy)
		return
	}
	writeJSON(w, http.StatusOK, mitigationResponseDTO{Result: &res})
}

/* ------------------------ Physics calculator ------------------------ */

func (a *App) handlePhysicsCalculate(w http.ResponseWriter, r *http.Request) {
	var req physicsRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	p := func(key string) float64 { return req.Params[key] }
	results := map[string]float64{}

	switch req.Operation {
	case "kinetic_energy":
		mass := p("mass")
		if mass <= 0 {
			mass = astro.MassFromDiameter(p("diameter"), astro.DefaultDensity)
		}
		energy := astro.KineticEnergy(mass, p("velocity"))
		results["mass_kg"] = mass
		results["energy_joules"] = energy
		results["energy_megatons"] = astro.JoulesToMegatons(energy)
	case "crater":
		angle := p("angle")
		if angle <= 0 {
			angle = 45
		}
		dims := astro.CraterFromEnergy(p("energy"))
		results["scaled_diameter_km"] = astro.CraterDiameter(p("energy"), angle, astro.TargetEarth)
		results["diameter_km"] = dims.DiameterKm
		results["depth_km"] = dims.DepthKm
	case "seismic":
		m := astro.SeismicMagnitude(p("energy"))
		results["magnitude"] = m
		results["felt_radius_km"] = astro.FeltRadius(m)
	case "blast":
		fx := astro.BlastAtDistance(p("energy"), p("distance"))
		results["overpressure_kpa"] = fx.OverpressureKPa
		results["thermal_flux"] = fx.ThermalFlux
	case "tsunami":
		fx := astro.TsunamiAtCoast(p("energy"), p("depth"), p("distance"))
		results["initial_wave_m"] = fx.InitialWaveHeightM
		results["coastal_wave_m"] = fx.CoastalWaveHeightM
		results["arrival_min"] = fx.ArrivalTimeMin
	case "orbital_period":
		results["period_days"] = astro.OrbitalPeriodDays(p("semi_major_axis"))
	case "impact_velocity":
		results["impact_velocity_km_s"] = astro.ImpactVelocity(p("orbital_velocity"), p("earth_velocity"))
	default:
		writeError(w, http.StatusBadRequest, "unknown operation: "+req.Operation)
		return
	}
	writeJSON(w, http.StatusOK, physicsResponseDTO{Operation: req.Operation, Results: results})
}

/* ----------------------------- Scenarios ---------------------------- */

type scenario struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DiameterKm  float64 `json:"diameter"`
	VelocityKmS float64 `json:"velocity"`
	DensityKgM3 float64 `json:"density"`
}

var scenarios = map[string]scenario{
	"chelyabinsk": {
		Name:        "Chelyabinsk",
		Description: "2013 airburst over Russia, the largest recorded entry since Tunguska.",
		DiameterKm:  0.02, VelocityKmS: 19, DensityKgM3: 3300,
	},
	"tunguska": {
		Name:        "Tunguska",
		Description: "1908 airburst that flattened 2000 square kilometers of Siberian forest.",
		DiameterKm:  0.06, VelocityKmS: 15, DensityKgM3: 3000,
	},
	"barringer": {
		Name:        "Barringer",
		Description: "The iron impactor that dug Meteor Crater in Arizona 50,000 years ago.",
		DiameterKm:  0.05, VelocityKmS: 12.8, DensityKgM3: 7800,
	},
	"apophis": {
		Name:        "Apophis",
		Description: "Hypothetical impact of the well-known 2029 close approacher.",
		DiameterKm:  0.34, VelocityKmS: 7.42, DensityKgM3: 3200,
	},
	"impactor-2025": {
		Name:        "Impactor-2025",
		Description: "Hypothetical newly discovered 300 m impactor on a short-warning Earth-crossing orbit.",
		DiameterKm:  0.3, VelocityKmS: 22, DensityKgM3: 3000,
	},
	"chicxulub": {
		Name:        "Chicxulub",
		Description: "The end-Cretaceous impactor. Planetary-scale consequences.",
		DiameterKm:  10, VelocityKmS: 20, DensityKgM3: 3000,
	},
}

type scenarioResponseDTO struct {
	Scenario scenario          `json:"scenario"`
	Impact   impactResponseDTO `json:"impact"`
}

func (a *App) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.PathValue("name"))
	sc, ok := scenarios[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown scenario: "+name)
		return
	}

	mass := astro.MassFromDiameter(sc.DiameterKm, sc.DensityKgM3)
	energy := astro.KineticEnergy(mass, sc.VelocityKmS)
	megatons := astro.JoulesToMegatons(energy)
	magnitude := astro.SeismicMagnitude(energy)

	resp := scenarioResponseDTO{
		Scenario: sc,
		Impact: impactResponseDTO{
			EnergyJoules:   energy,
			EnergyMegatons: megatons,
			Crater:         astro.CraterFromEnergy(energy),
			Devastation:    astro.Devastation(megatons),
			Seismic: seismicDTO{
				Magnitude:  magnitude,
				FeltRadius: astro.FeltRadius(magnitude),
			},
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

/* ---------------------------- Strategies ---------------------------- */

type strategyInfoDTO struct {
	Strategy    string   `json:"strategy"`
	Description string   `json:"description"`
	BestFor     []string `json:"best_for"`
}

var strategyInfos = []strategyInfoDTO{
	{
		Strategy:    deflect.StrategyKineticImpactor,
		Description: "Ram a spacecraft into the asteroid, transferring momentum amplified by ejecta recoil.",
		BestFor:     []string{"small_medium_asteroids", "sufficient_warning"},
	},
	{
		Strategy:    deflect.StrategyGravityTractor,
		Description: "Hover a spacecraft nearby and let its gravity slowly tug the asteroid off course.",
		BestFor:     []string{"small_asteroids", "long_warning", "precise_deflection"},
	},
	{
		Strategy:    deflect.StrategyIonBeam,
		Description: "Point an ion engine at the surface for a continuous, finely controlled push.",
		BestFor:     []string{"medium_asteroids", "continuous_control"},
	},
	{
		Strategy:    deflect.StrategyNuclear,
		Description: "Detonate a standoff nuclear device to vaporize surface material and recoil the body.",
		BestFor:     []string{"large_asteroids", "short_warning", "emergency"},
	},
}

func (a *App) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, strategyInfos)
}
