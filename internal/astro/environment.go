package astro

import "math"

// SeismicMagnitude converts impact energy in joules to an equivalent
// earthquake magnitude using the Gutenberg-Richter energy relation
// E_ergs = 10^(1.5M + 4.8). Non-positive energy maps to magnitude 0.
func SeismicMagnitude(energyJ float64) float64 {
	if energyJ <= 0 {
		return 0
	}
	m := (math.Log10(energyJ*ErgsPerJoule) - 4.8) / 1.5
	return math.Max(0, m)
}

// MagnitudeToEnergy is the inverse of SeismicMagnitude, returning joules.
func MagnitudeToEnergy(magnitude float64) float64 {
	return math.Pow(10, 1.5*magnitude+4.8) / ErgsPerJoule
}

// GroundMotion describes shaking severity at a distance from the source.
type GroundMotion struct {
	Magnitude       float64 `json:"magnitude"`
	DistanceKm      float64 `json:"distance_km"`
	PGA             float64 `json:"pga"` // peak ground acceleration, g
	PGV             float64 `json:"pgv"` // peak ground velocity, cm/s
	MMI             float64 `json:"mmi"` // Modified Mercalli Intensity
	DamageLevel     string  `json:"damage_level"`
	PWaveArrivalSec float64 `json:"p_wave_arrival_seconds"`
	SWaveArrivalSec float64 `json:"s_wave_arrival_seconds"`
	FeltRadiusKm    float64 `json:"felt_radius_km"`
}

// GroundMotionAt predicts shaking parameters for an equivalent-magnitude
// event at distanceKm, using simplified ShakeMap-style attenuation.
// PGA, PGV and MMI are clamped to their physical ranges.
func GroundMotionAt(magnitude, distanceKm float64) GroundMotion {
	pga := 0.39 * math.Exp(0.5*magnitude-0.0026*distanceKm-2.0)
	pga = Clamp(pga, 0.001, 2.0)

	pgv := 0.16 * math.Exp(0.6*magnitude-0.003*distanceKm-2.0)
	pgv = Clamp(pgv, 0.1, 200)

	mmi := 3.66 + 1.66*magnitude - 0.0003*distanceKm
	mmi = Clamp(mmi, 1.0, 12.0)

	return GroundMotion{
		Magnitude:       magnitude,
		DistanceKm:      distanceKm,
		PGA:             pga,
		PGV:             pgv,
		MMI:             mmi,
		DamageLevel:     shakingDamageLevel(pga, mmi),
		PWaveArrivalSec: distanceKm / 6.0, // P-waves travel ~6 km/s
		SWaveArrivalSec: distanceKm / 3.5, // S-waves travel ~3.5 km/s
		FeltRadiusKm:    FeltRadius(magnitude),
	}
}

func shakingDamageLevel(pga, mmi float64) string {
	switch {
	case mmi >= 10 || pga >= 1.0:
		return "Extreme damage - Most buildings destroyed"
	case mmi >= 9 || pga >= 0.5:
		return "Severe damage - Many buildings severely damaged"
	case mmi >= 8 || pga >= 0.2:
		return "Moderate damage - Some buildings damaged"
	case mmi >= 7 || pga >= 0.1:
		return "Light damage - Minor damage to buildings"
	case mmi >= 6 || pga >= 0.05:
		return "Slight damage - Some damage to poorly constructed buildings"
	case mmi >= 5 || pga >= 0.02:
		return "Felt by all, some damage to poorly constructed buildings"
	case mmi >= 4 || pga >= 0.01:
		return "Felt by many, no damage"
	default:
		return "Felt by few or no damage"
	}
}

// FeltRadius returns the radius in km inside which shaking of the given
// magnitude is perceptible, capped at 10,000 km.
func FeltRadius(magnitude float64) float64 {
	r := math.Pow(10, 0.5*magnitude-2.0)
	return math.Min(r, 10000)
}

// TsunamiEffects describes the wave generated by an oceanic impact.
type TsunamiEffects struct {
	InitialWaveHeightM   float64 `json:"initial_wave_height_m"`
	CoastalWaveHeightM   float64 `json:"coastal_wave_height_m"`
	InundationDistanceKm float64 `json:"inundation_distance_km"`
	ArrivalTimeMin       float64 `json:"tsunami_arrival_time_min"`
}

// TsunamiAtCoast models the wave from an impact of energyJ joules into
// water of depth waterDepthM, evaluated at a coastline coastDistanceKm
// away. The open-ocean wave decays exponentially with distance.
func TsunamiAtCoast(energyJ, waterDepthM, coastDistanceKm float64) TsunamiEffects {
	if waterDepthM <= 0 {
		waterDepthM = 4000
	}
	tntTons := energyJ / TonTNTJoules
	initial := 0.5 * math.Cbrt(tntTons) * math.Pow(waterDepthM, -0.25)
	coastal := initial * math.Exp(-coastDistanceKm/1000)
	return TsunamiEffects{
		InitialWaveHeightM:   initial,
		CoastalWaveHeightM:   coastal,
		InundationDistanceKm: 2.0 * coastal,
		ArrivalTimeMin:       coastDistanceKm / 500 * 60, // deep-water speed ~500 km/h
	}
}

// TsunamiRisk summarises the threat from an ocean impact.
type TsunamiRisk struct {
	HighRisk           bool               `json:"high_risk"`
	WaveHeightM        float64            `json:"wave_height"`
	AffectedCoastlines []string           `json:"affected_coastlines"`
	TravelTimeHours    map[string]float64 `json:"travel_time"`
	InundationKm       float64            `json:"inundation_distance"`
}

// regionCenters approximates each continental landmass by a single point
// for travel-time estimates.
var regionCenters = map[string][2]float64{
	"North America": {40, -100},
	"Europe":        {50, 10},
	"Asia":          {35, 100},
	"South America": {-20, -60},
	"Africa":        {0, 20},
	"Australia":     {-25, 135},
}

// AssessTsunamiRisk evaluates tsunami risk for an impact at (lat, lon)
// with the given energy. Impacts on land or below one petajoule carry no
// risk. The wave height is bounded at 100 m; inundation assumes a 1%
// coastal slope.
func AssessTsunamiRisk(lat, lon, energyJ, oceanDepthM float64, oceanImpact bool) TsunamiRisk {
	risk := TsunamiRisk{
		AffectedCoastlines: []string{},
		TravelTimeHours:    map[string]float64{},
	}
	if !oceanImpact || energyJ <= 1e15 {
		return risk
	}
	if oceanDepthM <= 0 {
		oceanDepthM = 4000
	}

	risk.HighRisk = true
	megatons := JoulesToMegatons(energyJ)
	height := math.Max(1, 10*math.Pow(megatons, 0.3)*math.Pow(oceanDepthM, -0.2))
	risk.WaveHeightM = math.Min(height, 100)

	switch {
	case risk.WaveHeightM > 10:
		risk.AffectedCoastlines = []string{"Global"}
	case risk.WaveHeightM > 5:
		if lat > 0 {
			risk.AffectedCoastlines = []string{"North America", "Europe", "Asia"}
		} else {
			risk.AffectedCoastlines = []string{"South America", "Africa", "Australia"}
		}
	case risk.WaveHeightM > 1:
		risk.AffectedCoastlines = []string{"Local region"}
	}

	const tsunamiSpeedMS = 200.0 // deep ocean
	for region, center := range regionCenters {
		distKm := Haversine(lat, lon, center[0], center[1])
		risk.TravelTimeHours[region] = distKm * 1000 / (tsunamiSpeedMS * 3600)
	}

	const coastalSlope = 0.01
	risk.InundationKm = risk.WaveHeightM / coastalSlope / 1000
	return risk
}

// AtmosphericEffects describes global consequences of the dust and vapor
// lofted by an impact.
type AtmosphericEffects struct {
	DustEjectedTons float64 `json:"dust_ejected"`
	CoolingC        float64 `json:"cooling_effect"`
	OzoneDepletion  bool    `json:"ozone_depletion"`
	AcidRain        bool    `json:"acid_rain"`
	ImpactWinter    bool    `json:"impact_winter"`
}

// AtmosphericFromYield estimates atmospheric effects for a yield in
// megatons. Impacts below one megaton have no modeled global effect.
func AtmosphericFromYield(megatons float64, oceanImpact bool) AtmosphericEffects {
	var fx AtmosphericEffects
	if megatons <= 1 {
		return fx
	}
	fx.DustEjectedTons = megatons * 1000
	fx.CoolingC = math.Min(10, megatons/100)
	fx.OzoneDepletion = megatons > 10
	fx.AcidRain = oceanImpact && megatons > 5
	fx.ImpactWinter = megatons > 1000
	return fx
}

// City is an entry in the fixed population-center table.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

var majorCities = []City{
	{"New York", 40.7128, -74.0060},
	{"London", 51.5074, -0.1278},
	{"Tokyo", 35.6762, 139.6503},
	{"Beijing", 39.9042, 116.4074},
	{"Moscow", 55.7558, 37.6176},
	{"São Paulo", -23.5505, -46.6333},
	{"Mumbai", 19.0760, 72.8777},
	{"Cairo", 30.0444, 31.2357},
	{"Sydney", -33.8688, 151.2093},
	{"Los Angeles", 34.0522, -118.2437},
}

// CityImpact pairs a population center with its distance from the
// impact point and the blast damage expected there.
type CityImpact struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
	Damage     string  `json:"damage"`
}

// CityImpacts returns blast exposure for every major city within
// radiusKm of the impact point.
func CityImpacts(lat, lon, energyJ, radiusKm float64) []CityImpact {
	var out []CityImpact
	for _, c := range majorCities {
		d := Haversine(lat, lon, c.Lat, c.Lon)
		if d > radiusKm {
			continue
		}
		fx := BlastAtDistance(energyJ, d)
		out = append(out, CityImpact{Name: c.Name, DistanceKm: d, Damage: fx.DamageLevel})
	}
	return out
}

// AffectedCities returns the major population centers inside radiusKm of
// the impact point.
func AffectedCities(lat, lon, radiusKm float64) []string {
	var affected []string
	for _, c := range majorCities {
		if Haversine(lat, lon, c.Lat, c.Lon) <= radiusKm {
			affected = append(affected, c.Name)
		}
	}
	return affected
}
