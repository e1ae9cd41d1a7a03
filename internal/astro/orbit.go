package astro

import "math"

// Vec3 is a position in heliocentric cartesian coordinates, km.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// OrbitalElements are classical Keplerian elements. Angles are degrees,
// the semi-major axis is in AU.
type OrbitalElements struct {
	SemiMajorAxisAU float64 `json:"semi_major_axis"`
	Eccentricity    float64 `json:"eccentricity"`
	InclinationDeg  float64 `json:"inclination"`
	ArgPerihelion   float64 `json:"argument_of_perihelion"`
	LongAscNode     float64 `json:"longitude_of_ascending_node"`
	MeanAnomalyDeg  float64 `json:"mean_anomaly"`
	PeriodDays      float64 `json:"period"`
}

// SolveKepler finds the eccentric anomaly E for mean anomaly M (radians)
// and eccentricity e via Newton-Raphson. Converges in a handful of
// iterations for any bound orbit.
func SolveKepler(M, e float64) float64 {
	E := M
	for i := 0; i < 100; i++ {
		f := E - e*math.Sin(E) - M
		if math.Abs(f) < 1e-6 {
			break
		}
		E -= f / (1 - e*math.Cos(E))
	}
	return E
}

// PositionAt returns the heliocentric position in km at t days after
// epoch, propagating the mean anomaly with two-body mean motion.
func PositionAt(el OrbitalElements, days float64) Vec3 {
	a := el.SemiMajorAxisAU
	if a <= 0 {
		a = 1.0
	}
	e := Clamp(el.Eccentricity, 0, 0.99)
	aKm := a * AuKm
	aM := a * AuM

	// Mean motion about the Sun, rad/s.
	n := math.Sqrt(GravitationalConstant * SunMassKg / (aM * aM * aM))
	M := el.MeanAnomalyDeg*math.Pi/180 + n*days*SecondsPerDay
	E := SolveKepler(M, e)

	nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
	r := aKm * (1 - e*math.Cos(E))
	xOrb := r * math.Cos(nu)
	yOrb := r * math.Sin(nu)

	return orbitalToCartesian(xOrb, yOrb,
		el.InclinationDeg*math.Pi/180,
		el.ArgPerihelion*math.Pi/180,
		el.LongAscNode*math.Pi/180)
}

// orbitalToCartesian rotates an in-plane position through the argument of
// perihelion, inclination and ascending node.
func orbitalToCartesian(xOrb, yOrb, inc, argPeri, node float64) Vec3 {
	cosI, sinI := math.Cos(inc), math.Sin(inc)
	cosW, sinW := math.Cos(argPeri), math.Sin(argPeri)
	cosO, sinO := math.Cos(node), math.Sin(node)

	return Vec3{
		X: (cosO*cosW-sinO*sinW*cosI)*xOrb + (-cosO*sinW-sinO*cosW*cosI)*yOrb,
		Y: (sinO*cosW+cosO*sinW*cosI)*xOrb + (-sinO*sinW+cosO*cosW*cosI)*yOrb,
		Z: sinW*sinI*xOrb + cosW*sinI*yOrb,
	}
}

// Trajectory samples the orbit at steps evenly spaced points across
// durationDays, starting at the epoch.
func Trajectory(el OrbitalElements, steps int, durationDays float64) []Vec3 {
	if steps < 2 {
		steps = 2
	}
	path := make([]Vec3, steps)
	for i := 0; i < steps; i++ {
		t := durationDays * float64(i) / float64(steps-1)
		path[i] = PositionAt(el, t)
	}
	return path
}

// Intersection describes where a trajectory first pierces Earth's sphere.
type Intersection struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Position  Vec3    `json:"cartesian_position"`
	TimeIndex int     `json:"time_index"`
}

// EarthIntersection walks the trajectory segments and returns the first
// intersection with a sphere of earthRadiusKm centred at the origin, or
// nil when the path misses.
func EarthIntersection(trajectory []Vec3, earthRadiusKm float64) *Intersection {
	if earthRadiusKm <= 0 {
		earthRadiusKm = EarthRadiusKm
	}
	for i := 0; i+1 < len(trajectory); i++ {
		if p, ok := segmentSphereHit(trajectory[i], trajectory[i+1], earthRadiusKm); ok {
			lat, lon := CartesianToLatLon(p)
			return &Intersection{Lat: lat, Lon: lon, Position: p, TimeIndex: i}
		}
	}
	return nil
}

func segmentSphereHit(p1, p2 Vec3, radius float64) (Vec3, bool) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dz := p2.Z - p1.Z

	a := dx*dx + dy*dy + dz*dz
	if a == 0 {
		return Vec3{}, false
	}
	b := 2 * (p1.X*dx + p1.Y*dy + p1.Z*dz)
	c := p1.X*p1.X + p1.Y*p1.Y + p1.Z*p1.Z - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 || t > 1 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > 1 {
		return Vec3{}, false
	}
	return Vec3{X: p1.X + t*dx, Y: p1.Y + t*dy, Z: p1.Z + t*dz}, true
}

// CartesianToLatLon projects a cartesian point onto latitude/longitude
// degrees.
func CartesianToLatLon(p Vec3) (lat, lon float64) {
	r := p.Len()
	if r == 0 {
		return 0, 0
	}
	lat = math.Asin(p.Z/r) * 180 / math.Pi
	lon = math.Atan2(p.Y, p.X) * 180 / math.Pi
	return lat, lon
}

// MinDistanceToEarthKm returns the closest approach of the trajectory to
// Earth's surface, zero when the path dips inside the planet.
func MinDistanceToEarthKm(trajectory []Vec3) float64 {
	min := math.Inf(1)
	for _, p := range trajectory {
		if d := p.Len(); d < min {
			min = d
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return math.Max(0, min-EarthRadiusKm)
}

// OrbitalPeriodDays applies Kepler's third law about the Sun.
func OrbitalPeriodDays(semiMajorAxisAU float64) float64 {
	if semiMajorAxisAU <= 0 {
		return 0
	}
	aM := semiMajorAxisAU * AuM
	periodSq := 4 * math.Pi * math.Pi * aM * aM * aM / (GravitationalConstant * SunMassKg)
	return math.Sqrt(periodSq) / SecondsPerDay
}

// OrbitalVelocityKmS evaluates the vis-viva speed at perihelion for the
// given semi-major axis and eccentricity.
func OrbitalVelocityKmS(semiMajorAxisAU, eccentricity float64) float64 {
	if semiMajorAxisAU <= 0 {
		return EarthOrbitalVelKmS
	}
	e := Clamp(eccentricity, 0, 0.99)
	aKm := semiMajorAxisAU * AuKm
	v := math.Sqrt(GravitationalConstant * SunMassKg * (1 + e) / (aKm * 1000 * (1 - e)))
	return v / 1000
}

// ApplyDeltaV nudges the orbital elements for a velocity change of
// dvKmS km/s applied to a body moving at velocityKmS. Only the
// semi-major axis responds, via the specific-energy change; a refined
// propagation is out of scope here.
func ApplyDeltaV(el OrbitalElements, velocityKmS, dvKmS float64) OrbitalElements {
	out := el
	if velocityKmS <= 0 {
		return out
	}
	newVel := velocityKmS + dvKmS
	ratio := (newVel * newVel) / (velocityKmS * velocityKmS)
	out.SemiMajorAxisAU *= 1 + (ratio-1)*0.5
	return out
}
