package neo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

// Client talks to the NASA NEO REST service. It is thin glue: one
// request per call, a timeout, no retries and no caching.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the given API key. An empty key uses
// NASA's DEMO_KEY rate-limited tier; an empty baseURL uses the public
// endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// browsePage mirrors the shape of /neo/browse responses.
type browsePage struct {
	NearEarthObjects []neoPayload `json:"near_earth_objects"`
}

// feedPage mirrors /feed, which groups objects by date.
type feedPage struct {
	NearEarthObjects map[string][]neoPayload `json:"near_earth_objects"`
}

type neoPayload struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	AbsoluteMagnitude float64 `json:"absolute_magnitude_h"`
	Hazardous         bool    `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter struct {
		Kilometers struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
	CloseApproachData []struct {
		Date             string `json:"close_approach_date"`
		RelativeVelocity struct {
			KmPerSec string `json:"kilometers_per_second"`
		} `json:"relative_velocity"`
		MissDistance struct {
			Kilometers string `json:"kilometers"`
		} `json:"miss_distance"`
	} `json:"close_approach_data"`
	OrbitalData struct {
		SemiMajorAxis string `json:"semi_major_axis"`
		Eccentricity  string `json:"eccentricity"`
		Inclination   string `json:"inclination"`
		PerihelionArg string `json:"perihelion_argument"`
		AscendingNode string `json:"ascending_node_longitude"`
		MeanAnomaly   string `json:"mean_anomaly"`
		OrbitalPeriod string `json:"orbital_period"`
	} `json:"orbital_data"`
}

// Browse fetches up to limit objects from the NEO browse endpoint.
func (c *Client) Browse(ctx context.Context, limit int) ([]Asteroid, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{"size": {strconv.Itoa(limit)}}
	var page browsePage
	if err := c.get(ctx, "/neo/browse", q, &page); err != nil {
		return nil, err
	}
	out := make([]Asteroid, 0, len(page.NearEarthObjects))
	for _, p := range page.NearEarthObjects {
		out = append(out, p.asteroid())
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Feed fetches objects approaching Earth between the two dates
// (YYYY-MM-DD, at most seven days apart per the NASA API contract).
func (c *Client) Feed(ctx context.Context, startDate, endDate string) ([]Asteroid, error) {
	q := url.Values{"start_date": {startDate}, "end_date": {endDate}}
	var page feedPage
	if err := c.get(ctx, "/feed", q, &page); err != nil {
		return nil, err
	}
	var out []Asteroid
	for _, objs := range page.NearEarthObjects {
		for _, p := range objs {
			out = append(out, p.asteroid())
		}
	}
	return out, nil
}

// Lookup fetches a single object by its NEO reference id.
func (c *Client) Lookup(ctx context.Context, id string) (Asteroid, error) {
	var p neoPayload
	if err := c.get(ctx, "/neo/"+url.PathEscape(id), nil, &p); err != nil {
		return Asteroid{}, err
	}
	return p.asteroid(), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("neo: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("neo: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("neo: %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("neo: decode %s: %w", path, err)
	}
	return nil
}

// asteroid converts the wire payload into the domain type, taking the
// relative velocity of the closest recorded approach when available.
func (p neoPayload) asteroid() Asteroid {
	a := Asteroid{
		ID:                p.ID,
		Name:              p.Name,
		AbsoluteMagnitude: p.AbsoluteMagnitude,
		Hazardous:         p.Hazardous,
	}
	a.DiameterKm = (p.EstimatedDiameter.Kilometers.Min + p.EstimatedDiameter.Kilometers.Max) / 2

	a.Orbit.SemiMajorAxisAU = parseFloat(p.OrbitalData.SemiMajorAxis)
	a.Orbit.Eccentricity = parseFloat(p.OrbitalData.Eccentricity)
	a.Orbit.InclinationDeg = parseFloat(p.OrbitalData.Inclination)
	a.Orbit.ArgPerihelion = parseFloat(p.OrbitalData.PerihelionArg)
	a.Orbit.LongAscNode = parseFloat(p.OrbitalData.AscendingNode)
	a.Orbit.MeanAnomalyDeg = parseFloat(p.OrbitalData.MeanAnomaly)
	a.Orbit.PeriodDays = parseFloat(p.OrbitalData.OrbitalPeriod)

	closestKm := 0.0
	for _, ca := range p.CloseApproachData {
		missKm := parseFloat(ca.MissDistance.Kilometers)
		approach := CloseApproach{
			Date:           ca.Date,
			VelocityKmS:    parseFloat(ca.RelativeVelocity.KmPerSec),
			MissDistanceKm: missKm,
		}
		a.CloseApproaches = append(a.CloseApproaches, approach)
		if closestKm == 0 || (missKm > 0 && missKm < closestKm) {
			closestKm = missKm
			a.VelocityKmS = approach.VelocityKmS
		}
	}

	a.Normalize()
	return a
}

// parseFloat tolerates the NASA API's habit of quoting numbers.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
