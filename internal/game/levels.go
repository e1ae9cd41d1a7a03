package game

import "fmt"

// Level defines one defense scenario: the incoming body and how much
// time the player gets to deal with it.
type Level struct {
	Number      int
	Name        string
	DiameterM   float64
	VelocityKmS float64
	TimeLimitS  float64
	StartDistKm float64
	LeadYears   float64
}

var levels = []Level{
	{Number: 1, Name: "Easy", DiameterM: 10, VelocityKmS: 15, TimeLimitS: 300, StartDistKm: 4.5e6, LeadYears: 10},
	{Number: 2, Name: "Normal", DiameterM: 50, VelocityKmS: 18, TimeLimitS: 240, StartDistKm: 4.0e6, LeadYears: 8},
	{Number: 3, Name: "Hard", DiameterM: 100, VelocityKmS: 20, TimeLimitS: 180, StartDistKm: 3.5e6, LeadYears: 5},
	{Number: 4, Name: "Expert", DiameterM: 500, VelocityKmS: 25, TimeLimitS: 120, StartDistKm: 3.0e6, LeadYears: 3},
	{Number: 5, Name: "Nightmare", DiameterM: 1000, VelocityKmS: 30, TimeLimitS: 60, StartDistKm: 2.5e6, LeadYears: 1},
}

// LevelByNumber returns the definition for levels 1 through 5.
func LevelByNumber(n int) (Level, error) {
	for _, lv := range levels {
		if lv.Number == n {
			return lv, nil
		}
	}
	return Level{}, fmt.Errorf("no level %d", n)
}

// Levels returns the full level table in order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
