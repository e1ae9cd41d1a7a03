package game

const (
	SimHz = 20.0 // server tick rate
	Dt    = 1.0 / SimHz

	UpdateRateHz = 10.0 // per-client WS state pushes

	BaseScore     = 1000
	TimeBonusRate = 10 // points per second left on the clock
	AttemptCost   = 50 // points lost per failed deflection attempt

	MaxLevel = 5
)
