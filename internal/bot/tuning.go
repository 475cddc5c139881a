package bot

// Tuning holds the probability knobs a strategy rolls against. Strategies
// share the struct so levels differ only in numbers, not code paths.
type Tuning struct {
	// PlayFullGroupProbability is the chance of committing the whole rank
	// group instead of a single card from it.
	PlayFullGroupProbability float64
	// OpenDrawProbability is the chance of taking the face-up discard when
	// its rank matches something already held.
	OpenDrawProbability float64
	// DeclareCheckProbability is the chance per turn of even checking
	// whether a show is worth declaring.
	DeclareCheckProbability float64
}

// StandardTuning is the baseline opponent: half-and-half group commits,
// a strong pull toward matching open draws, and a rare show check so rounds
// do not end the moment a triple lands.
var StandardTuning = Tuning{
	PlayFullGroupProbability: 0.5,
	OpenDrawProbability:      0.85,
	DeclareCheckProbability:  0.12,
}

// DrifterTuning plays loose: singles only, coin-flip draws.
var DrifterTuning = Tuning{
	PlayFullGroupProbability: 0,
	OpenDrawProbability:      0.5,
	DeclareCheckProbability:  0.12,
}

// SharpTuning hoards groups and declares as soon as the gate opens.
var SharpTuning = Tuning{
	PlayFullGroupProbability: 0.75,
	OpenDrawProbability:      0.95,
	DeclareCheckProbability:  1.0,
}
