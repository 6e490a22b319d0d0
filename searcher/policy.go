package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant squared, i.e. c = sqrt(2)

const DefaultSimulations = 200
const MaxRolloutDepth = 200

// Rollout rewards from the root player's perspective
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
