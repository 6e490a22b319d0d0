package agent

import (
	"tron/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Decide(state *game.GameState, player game.Player) game.Move {
	moves := state.LegalMoves(player)
	if moves.Empty() {
		return game.NoMove
	}
	return moves.At(a.rng.Intn(moves.Len()))
}

type greedyAgent struct{}

// NewGreedyAgent returns an agent that takes the step opening onto the most Empty cells.
func NewGreedyAgent() Agent {
	return greedyAgent{}
}

func (greedyAgent) Decide(state *game.GameState, player game.Player) game.Move {
	sim := state.Copy()
	best, bestArea := game.NoMove, -1
	for _, move := range state.LegalMoves(player).Moves() {
		undo := sim.Step(player, move)
		if area := game.ReachableArea(sim.Board, sim.Head(player), game.NoPlayer); area > bestArea {
			best, bestArea = move, area
		}
		sim.Undo(undo)
	}
	return best
}
