package searcher

import (
	"time"
	"tron/experiments/metrics"
	"tron/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS searches a fresh tree per decision with uniformly random rollouts. An MCTS owns its
// random source and tree, so it must not be shared between goroutines.
type MCTS struct {
	simulations int
	cutoff      int
	cSquared    float64
	rng         *rand.Rand
	tree        tree
	metrics     metrics.Collector
	last        metrics.SearchMetric
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

// WithCutoff bounds the number of plies in a rollout. Rollouts cut off score as a draw.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared >= 0 {
			m.cSquared = cSquared
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations: DefaultSimulations,
		cutoff:      MaxRolloutDepth,
		cSquared:    CSquared,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Decide returns the most visited root move after the simulation budget is spent. With no
// root children it falls back to a random legal move, and to NoMove when there is none.
func (m *MCTS) Decide(state *game.GameState, player game.Player) game.Move {
	moves := state.LegalMoves(player)
	if moves.Empty() {
		return game.NoMove
	}

	policy, metric := m.Simulate(state, player)
	m.last = metric
	if move, ok := findBestMove(policy); ok {
		return move
	}

	log.Warn().Msgf("%s has no searched moves in a finished game, picking at random", player)
	return moves.At(m.rng.Intn(moves.Len()))
}

// LastSearch returns the metrics of the latest Decide call.
func (m *MCTS) LastSearch() metrics.SearchMetric {
	return m.last
}

// Simulate runs the simulation budget from state with player to move and returns the root
// move statistics in expansion order.
func (m *MCTS) Simulate(state *game.GameState, player game.Player) ([]Edge, metrics.SearchMetric) {
	m.metrics.Start("mcts")
	m.tree.reset(state.Copy(), player)

	if !state.Terminal() {
		for i := 0; i < m.simulations; i++ {
			m.simulate(player)
			m.metrics.AddEpisode()
		}
	}

	m.metrics.SetTreeSize(m.tree.size())
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	policy := m.tree.policy()
	m.tree.release()
	return policy, metric
}

func (m *MCTS) simulate(root game.Player) {
	leaf := m.tree.selectThenExpand(m.cSquared)
	n := &m.tree.nodes[leaf]
	reward := m.rollout(n.state, n.player, root)
	m.tree.backup(leaf, reward)
}

func (m *MCTS) rollout(state *game.GameState, player, root game.Player) float64 {
	if !state.Terminal() {
		state = state.Copy()
	}

	// Rollout till game over or for cutoff number of plies
	for depth := 0; depth < m.cutoff && !state.Terminal(); depth++ {
		moves := state.LegalMoves(player)
		state.Step(player, moves.At(m.rng.Intn(moves.Len()))) // Random rollout policy
		player = player.Opponent()
	}

	if !state.Terminal() {
		return Draw
	}
	m.metrics.AddFullPlayout()
	return reward(state.Outcome(), root)
}

func reward(outcome game.Outcome, root game.Player) float64 {
	switch {
	case outcome.Winner() == root:
		return Win
	case outcome == game.Draw:
		return Draw
	default:
		return Loss
	}
}
