package minimax

import (
	"math"
	"tron/experiments/metrics"
	"tron/game"

	"golang.org/x/sync/errgroup"
)

const DefaultDepth = 5

type Option func(m *Minimax)

// Minimax is a depth-bounded alpha-beta search over single-player plies: player 1 maximizes
// and player 2 minimizes the leaf evaluation.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	workers  int
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithWorkers searches root moves concurrently. Every root move gets its own full window, so
// the chosen move does not depend on the number of workers.
func WithWorkers(workers int) Option {
	return func(m *Minimax) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluateSpace,
		workers:  1,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewAdvanced returns a search scored by the combined territory evaluation.
func NewAdvanced(options ...Option) *Minimax {
	return NewMinimax(append([]Option{WithEvaluationFn(game.EvaluateTerritory)}, options...)...)
}

// Decide returns the best move for player, the first enumerated one on ties, or NoMove when
// player is stuck.
func (m *Minimax) Decide(state *game.GameState, player game.Player) game.Move {
	moves := state.LegalMoves(player).Moves()
	if len(moves) == 0 {
		return game.NoMove
	}

	m.metrics.Start("minimax")
	values := make([]float64, len(moves))
	if m.workers > 1 && len(moves) > 1 {
		var g errgroup.Group
		g.SetLimit(m.workers)
		for i, move := range moves {
			i, move := i, move
			g.Go(func() error {
				values[i] = m.searchRoot(state.Copy(), player, move)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		sim := state.Copy()
		for i, move := range moves {
			values[i] = m.searchRoot(sim, player, move)
		}
	}
	m.last = m.metrics.Complete()

	best := 0
	for i, v := range values[1:] {
		if player == game.Player1 && v > values[best] || player == game.Player2 && v < values[best] {
			best = i + 1
		}
	}
	return moves[best]
}

// LastSearch returns the metrics of the latest Decide call.
func (m *Minimax) LastSearch() metrics.SearchMetric {
	return m.last
}

func (m *Minimax) searchRoot(sim *game.GameState, player game.Player, move game.Move) float64 {
	undo := sim.Step(player, move)
	defer sim.Undo(undo)
	return m.Search(sim, m.depth-1, math.Inf(-1), math.Inf(1), player == game.Player2)
}

// Search returns the alpha-beta value of state. The state is stepped and restored in place, so
// callers must own it. The search stops at depth 0 or when either player is stuck.
func (m *Minimax) Search(state *game.GameState, depth int, alpha, beta float64, maximizing bool) float64 {
	m.metrics.AddNode()
	if depth <= 0 || state.LegalMoves(game.Player1).Empty() || state.LegalMoves(game.Player2).Empty() {
		m.metrics.AddLeaf()
		return m.evaluate(state)
	}

	player := game.Player2
	best := math.Inf(1)
	if maximizing {
		player = game.Player1
		best = math.Inf(-1)
	}

	for _, move := range state.LegalMoves(player).Moves() {
		undo := state.Step(player, move)
		value := m.Search(state, depth-1, alpha, beta, !maximizing)
		state.Undo(undo)

		if maximizing {
			best = math.Max(best, value)
			alpha = math.Max(alpha, value)
		} else {
			best = math.Min(best, value)
			beta = math.Min(beta, value)
		}
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	return best
}
