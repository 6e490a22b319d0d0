package agent

import (
	"fmt"
	"tron/config"
	"tron/experiments/metrics"
	"tron/game"
	"tron/minimax"
	"tron/searcher"
)

type Agent interface {
	// Decide returns the move for player, or NoMove when player is stuck. It never mutates state.
	Decide(state *game.GameState, player game.Player) game.Move
}

// Instrumented agents report the metrics of their latest decision.
type Instrumented interface {
	LastSearch() metrics.SearchMetric
}

// FromSpec builds the agent a roster entry describes. seed is used for randomized agents
// without a seed of their own.
func FromSpec(spec config.AgentSpec, seed uint64) (Agent, error) {
	if spec.Seed != 0 {
		seed = spec.Seed
	}

	switch spec.Kind {
	case config.KindMinimax, config.KindAdvancedMinimax:
		options := []minimax.Option{minimax.WithMetrics()}
		if spec.Depth > 0 {
			options = append(options, minimax.WithDepth(spec.Depth))
		}
		if spec.Workers > 0 {
			options = append(options, minimax.WithWorkers(spec.Workers))
		}
		if spec.Kind == config.KindMinimax {
			return minimax.NewMinimax(options...), nil
		}
		if w := spec.Weights; w != nil {
			weights := game.Weights{Area: w.Area, Split: w.Split, Voronoi: w.Voronoi}
			options = append(options, minimax.WithEvaluationFn(weights.Evaluate()))
		}
		return minimax.NewAdvanced(options...), nil

	case config.KindMCTS:
		options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
		if spec.Simulations > 0 {
			options = append(options, searcher.WithSimulations(spec.Simulations))
		}
		if spec.RolloutDepth > 0 {
			options = append(options, searcher.WithCutoff(spec.RolloutDepth))
		}
		return searcher.NewMCTS(options...), nil

	case config.KindGreedy:
		return NewGreedyAgent(), nil

	case config.KindRandom:
		return NewRandomAgent(seed), nil

	default:
		return nil, fmt.Errorf("%w: %q for agent %q", config.ErrUnknownAgentKind, spec.Kind, spec.Name)
	}
}
