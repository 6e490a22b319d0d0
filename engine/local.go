package engine

import (
	"fmt"
	"time"
	"tron/experiments/metrics"
	"tron/game"
	"tron/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const MaxTurns = 100

type Option func(e *Engine)

// Engine owns the authoritative game state and drives two agents through it.
type Engine struct {
	ID       string
	State    *game.GameState
	Agents   [2]agent.Agent
	Names    [2]string
	maxTurns int
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithNames(player1, player2 string) Option {
	return func(e *Engine) {
		e.Names = [2]string{player1, player2}
	}
}

// WithState starts the match from an existing position instead of a fresh board.
func WithState(state *game.GameState) Option {
	return func(e *Engine) {
		if state != nil {
			e.State = state
		}
	}
}

func LocalEngine(agents [2]agent.Agent, width, height int, options ...Option) (*Engine, error) {
	if agents[0] == nil || agents[1] == nil {
		return nil, fmt.Errorf("engine needs two agents")
	}

	e := &Engine{
		ID:       uuid.NewString(),
		Agents:   agents,
		Names:    [2]string{game.Player1.String(), game.Player2.String()},
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	if e.State == nil {
		state, err := game.NewGame(width, height)
		if err != nil {
			return nil, fmt.Errorf("failed to start game: %w", err)
		}
		e.State = state
	}
	return e, nil
}

// Run executes the game loop until the game ends or the turn cap is hit, which is a draw.
func (e *Engine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:        e.ID,
		Agent1:    e.Names[0],
		Agent2:    e.Names[1],
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("game", e.ID).Msgf("%s vs %s starting", e.Names[0], e.Names[1])

	turn := 1
	for !e.State.Terminal() && turn <= e.maxTurns {
		var moves [2]game.Move
		for i, player := range []game.Player{game.Player1, game.Player2} {
			move, metric := e.decide(i, player)
			moves[i] = move
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Turn:         turn,
				Player:       int(player),
				Move:         move.String(),
				SearchMetric: metric,
			})
		}

		outcome := e.State.Apply(moves[0], moves[1])
		log.Debug().Str("game", e.ID).Msgf("turn %d: %s %s -> %s", turn, moves[0], moves[1], outcome)
		turn++
	}

	outcome := e.State.Outcome()
	if !outcome.Terminal() {
		outcome = game.Draw
		log.Debug().Str("game", e.ID).Msgf("stopped after %d turns without a winner", e.maxTurns)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalTurns = turn - 1
	gameMetric.Winner = outcome.String()
	return outcome, gameMetric, moveMetrics
}

func (e *Engine) decide(i int, player game.Player) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	move := e.Agents[i].Decide(e.State, player)
	metric := metrics.SearchMetric{Algorithm: e.Names[i]}
	if instrumented, ok := e.Agents[i].(agent.Instrumented); ok {
		metric = instrumented.LastSearch()
	}
	metric.Duration = time.Since(start)
	return move, metric
}
