package experiments

import (
	"fmt"
	"sort"
	"time"
	"tron/config"
	"tron/engine"
	"tron/experiments/metrics"
	"tron/game"
	"tron/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBudgets are the MCTS simulation budgets compared against the random agent.
var DefaultBudgets = []int{50, 200, 500, 2000}

// BudgetResult is the record of an MCTS agent with a given budget against the random agent.
type BudgetResult struct {
	Simulations int
	metrics.Standing
}

// RunRoundRobin plays every pair of roster agents against each other, alternating who moves as
// player 1, and returns the standings sorted by wins. When outDir is not empty the standings are
// also written there.
func RunRoundRobin(cfg config.Config, outDir string) ([]metrics.Standing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Agents) < 2 {
		return nil, fmt.Errorf("%w: a tournament needs at least two agents", config.ErrInvalidConfig)
	}

	runID := uuid.NewString()
	seed := baseSeed(cfg)
	results := make(map[string]*metrics.Standing, len(cfg.Agents))
	for _, spec := range cfg.Agents {
		results[spec.Name] = &metrics.Standing{Agent: spec.Name}
	}

	// Each matchup pairs two distinct agents once
	matchUps := [][2]config.AgentSpec{}
	for i, spec1 := range cfg.Agents {
		for _, spec2 := range cfg.Agents[i+1:] {
			matchUps = append(matchUps, [2]config.AgentSpec{spec1, spec2})
		}
	}

	log.Info().Str("run", runID).Msgf("starting round-robin tournament with %d agents, %d games per matchup on a %dx%d board...",
		len(cfg.Agents), cfg.GamesPerMatchup, cfg.Width, cfg.Height)

	count := 0
	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(matchUps), matchUp[0].Name, matchUp[1].Name)

		for i := 0; i < cfg.GamesPerMatchup; i++ {
			specs := matchUp
			if i%2 == 1 {
				specs[0], specs[1] = specs[1], specs[0]
			}

			outcome, gameMetric, thinkTime, err := runGame(cfg, specs, seed+uint64(2*count))
			if err != nil {
				return nil, err
			}
			count++
			tally(results[specs[0].Name], results[specs[1].Name], outcome, thinkTime)

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%d turns, %s)",
				mi+1, len(matchUps), i+1, winnerName(outcome, specs), gameMetric.TotalTurns, gameMetric.Duration)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	standings := make([]metrics.Standing, 0, len(results))
	for _, spec := range cfg.Agents {
		standings = append(standings, *results[spec.Name])
	}
	sortStandings(standings)

	for _, s := range standings {
		log.Info().Msgf("%-15s wins=%d losses=%d draws=%d win%%=%.1f think=%s",
			s.Agent, s.Wins, s.Losses, s.Draws, 100*s.WinRate(), s.ThinkTime)
	}
	log.Info().Str("run", runID).Msg("completed round-robin tournament")

	if outDir != "" {
		if err := writeStandings(outDir, "round_robin", runID, standings); err != nil {
			return nil, err
		}
	}
	return standings, nil
}

// RunBudgetExperiment plays MCTS at each simulation budget against the random agent.
func RunBudgetExperiment(cfg config.Config, budgets []int, games int) ([]BudgetResult, error) {
	if games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", config.ErrInvalidConfig, games)
	}

	seed := baseSeed(cfg)
	opponent := config.AgentSpec{Name: "Random", Kind: config.KindRandom}
	results := make([]BudgetResult, 0, len(budgets))

	log.Info().Msgf("starting budget experiment with budgets %v, %d games each...", budgets, games)

	count := 0
	for _, budget := range budgets {
		if budget <= 0 {
			return nil, fmt.Errorf("%w: budget must be positive, got %d", config.ErrInvalidConfig, budget)
		}
		mcts := config.AgentSpec{Name: fmt.Sprintf("MCTS-%d", budget), Kind: config.KindMCTS, Simulations: budget}
		standing, other := metrics.Standing{Agent: mcts.Name}, metrics.Standing{Agent: opponent.Name}

		for i := 0; i < games; i++ {
			specs := [2]config.AgentSpec{mcts, opponent}
			first, second := &standing, &other
			if i%2 == 1 {
				specs[0], specs[1] = specs[1], specs[0]
				first, second = second, first
			}

			outcome, _, thinkTime, err := runGame(cfg, specs, seed+uint64(2*count))
			if err != nil {
				return nil, err
			}
			count++
			tally(first, second, outcome, thinkTime)
		}

		log.Info().Msgf("%s against random: wins=%d losses=%d draws=%d win%%=%.1f",
			mcts.Name, standing.Wins, standing.Losses, standing.Draws, 100*standing.WinRate())
		results = append(results, BudgetResult{Simulations: budget, Standing: standing})
	}

	log.Info().Msg("completed budget experiment")
	return results, nil
}

// runGame executes a single game between two roster agents and returns its outcome together with
// each side's total decision time
func runGame(cfg config.Config, specs [2]config.AgentSpec, seed uint64) (game.Outcome, metrics.GameMetric, [2]time.Duration, error) {
	var agents [2]agent.Agent
	for i, spec := range specs {
		a, err := agent.FromSpec(spec, seed+uint64(i))
		if err != nil {
			return game.Ongoing, metrics.GameMetric{}, [2]time.Duration{}, err
		}
		agents[i] = a
	}

	e, err := engine.LocalEngine(agents, cfg.Width, cfg.Height,
		engine.WithMaxTurns(cfg.MaxTurns), engine.WithNames(specs[0].Name, specs[1].Name))
	if err != nil {
		return game.Ongoing, metrics.GameMetric{}, [2]time.Duration{}, err
	}

	outcome, gameMetric, moveMetrics := e.Run()

	var thinkTime [2]time.Duration
	for _, mm := range moveMetrics {
		thinkTime[mm.Player-1] += mm.Duration
	}
	return outcome, gameMetric, thinkTime, nil
}

func tally(first, second *metrics.Standing, outcome game.Outcome, thinkTime [2]time.Duration) {
	switch outcome {
	case game.Player1Wins:
		first.Wins++
		second.Losses++
	case game.Player2Wins:
		first.Losses++
		second.Wins++
	default:
		first.Draws++
		second.Draws++
	}
	first.ThinkTime += thinkTime[0]
	second.ThinkTime += thinkTime[1]
}

func sortStandings(standings []metrics.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Losses < standings[j].Losses
	})
}

func winnerName(outcome game.Outcome, specs [2]config.AgentSpec) string {
	switch outcome.Winner() {
	case game.Player1:
		return specs[0].Name
	case game.Player2:
		return specs[1].Name
	default:
		return "draw"
	}
}

func writeStandings(outDir, name, runID string, standings []metrics.Standing) error {
	writer, err := metrics.NewWriter(outDir, name, runID)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteStandings(standings); err != nil {
		return fmt.Errorf("failed to store standings: %w", err)
	}
	log.Info().Msgf("stored standings in %s", writer.Dir())
	return nil
}

func baseSeed(cfg config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}
