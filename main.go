package main

import (
	"flag"
	"fmt"
	"os"
	"tron/config"
	"tron/engine"
	"tron/experiments"
	"tron/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "tournament", "What to run: match, tournament or budget")
	envFile := flag.String("env", ".env", "Optional env file with TRON_* settings")
	rosterFile := flag.String("roster", "", "YAML roster replacing the default agents")
	p1 := flag.String("p1", "AdvMinimax-5", "Roster agent playing as player 1 in match mode")
	p2 := flag.String("p2", "MCTS-500", "Roster agent playing as player 2 in match mode")
	games := flag.Int("games", 30, "Games per budget in budget mode")
	out := flag.String("out", "", "Directory for the tournament standings file")
	verbose := flag.Bool("v", false, "Log every turn")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *rosterFile != "" {
		cfg.Agents, err = config.LoadRoster(*rosterFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load roster")
		}
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *mode {
	case "match":
		err = runMatch(cfg, *p1, *p2)
	case "tournament":
		_, err = experiments.RunRoundRobin(cfg, *out)
	case "budget":
		_, err = experiments.RunBudgetExperiment(cfg, experiments.DefaultBudgets, *games)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func runMatch(cfg config.Config, name1, name2 string) error {
	var agents [2]agent.Agent
	for i, name := range []string{name1, name2} {
		spec, ok := config.Find(cfg.Agents, name)
		if !ok {
			return fmt.Errorf("agent %q is not in the roster", name)
		}
		a, err := agent.FromSpec(spec, cfg.Seed+uint64(i))
		if err != nil {
			return err
		}
		agents[i] = a
	}

	e, err := engine.LocalEngine(agents, cfg.Width, cfg.Height,
		engine.WithMaxTurns(cfg.MaxTurns), engine.WithNames(name1, name2))
	if err != nil {
		return err
	}

	outcome, gameMetric, _ := e.Run()
	fmt.Print(engine.Render(termenv.NewOutput(os.Stdout), e.State))
	log.Info().Msgf("%s vs %s: %s after %d turns (%s)", name1, name2, outcome, gameMetric.TotalTurns, gameMetric.Duration)
	return nil
}
