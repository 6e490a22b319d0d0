package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
	"tron/config"
	"tron/experiments/metrics"
	"tron/game"

	"github.com/stretchr/testify/require"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 7, 7
	cfg.MaxTurns = 60
	cfg.GamesPerMatchup = 2
	cfg.Seed = 17
	cfg.Agents = []config.AgentSpec{
		{Name: "Minimax-2", Kind: config.KindMinimax, Depth: 2},
		{Name: "AdvMinimax-2", Kind: config.KindAdvancedMinimax, Depth: 2},
		{Name: "MCTS-30", Kind: config.KindMCTS, Simulations: 30},
		{Name: "Greedy", Kind: config.KindGreedy},
		{Name: "Random", Kind: config.KindRandom},
	}
	return cfg
}

func TestRunRoundRobin(t *testing.T) {
	t.Run("every agent plays every other agent", func(t *testing.T) {
		cfg := smallConfig()

		standings, err := RunRoundRobin(cfg, "")
		require.NoError(t, err)

		require.Len(t, standings, len(cfg.Agents))
		wins, losses, draws := 0, 0, 0
		for _, s := range standings {
			require.Equal(t, (len(cfg.Agents)-1)*cfg.GamesPerMatchup, s.Games(), s.Agent)
			wins += s.Wins
			losses += s.Losses
			draws += s.Draws
		}
		require.Equal(t, wins, losses, "Every win is someone's loss")
		require.Zero(t, draws%2, "Draws are shared")
		for i := 1; i < len(standings); i++ {
			require.GreaterOrEqual(t, standings[i-1].Wins, standings[i].Wins, "Standings should be sorted by wins")
		}
	})

	t.Run("writes the standings file", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Agents = cfg.Agents[3:]
		dir := t.TempDir()

		_, err := RunRoundRobin(cfg, dir)
		require.NoError(t, err)

		files, err := filepath.Glob(filepath.Join(dir, "round_robin", "*", "standings.csv"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		f, err := os.Open(files[0])
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Equal(t, []string{"agent", "games", "wins", "losses", "draws", "win_rate", "think_time"}, rows[0])
		require.Len(t, rows, 3)
	})

	t.Run("needs two agents", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Agents = cfg.Agents[:1]

		_, err := RunRoundRobin(cfg, "")
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestTally(t *testing.T) {
	first, second := &metrics.Standing{Agent: "a"}, &metrics.Standing{Agent: "b"}

	tally(first, second, game.Player2Wins, [2]time.Duration{time.Second, 2 * time.Second})
	tally(first, second, game.Draw, [2]time.Duration{})

	require.Equal(t, metrics.Standing{Agent: "a", Losses: 1, Draws: 1, ThinkTime: time.Second}, *first)
	require.Equal(t, metrics.Standing{Agent: "b", Wins: 1, Draws: 1, ThinkTime: 2 * time.Second}, *second)
}

func TestRunBudgetExperiment(t *testing.T) {
	if testing.Short() {
		t.Skip("plays many full games")
	}

	t.Run("larger budgets do not play worse against random", func(t *testing.T) {
		cfg := smallConfig()
		const games = 20

		results, err := RunBudgetExperiment(cfg, []int{50, 1000}, games)
		require.NoError(t, err)

		require.Len(t, results, 2)
		require.Equal(t, games, results[0].Games())
		require.GreaterOrEqual(t, results[1].WinRate(), results[0].WinRate()-0.2,
			"Win rate should not drop beyond noise as the budget grows")
	})

	t.Run("rejects empty budgets", func(t *testing.T) {
		_, err := RunBudgetExperiment(smallConfig(), []int{0}, 2)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}
