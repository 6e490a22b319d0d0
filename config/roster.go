package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type AgentKind string

const (
	KindMinimax         AgentKind = "minimax"
	KindAdvancedMinimax AgentKind = "advanced-minimax"
	KindMCTS            AgentKind = "mcts"
	KindGreedy          AgentKind = "greedy"
	KindRandom          AgentKind = "random"
)

var ErrUnknownAgentKind = errors.New("unknown agent kind")

// Weights overrides the combined territory weights of an advanced minimax agent.
type Weights struct {
	Area    float64 `yaml:"area"`
	Split   float64 `yaml:"split"`
	Voronoi float64 `yaml:"voronoi"`
}

// AgentSpec describes one tournament entrant. Zero values fall back to the searcher defaults.
type AgentSpec struct {
	Name         string    `yaml:"name"`
	Kind         AgentKind `yaml:"kind"`
	Depth        int       `yaml:"depth,omitempty"`
	Simulations  int       `yaml:"simulations,omitempty"`
	RolloutDepth int       `yaml:"rollout_depth,omitempty"`
	Workers      int       `yaml:"workers,omitempty"`
	Seed         uint64    `yaml:"seed,omitempty"`
	Weights      *Weights  `yaml:"weights,omitempty"`
}

type roster struct {
	Agents []AgentSpec `yaml:"agents"`
}

// DefaultRoster is the classic lineup of search depths and budgets plus the baselines.
func DefaultRoster() []AgentSpec {
	return []AgentSpec{
		{Name: "Minimax-5", Kind: KindMinimax, Depth: 5},
		{Name: "Minimax-7", Kind: KindMinimax, Depth: 7},
		{Name: "MCTS-500", Kind: KindMCTS, Simulations: 500},
		{Name: "MCTS-200", Kind: KindMCTS, Simulations: 200},
		{Name: "AdvMinimax-5", Kind: KindAdvancedMinimax, Depth: 5},
		{Name: "AdvMinimax-7", Kind: KindAdvancedMinimax, Depth: 7},
		{Name: "Greedy", Kind: KindGreedy},
		{Name: "Random", Kind: KindRandom},
	}
}

func LoadRoster(path string) ([]AgentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) ([]AgentSpec, error) {
	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: failed to parse roster: %w", ErrInvalidConfig, err)
	}
	if err := ValidateRoster(r.Agents); err != nil {
		return nil, err
	}
	return r.Agents, nil
}

func ValidateRoster(agents []AgentSpec) error {
	seen := make(map[string]bool, len(agents))
	for _, a := range agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agent without a name", ErrInvalidConfig)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate agent %q", ErrInvalidConfig, a.Name)
		}
		seen[a.Name] = true

		switch a.Kind {
		case KindMinimax, KindAdvancedMinimax, KindMCTS, KindGreedy, KindRandom:
		default:
			return fmt.Errorf("%w: %q for agent %q", ErrUnknownAgentKind, a.Kind, a.Name)
		}
		if a.Depth < 0 || a.Simulations < 0 || a.RolloutDepth < 0 || a.Workers < 0 {
			return fmt.Errorf("%w: negative search limits for agent %q", ErrInvalidConfig, a.Name)
		}
	}
	return nil
}

// Find returns the roster entry with the given name.
func Find(agents []AgentSpec, name string) (AgentSpec, bool) {
	for _, a := range agents {
		if a.Name == name {
			return a, true
		}
	}
	return AgentSpec{}, false
}
