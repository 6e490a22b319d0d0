package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm    string
	Duration     time.Duration
	Episodes     int // MCTS simulations run
	FullPlayouts int // Rollouts that reached a finished game
	TreeSize     int
	Nodes        int // Minimax nodes visited
	Leaves       int
	Cutoffs      int
}

type MoveMetric struct {
	Turn   int
	Player int // Player ID
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID         string
	Agent1     string
	Agent2     string
	Winner     string // "Player1", "Player2" or "Draw"
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTurns int
}

// Collector gathers observational counters during one search. Counters never feed back into
// move selection.
type Collector interface {
	Start(algorithm string)
	AddEpisode()
	AddFullPlayout()
	AddNode()
	AddLeaf()
	AddCutoff()
	SetTreeSize(size int)
	Complete() SearchMetric
}

type collector struct {
	algorithm    string
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	nodes        atomic.Int64
	leaves       atomic.Int64
	cutoffs      atomic.Int64
	treeSize     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int64(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:    m.algorithm,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeSize:     int(m.treeSize.Load()),
		Nodes:        int(m.nodes.Load()),
		Leaves:       int(m.leaves.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string) {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) SetTreeSize(size int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
