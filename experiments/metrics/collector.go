package metrics

import (
	"alinea/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int // Positions expanded by the search
	Leaves     int // Positions scored by the evaluation
	Score      int // Score of the chosen action
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer game.Player
	Winner         game.Player // Empty on a draw or when the turn limit is hit
	Drawn          bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// AgentConfig describes one side of a match-up.
type AgentConfig struct {
	ID         int
	Kind       string // "minimax" or "random"
	Rules      string
	Depth      int
	Goroutines int
	Seed       uint64
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	Complete(score int) SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Score:      score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) Complete(score int) SearchMetric {
	return SearchMetric{Score: score}
}
