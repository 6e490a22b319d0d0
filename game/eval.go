package game

// Weights scales the terms of the combined territory score.
type Weights struct {
	Area    float64 `yaml:"area"`
	Split   float64 `yaml:"split"`
	Voronoi float64 `yaml:"voronoi"`
}

func DefaultWeights() Weights {
	return Weights{Area: 1, Split: 10, Voronoi: 0.5}
}

// EvaluateSpace scores a state by the difference in reachable area between the players.
func EvaluateSpace(s *GameState) float64 {
	return float64(SpaceDifference(s.Board, s.Head(Player1), s.Head(Player2)))
}

// EvaluateTerritory scores a state by CombinedScore with the default weights.
func EvaluateTerritory(s *GameState) float64 {
	return CombinedScore(s.Board, s.Head(Player1), s.Head(Player2))
}

// Evaluate returns an evaluation function scoring states with these weights.
func (w Weights) Evaluate() Evaluate {
	return func(s *GameState) float64 {
		return w.Score(s.Board, s.Head(Player1), s.Head(Player2))
	}
}

// Score sums the area difference, the split count difference and the Voronoi balance, each
// scaled by its weight. Positive favors player 1.
func (w Weights) Score(b *Board, p1, p2 Position) float64 {
	space := SpaceDifference(b, p1, p2)
	p1Splits := OpponentSplitCount(b, p1, p2, Player2)
	p2Splits := OpponentSplitCount(b, p2, p1, Player1)
	voronoi := VoronoiBalance(b, p1, p2)

	return w.Area*float64(space) + w.Split*float64(p1Splits-p2Splits) + w.Voronoi*float64(voronoi)
}

func CombinedScore(b *Board, p1, p2 Position) float64 {
	return DefaultWeights().Score(b, p1, p2)
}

func SpaceDifference(b *Board, p1, p2 Position) int {
	return ReachableArea(b, p1, Player1) - ReachableArea(b, p2, Player2)
}

// ReachableArea counts the component of {Empty, owned by owner} cells containing start.
// The start cell always counts, so the result is 0 only when start is off the board.
func ReachableArea(b *Board, start Position, owner Player) int {
	if !b.InBounds(start) {
		return 0
	}
	visited := make([]bool, len(b.Cells))
	return b.fill(b.index(start), visited, func(i int) bool {
		return b.Cells[i] == NoPlayer || b.Cells[i] == owner
	})
}

// OpponentSplitCount counts the components the opponent's region falls apart into once
// candidate is treated as a wall. The region is everything reachable from opponentHead through
// Empty or opponent-owned cells. Returns 1 when nothing is left or there is no region at all.
func OpponentSplitCount(b *Board, candidate, opponentHead Position, opponent Player) int {
	if !b.InBounds(opponentHead) {
		return 1
	}

	region := make([]bool, len(b.Cells))
	b.fill(b.index(opponentHead), region, func(i int) bool {
		return b.Cells[i] == NoPlayer || b.Cells[i] == opponent
	})
	if b.InBounds(candidate) {
		region[b.index(candidate)] = false
	}

	components := 0
	visited := make([]bool, len(b.Cells))
	for i, inRegion := range region {
		if inRegion && !visited[i] {
			components++
			b.fill(i, visited, func(j int) bool { return region[j] })
		}
	}

	if components == 0 {
		return 1
	}
	return components
}

// VoronoiBalance tallies every Empty cell +1 when strictly closer (Manhattan) to p1, -1 when
// strictly closer to p2.
func VoronoiBalance(b *Board, p1, p2 Position) int {
	balance := 0
	for i, c := range b.Cells {
		if c != NoPlayer {
			continue
		}
		p := b.position(i)
		d1, d2 := p.Distance(p1), p.Distance(p2)
		switch {
		case d1 < d2:
			balance++
		case d2 < d1:
			balance--
		}
	}
	return balance
}

// fill performs an iterative depth-first flood fill over 4-connected cells
// Parameters:
// - seed: index of the starting cell, always counted
// - visited: cells already claimed, updated in place
// - open: whether a neighboring cell may be entered
// Returns number of cells newly visited
func (b *Board) fill(seed int, visited []bool, open func(int) bool) int {
	if visited[seed] {
		return 0
	}
	visited[seed] = true
	size := 0
	stack := []int{seed}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		row, col := i/b.Width, i%b.Width
		neighbors := [4]int{-1, -1, -1, -1}
		if row > 0 {
			neighbors[0] = i - b.Width
		}
		if row < b.Height-1 {
			neighbors[1] = i + b.Width
		}
		if col > 0 {
			neighbors[2] = i - 1
		}
		if col < b.Width-1 {
			neighbors[3] = i + 1
		}
		for _, n := range neighbors {
			if n >= 0 && !visited[n] && open(n) {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return size
}
