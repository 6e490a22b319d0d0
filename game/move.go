package game

import "math/bits"

// Move is a unit step along one axis. NoMove is supplied by a player without legal moves.
type Move int8

const (
	NoMove Move = iota - 1
	North
	South
	West
	East
)

// AllMoves lists the directions in enumeration order.
var AllMoves = [4]Move{North, South, West, East}

var deltas = [4]Position{
	North: {Row: -1, Col: 0},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
	East:  {Row: 0, Col: 1},
}

func (m Move) Valid() bool {
	return m >= North && m <= East
}

func (m Move) String() string {
	switch m {
	case North:
		return "UP"
	case South:
		return "DOWN"
	case West:
		return "LEFT"
	case East:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// Position is a (row, column) cell coordinate.
type Position struct {
	Row int
	Col int
}

func (p Position) Step(m Move) Position {
	d := deltas[m]
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) Distance(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

func (p Position) adjacent(o Position) bool {
	return p.Distance(o) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MoveSet is a set of moves stored as a bitmask indexed by Move.
type MoveSet uint8

func (s MoveSet) Contains(m Move) bool {
	return m.Valid() && s&(1<<uint(m)) != 0
}

func (s MoveSet) With(m Move) MoveSet {
	return s | 1<<uint(m)
}

func (s MoveSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

func (s MoveSet) Empty() bool {
	return s == 0
}

// Moves returns the members in enumeration order.
func (s MoveSet) Moves() []Move {
	moves := make([]Move, 0, s.Len())
	for _, m := range AllMoves {
		if s.Contains(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// At returns the i-th member in enumeration order.
func (s MoveSet) At(i int) Move {
	for _, m := range AllMoves {
		if s.Contains(m) {
			if i == 0 {
				return m
			}
			i--
		}
	}
	return NoMove
}
