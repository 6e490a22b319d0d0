package game

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidStart      = errors.New("invalid starting positions")
)

// Player identifies a light cycle. NoPlayer doubles as the Empty cell value on a Board.
type Player int8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "None"
	}
}

func (p Player) index() int {
	return int(p) - 1
}

// Outcome is the result of a game, Ongoing until at least one player is stuck.
type Outcome int8

const (
	Ongoing Outcome = iota
	Player1Wins
	Player2Wins
	Draw
)

func (o Outcome) Terminal() bool {
	return o != Ongoing
}

// Winner returns the winning player, NoPlayer on a draw or an unfinished game.
func (o Outcome) Winner() Player {
	switch o {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	default:
		return NoPlayer
	}
}

// Loses reports whether p lost the game. Both players lose a draw.
func (o Outcome) Loses(p Player) bool {
	switch o {
	case Draw:
		return p.Valid()
	case Player1Wins:
		return p == Player2
	case Player2Wins:
		return p == Player1
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch o {
	case Player1Wins:
		return "Player1"
	case Player2Wins:
		return "Player2"
	case Draw:
		return "Draw"
	default:
		return "Ongoing"
	}
}

// outcomeOf resolves which players lost, a double loss is a draw.
func outcomeOf(p1Lost, p2Lost bool) Outcome {
	switch {
	case p1Lost && p2Lost:
		return Draw
	case p1Lost:
		return Player2Wins
	case p2Lost:
		return Player1Wins
	default:
		return Ongoing
	}
}

// Evaluates the game state to a score from player 1's perspective: positive
// values favor player 1, negative values favor player 2.
type Evaluate func(*GameState) float64
