package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newStateWithTrails builds a state whose board has extra trail cells already laid down.
func newStateWithTrails(t *testing.T, width, height int, p1, p2 Position, trails map[Position]Player) *GameState {
	t.Helper()
	s, err := NewGameAt(width, height, p1, p2)
	require.NoError(t, err)
	for pos, owner := range trails {
		s.Board.Set(pos, owner)
	}
	s.refresh()
	return s
}

func TestNewGame(t *testing.T) {
	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
			_, err := NewGame(dims[0], dims[1])
			require.ErrorIs(t, err, ErrInvalidDimensions, "Should fail fast on %v", dims)
		}
	})

	t.Run("rejects boards too narrow for two separated starts", func(t *testing.T) {
		_, err := NewGame(1, 4)
		require.ErrorIs(t, err, ErrInvalidStart, "Players would share a cell")

		_, err = NewGame(2, 4)
		require.ErrorIs(t, err, ErrInvalidStart, "Players would start adjacent")
	})

	t.Run("places players in opposite quarters of the middle row", func(t *testing.T) {
		s, err := NewGame(20, 20)
		require.NoError(t, err)

		require.Equal(t, Position{Row: 10, Col: 5}, s.Head(Player1))
		require.Equal(t, Position{Row: 10, Col: 14}, s.Head(Player2))
		require.Equal(t, Player1, s.Board.At(s.Head(Player1)), "Start cell should be owned")
		require.Equal(t, Player2, s.Board.At(s.Head(Player2)), "Start cell should be owned")
		require.Equal(t, 398, s.Board.CountEmpty(), "All other cells should be Empty")
		require.Equal(t, 4, s.LegalMoves(Player1).Len())
		require.Equal(t, 4, s.LegalMoves(Player2).Len())
		require.Equal(t, Ongoing, s.Outcome())
	})
}

func TestNewGameAt(t *testing.T) {
	t.Run("rejects starts off the board", func(t *testing.T) {
		_, err := NewGameAt(3, 3, Position{Row: 0, Col: 0}, Position{Row: 3, Col: 0})
		require.ErrorIs(t, err, ErrInvalidStart)
	})

	t.Run("rejects adjacent starts", func(t *testing.T) {
		_, err := NewGameAt(3, 3, Position{Row: 1, Col: 1}, Position{Row: 1, Col: 2})
		require.ErrorIs(t, err, ErrInvalidStart)
	})

	t.Run("corner start only offers inward moves", func(t *testing.T) {
		s, err := NewGameAt(3, 3, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
		require.NoError(t, err)

		require.Equal(t, []Move{South, East}, s.LegalMoves(Player1).Moves())
		require.Equal(t, []Move{North, West}, s.LegalMoves(Player2).Moves())
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("excludes trails of both players", func(t *testing.T) {
		s := newStateWithTrails(t, 3, 3, Position{Row: 1, Col: 1}, Position{Row: 2, Col: 2},
			map[Position]Player{{Row: 0, Col: 1}: Player1, {Row: 1, Col: 0}: Player2})

		require.Equal(t, []Move{South, East}, s.LegalMoves(Player1).Moves())
	})

	t.Run("invalid player has no moves", func(t *testing.T) {
		s, err := NewGame(5, 5)
		require.NoError(t, err)
		require.True(t, s.LegalMoves(NoPlayer).Empty())
	})
}

func TestApply(t *testing.T) {
	t.Run("valid moves relocate both heads and lay trails", func(t *testing.T) {
		s, err := NewGameAt(5, 5, Position{Row: 2, Col: 0}, Position{Row: 2, Col: 4})
		require.NoError(t, err)

		outcome := s.Apply(East, West)

		require.Equal(t, Ongoing, outcome)
		require.Equal(t, Position{Row: 2, Col: 1}, s.Head(Player1))
		require.Equal(t, Position{Row: 2, Col: 3}, s.Head(Player2))
		require.Equal(t, Player1, s.Board.At(Position{Row: 2, Col: 0}), "Trail should be permanent")
		require.Equal(t, Player1, s.Board.At(Position{Row: 2, Col: 1}))
		require.Equal(t, Player2, s.Board.At(Position{Row: 2, Col: 3}))
		require.False(t, s.LegalMoves(Player1).Contains(West), "Own trail should not be legal")
	})

	t.Run("moving off the board loses", func(t *testing.T) {
		s, err := NewGameAt(3, 3, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
		require.NoError(t, err)

		require.Equal(t, Player2Wins, s.Apply(North, North))
		require.Equal(t, Position{Row: 1, Col: 2}, s.Head(Player2), "Valid move should still be committed")
	})

	t.Run("moving onto a trail loses", func(t *testing.T) {
		s := newStateWithTrails(t, 3, 3, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2},
			map[Position]Player{{Row: 2, Col: 1}: Player1})

		require.Equal(t, Player1Wins, s.Apply(South, West))
	})

	t.Run("supplying no move loses", func(t *testing.T) {
		s, err := NewGame(10, 10)
		require.NoError(t, err)

		require.Equal(t, Player1Wins, s.Apply(North, NoMove))
	})

	t.Run("both players losing is a draw", func(t *testing.T) {
		s, err := NewGameAt(3, 3, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
		require.NoError(t, err)

		require.Equal(t, Draw, s.Apply(NoMove, South))
	})

	t.Run("entering the same cell is a draw", func(t *testing.T) {
		s, err := NewGameAt(3, 1, Position{Row: 0, Col: 0}, Position{Row: 0, Col: 2})
		require.NoError(t, err)

		require.Equal(t, Draw, s.Apply(East, West))
		require.Equal(t, NoPlayer, s.Board.At(Position{Row: 0, Col: 1}), "Neither player should claim the cell")
	})

	t.Run("finished games ignore further turns", func(t *testing.T) {
		s, err := NewGame(10, 10)
		require.NoError(t, err)
		s.Apply(NoMove, North)
		before := s.Copy()

		require.Equal(t, Player2Wins, s.Apply(North, North))
		require.Equal(t, before, s)
	})
}

func TestApplyTurn(t *testing.T) {
	t.Run("is deterministic and leaves the input untouched", func(t *testing.T) {
		s, err := NewGame(8, 6)
		require.NoError(t, err)
		original := s.Copy()

		first, o1 := ApplyTurn(s, North, South)
		second, o2 := ApplyTurn(s, North, South)

		require.Equal(t, first, second, "Identical inputs should yield identical states")
		require.Equal(t, o1, o2)
		require.Equal(t, original, s, "Input state should not be mutated")
	})

	t.Run("matches applying in place", func(t *testing.T) {
		s, err := NewGame(8, 6)
		require.NoError(t, err)

		next, outcome := ApplyTurn(s, East, West)
		s.Apply(East, West)

		require.Equal(t, s, next)
		require.Equal(t, s.Outcome(), outcome)
	})
}

func TestTerminal(t *testing.T) {
	t.Run("player 2 blocked on both sides on a 1x3 board", func(t *testing.T) {
		s, err := NewGameAt(3, 1, Position{Row: 0, Col: 0}, Position{Row: 0, Col: 2})
		require.NoError(t, err)
		require.Equal(t, []Move{East}, s.LegalMoves(Player1).Moves(), "East should be the only way out")

		s.Step(Player1, East)

		require.True(t, s.LegalMoves(Player2).Empty(), "Player 2 should be blocked on both sides")
		require.True(t, s.Terminal())
		require.True(t, s.Outcome().Loses(Player2))
		require.Equal(t, Draw, s.Outcome(), "Player 1 is boxed in as well")
	})

	t.Run("only the boxed in player loses", func(t *testing.T) {
		s := newStateWithTrails(t, 3, 2, Position{Row: 0, Col: 0}, Position{Row: 0, Col: 2},
			map[Position]Player{{Row: 1, Col: 2}: Player2})

		s.Step(Player1, East)

		require.True(t, s.LegalMoves(Player2).Empty())
		require.False(t, s.LegalMoves(Player1).Empty())
		require.Equal(t, Player1Wins, s.Outcome())
		require.Equal(t, Player1, s.Outcome().Winner())
	})

	t.Run("terminal if and only if a player has no legal moves", func(t *testing.T) {
		s, err := NewGame(6, 6)
		require.NoError(t, err)
		for !s.Terminal() {
			s.Apply(s.LegalMoves(Player1).At(0), s.LegalMoves(Player2).At(0))
			stuck := s.LegalMoves(Player1).Empty() || s.LegalMoves(Player2).Empty()
			if stuck {
				require.True(t, s.Terminal(), "A stuck player should end the game")
			}
			if !s.Terminal() {
				require.False(t, stuck, "An ongoing game should leave both players a move")
			}
		}
	})
}

func TestStepUndo(t *testing.T) {
	t.Run("undo restores the state exactly", func(t *testing.T) {
		s, err := NewGame(7, 7)
		require.NoError(t, err)
		before := s.Copy()

		u1 := s.Step(Player1, North)
		u2 := s.Step(Player2, South)
		require.NotEqual(t, before, s)

		s.Undo(u2)
		s.Undo(u1)
		require.Equal(t, before, s)
	})

	t.Run("illegal step loses for the mover and can be undone", func(t *testing.T) {
		s, err := NewGameAt(3, 3, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
		require.NoError(t, err)
		before := s.Copy()

		u := s.Step(Player1, North)
		require.Equal(t, Player2Wins, s.Outcome())

		s.Undo(u)
		require.Equal(t, before, s)
	})
}

func TestMoveSet(t *testing.T) {
	t.Run("enumerates in direction order", func(t *testing.T) {
		set := MoveSet(0).With(East).With(North).With(West)

		require.Equal(t, 3, set.Len())
		require.Equal(t, []Move{North, West, East}, set.Moves())
		require.Equal(t, West, set.At(1))
		require.Equal(t, NoMove, set.At(3))
		require.False(t, set.Contains(South))
		require.False(t, set.Contains(NoMove))
	})
}
