package game

import "fmt"

// GameState is the board plus both heads. Legal moves and the outcome are derived from the
// board after every mutation.
type GameState struct {
	Board   *Board
	heads   [2]Position
	moves   [2]MoveSet
	outcome Outcome
}

// NewGame places the players in the middle row, a quarter of the width in from either side.
func NewGame(width, height int) (*GameState, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	row := height / 2
	p1 := Position{Row: row, Col: width / 4}
	p2 := Position{Row: row, Col: width - 1 - width/4}
	return NewGameAt(width, height, p1, p2)
}

// NewGameAt starts a game from explicit head positions, which must be on the board,
// distinct and not adjacent.
func NewGameAt(width, height int, p1, p2 Position) (*GameState, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	switch {
	case !board.InBounds(p1) || !board.InBounds(p2):
		return nil, fmt.Errorf("%w: %v and %v do not fit on a %dx%d board", ErrInvalidStart, p1, p2, width, height)
	case p1 == p2:
		return nil, fmt.Errorf("%w: both players start on %v", ErrInvalidStart, p1)
	case p1.adjacent(p2):
		return nil, fmt.Errorf("%w: %v and %v are adjacent", ErrInvalidStart, p1, p2)
	}

	s := &GameState{Board: board}
	s.occupy(Player1, p1)
	s.occupy(Player2, p2)
	s.refresh()
	return s, nil
}

func (s *GameState) Copy() *GameState {
	return &GameState{
		Board:   s.Board.Copy(),
		heads:   s.heads,
		moves:   s.moves,
		outcome: s.outcome,
	}
}

func (s *GameState) Head(p Player) Position {
	return s.heads[p.index()]
}

func (s *GameState) LegalMoves(p Player) MoveSet {
	if !p.Valid() {
		return 0
	}
	return s.moves[p.index()]
}

func (s *GameState) Outcome() Outcome {
	return s.outcome
}

func (s *GameState) Terminal() bool {
	return s.outcome.Terminal()
}

// Apply resolves one simultaneous turn in place. Both moves are validated against the board
// before either is committed. A missing or invalid move loses, and two players entering the
// same cell both lose. Applying to a finished game changes nothing.
func (s *GameState) Apply(p1, p2 Move) Outcome {
	if s.outcome.Terminal() {
		return s.outcome
	}

	t1, ok1 := s.target(Player1, p1)
	t2, ok2 := s.target(Player2, p2)
	if ok1 && ok2 && t1 == t2 {
		ok1, ok2 = false, false
	}
	if ok1 {
		s.occupy(Player1, t1)
	}
	if ok2 {
		s.occupy(Player2, t2)
	}

	s.refresh()
	if !ok1 || !ok2 {
		s.outcome = outcomeOf(!ok1, !ok2)
	}
	return s.outcome
}

// ApplyTurn is Apply on a copy, leaving s untouched.
func ApplyTurn(s *GameState, p1, p2 Move) (*GameState, Outcome) {
	next := s.Copy()
	outcome := next.Apply(p1, p2)
	return next, outcome
}

// Undo restores the state to what it was before a Step.
type Undo struct {
	player  Player
	head    Position
	cell    int
	moves   [2]MoveSet
	outcome Outcome
}

// Step moves a single player, the other player holding still. It is the ply used by the
// searchers. An invalid move loses for the mover.
func (s *GameState) Step(p Player, m Move) Undo {
	u := Undo{
		player:  p,
		head:    s.heads[p.index()],
		cell:    -1,
		moves:   s.moves,
		outcome: s.outcome,
	}

	target, ok := s.target(p, m)
	if !ok {
		s.outcome = outcomeOf(p == Player1, p == Player2)
		return u
	}

	u.cell = s.Board.index(target)
	s.occupy(p, target)
	s.refresh()
	return u
}

func (s *GameState) Undo(u Undo) {
	if u.cell >= 0 {
		s.Board.Cells[u.cell] = NoPlayer
	}
	s.heads[u.player.index()] = u.head
	s.moves = u.moves
	s.outcome = u.outcome
}

func (s *GameState) String() string {
	return fmt.Sprintf("p1=%v p2=%v outcome=%s\n%s", s.heads[0], s.heads[1], s.outcome, s.Board)
}

func (s *GameState) target(p Player, m Move) (Position, bool) {
	if !m.Valid() {
		return Position{}, false
	}
	t := s.heads[p.index()].Step(m)
	return t, s.Board.IsEmpty(t)
}

func (s *GameState) occupy(p Player, pos Position) {
	s.Board.Set(pos, p)
	s.heads[p.index()] = pos
}

func (s *GameState) refresh() {
	s.moves[0] = s.legal(Player1)
	s.moves[1] = s.legal(Player2)
	s.outcome = outcomeOf(s.moves[0].Empty(), s.moves[1].Empty())
}

func (s *GameState) legal(p Player) MoveSet {
	var set MoveSet
	head := s.heads[p.index()]
	for _, m := range AllMoves {
		if s.Board.IsEmpty(head.Step(m)) {
			set = set.With(m)
		}
	}
	return set
}
