package game

import (
	"fmt"
	"strings"
)

// Board is a fixed-size grid stored as a flat, row-major buffer of cell owners.
type Board struct {
	Width  int
	Height int
	Cells  []Player
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Board{
		Width:  width,
		Height: height,
		Cells:  make([]Player, width*height),
	}, nil
}

func (b *Board) Copy() *Board {
	cells := make([]Player, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Width: b.Width, Height: b.Height, Cells: cells}
}

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Height && p.Col >= 0 && p.Col < b.Width
}

// At returns the owner of the cell, NoPlayer for Empty. Panics out of bounds.
func (b *Board) At(p Position) Player {
	return b.Cells[b.index(p)]
}

// Set marks the cell as owned by owner.
func (b *Board) Set(p Position, owner Player) {
	b.Cells[b.index(p)] = owner
}

// IsEmpty reports whether p is inside the board and unowned.
func (b *Board) IsEmpty(p Position) bool {
	return b.InBounds(p) && b.Cells[b.index(p)] == NoPlayer
}

func (b *Board) CountEmpty() int {
	n := 0
	for _, c := range b.Cells {
		if c == NoPlayer {
			n++
		}
	}
	return n
}

func (b *Board) index(p Position) int {
	return p.Row*b.Width + p.Col
}

func (b *Board) position(i int) Position {
	return Position{Row: i / b.Width, Col: i % b.Width}
}

// String renders one line per row: '.' for Empty, '1' and '2' for trails.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.Width + 1) * b.Height)
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			sb.WriteByte(b.glyph(Position{Row: row, Col: col}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) glyph(p Position) byte {
	switch b.At(p) {
	case Player1:
		return '1'
	case Player2:
		return '2'
	default:
		return '.'
	}
}
