package engine

import (
	"strings"
	"tron/game"

	"github.com/muesli/termenv"
)

var trailColors = [2]string{"12", "9"} // Blue and red ANSI colors

// Render draws the board with each player's trail in its own color and the heads in bold.
// Empty cells are dots. Colors degrade to plain glyphs when out does not support them.
func Render(out *termenv.Output, state *game.GameState) string {
	b := state.Board
	heads := [2]game.Position{state.Head(game.Player1), state.Head(game.Player2)}

	var sb strings.Builder
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			pos := game.Position{Row: row, Col: col}
			owner := b.At(pos)
			if owner == game.NoPlayer {
				sb.WriteString(".")
				continue
			}

			i := int(owner) - 1
			glyph := "1"
			if owner == game.Player2 {
				glyph = "2"
			}
			style := out.String(glyph).Foreground(out.Color(trailColors[i]))
			if pos == heads[i] {
				style = style.Bold()
			}
			sb.WriteString(style.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
