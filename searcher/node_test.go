package searcher

import (
	"testing"
	"tron/game"

	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, state *game.GameState, player game.Player) *tree {
	t.Helper()
	tr := &tree{}
	tr.reset(state, player)
	return tr
}

func TestTreeExpand(t *testing.T) {
	t.Run("expands untried moves in enumeration order", func(t *testing.T) {
		state, err := game.NewGame(7, 7)
		require.NoError(t, err)
		tr := newTree(t, state, game.Player1)

		first := tr.selectThenExpand(CSquared)
		second := tr.expand(0)

		require.Equal(t, 1, first)
		require.Equal(t, game.North, tr.nodes[first].move)
		require.Equal(t, game.South, tr.nodes[second].move)
		require.Equal(t, []int{1, 2}, tr.nodes[0].children)
		require.Equal(t, []game.Move{game.West, game.East}, tr.nodes[0].untried)
	})

	t.Run("child belongs to the opponent and owns a stepped copy", func(t *testing.T) {
		state, err := game.NewGame(7, 7)
		require.NoError(t, err)
		before := state.Copy()
		tr := newTree(t, state, game.Player2)

		child := tr.expand(0)

		require.Equal(t, game.Player1, tr.nodes[child].player)
		require.Equal(t, 0, tr.nodes[child].parent)
		require.Equal(t, state.Head(game.Player2).Step(game.North), tr.nodes[child].state.Head(game.Player2))
		require.Equal(t, before, state, "Parent state should be untouched")
	})

	t.Run("terminal nodes are selection endpoints", func(t *testing.T) {
		state, err := game.NewGameAt(3, 1, game.Position{Row: 0, Col: 0}, game.Position{Row: 0, Col: 2})
		require.NoError(t, err)
		state.Step(game.Player1, game.East)
		tr := newTree(t, state, game.Player2)

		require.Empty(t, tr.nodes[0].untried)
		require.Equal(t, 0, tr.selectThenExpand(CSquared))
		require.Equal(t, 1, tr.size(), "Nothing should be expanded")
	})
}

func TestTreePickChild(t *testing.T) {
	t.Run("selects the child with max UCB", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2}, visits: 2},
			{parent: 0, visits: 1, value: -1},
			{parent: 0, visits: 1, value: 1},
		}}

		require.Equal(t, 2, tr.pickChild(0, CSquared))
	})

	t.Run("breaks ties by first child", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2}, visits: 4},
			{parent: 0, visits: 2, value: 0},
			{parent: 0, visits: 2, value: 0},
		}}

		require.Equal(t, 1, tr.pickChild(0, CSquared))
	})

	t.Run("panics when parent was never visited", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1}},
			{parent: 0},
		}}

		require.Panics(t, func() { tr.pickChild(0, CSquared) })
	})
}

func TestTreeBackup(t *testing.T) {
	t.Run("adds the same reward along the path to the root", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1}, visits: 3, value: 1},
			{parent: 0, children: []int{2}, visits: 1, value: 0},
			{parent: 1},
		}}

		tr.backup(2, Loss)

		require.Equal(t, 4, tr.nodes[0].visits)
		require.Equal(t, 0.0, tr.nodes[0].value)
		require.Equal(t, 2, tr.nodes[1].visits)
		require.Equal(t, -1.0, tr.nodes[1].value)
		require.Equal(t, 1, tr.nodes[2].visits)
		require.Equal(t, -1.0, tr.nodes[2].value, "Reward should not be flipped per player")
	})
}

func TestFindBestMove(t *testing.T) {
	t.Run("picks the most visited move", func(t *testing.T) {
		move, ok := findBestMove([]Edge{
			{Move: game.North, Visits: 3, Value: 3},
			{Move: game.West, Visits: 7, Value: -2},
		})

		require.True(t, ok)
		require.Equal(t, game.West, move, "Visits should win over value")
	})

	t.Run("breaks ties by first seen", func(t *testing.T) {
		move, _ := findBestMove([]Edge{
			{Move: game.South, Visits: 5},
			{Move: game.East, Visits: 5},
		})

		require.Equal(t, game.South, move)
	})

	t.Run("reports an empty policy", func(t *testing.T) {
		move, ok := findBestMove(nil)

		require.False(t, ok)
		require.Equal(t, game.NoMove, move)
	})
}
