package searcher

import (
	"math"
	"tron/game"
)

const noParent = -1

// node is addressed by its index in the tree arena. Only visits and value change after creation.
type node struct {
	parent   int
	move     game.Move   // Move that led here from the parent
	player   game.Player // Player to move at this node
	state    *game.GameState
	untried  []game.Move
	children []int
	visits   int
	value    float64
}

// Edge summarizes one root child.
type Edge struct {
	Move   game.Move
	Visits int
	Value  float64
}

type tree struct {
	nodes []node
}

// reset discards the previous search and roots the tree at state.
func (t *tree) reset(state *game.GameState, player game.Player) {
	t.release()
	t.add(noParent, game.NoMove, player, state)
}

// release drops every node but keeps the arena's capacity.
func (t *tree) release() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) add(parent int, move game.Move, player game.Player, state *game.GameState) int {
	var untried []game.Move
	if !state.Terminal() {
		untried = state.LegalMoves(player).Moves()
	}
	t.nodes = append(t.nodes, node{
		parent:  parent,
		move:    move,
		player:  player,
		state:   state,
		untried: untried,
	})
	index := len(t.nodes) - 1
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, index)
	}
	return index
}

// selectThenExpand descends by UCB until a node is terminal, expandable or childless, and
// expands it when it can.
func (t *tree) selectThenExpand(cSquared float64) int {
	index := 0
	for {
		n := &t.nodes[index]
		if n.state.Terminal() {
			return index
		}
		if len(n.untried) > 0 {
			return t.expand(index)
		}
		if len(n.children) == 0 {
			return index
		}
		index = t.pickChild(index, cSquared)
	}
}

// expand takes the next untried move in enumeration order and adds the child for the opponent.
func (t *tree) expand(index int) int {
	n := &t.nodes[index]
	move := n.untried[0]
	n.untried = n.untried[1:]

	state := n.state.Copy()
	state.Step(n.player, move)
	return t.add(index, move, n.player.Opponent(), state)
}

func (t *tree) pickChild(index int, cSquared float64) int {
	n := &t.nodes[index]
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(cSquared, float64(n.visits))
	best := -1
	maxScore := math.Inf(-1)
	for _, c := range n.children {
		child := &t.nodes[c]
		if score := policy.evaluate(child.value, float64(child.visits)); score > maxScore {
			maxScore = score
			best = c
		}
	}
	return best
}

// backup adds the same reward to every node from index up to the root.
func (t *tree) backup(index int, reward float64) {
	for index != noParent {
		n := &t.nodes[index]
		n.visits++
		n.value += reward
		index = n.parent
	}
}

func (t *tree) policy() []Edge {
	root := &t.nodes[0]
	edges := make([]Edge, 0, len(root.children))
	for _, c := range root.children {
		child := &t.nodes[c]
		edges = append(edges, Edge{Move: child.move, Visits: child.visits, Value: child.value})
	}
	return edges
}

// findBestMove picks the most visited edge, the first one on ties.
func findBestMove(policy []Edge) (game.Move, bool) {
	if len(policy) == 0 {
		return game.NoMove, false
	}

	best := policy[0]
	for _, edge := range policy[1:] {
		if edge.Visits > best.Visits {
			best = edge
		}
	}
	return best.Move, true
}
