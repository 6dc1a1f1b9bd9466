// Package pathfind computes the exact route a mobile unit takes from its
// spawn tile, tile for tile as the game engine walks it.
//
// A unit heads for the edge across from where it starts. When its pocket of
// open tiles touches that edge it walks to the nearest open edge tile;
// otherwise it walks to the single most advanced tile of its pocket and
// stops there. Ties between equally short moves are broken by fixed
// direction rules.
package pathfind

import (
	"fmt"
	"math"
	"strings"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

// Board is the part of the simulated board the pathfinder reads.
type Board interface {
	Bounds() *bounds.Bounds
	StructureAt(c game.Coords) *rules.Unit
}

type Reason int

const (
	OutsideArena Reason = iota
	BlockedByStructure
)

func (r Reason) String() string {
	switch r {
	case OutsideArena:
		return "outside of arena"
	case BlockedByStructure:
		return "blocked by structure"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// IllegalStartError is returned when no unit could stand on the start tile.
type IllegalStartError struct {
	Start  game.Coords
	Reason Reason
}

func (e *IllegalStartError) Error() string {
	return fmt.Sprintf("illegal path start %s: %s", e.Start, e.Reason)
}

type direction int

const (
	dirNone direction = iota
	dirHorizontal
	dirVertical
)

func directionBetween(from, to game.Coords) direction {
	switch {
	case from.X == to.X && from.Y != to.Y:
		return dirVertical
	case from.X != to.X && from.Y == to.Y:
		return dirHorizontal
	default:
		panic(fmt.Sprintf("pathfind: %s and %s are not adjacent", from, to))
	}
}

type node struct {
	blocked      bool
	visitedIdeal bool
	visitedLabel bool
	pathLength   int
}

// Pathfinder holds the labelled grid for one start tile and target edge.
// All work happens in New; later changes to the board are not observed.
type Pathfinder struct {
	b     *bounds.Bounds
	start game.Coords
	edge  bounds.Edge
	grid  [][]node
	path  []game.Coords
}

// New snapshots the structure layout of board and computes the path from
// start toward edge.
func New(board Board, start game.Coords, edge bounds.Edge) (*Pathfinder, error) {
	b := board.Bounds()
	if !b.InArena(start) {
		return nil, &IllegalStartError{Start: start, Reason: OutsideArena}
	}
	if board.StructureAt(start) != nil {
		return nil, &IllegalStartError{Start: start, Reason: BlockedByStructure}
	}
	if !edge.Valid() {
		return nil, fmt.Errorf("pathfind: invalid target edge %d", int(edge))
	}

	p := &Pathfinder{
		b:     b,
		start: start,
		edge:  edge,
		grid:  make([][]node, b.Size()),
	}
	for x := range p.grid {
		p.grid[x] = make([]node, b.Size())
		for y := range p.grid[x] {
			p.grid[x][y] = node{
				blocked:    board.StructureAt(game.Coords{X: x, Y: y}) != nil,
				pathLength: -1,
			}
		}
	}

	p.label(p.idealTiles())
	p.path = p.walk()
	return p, nil
}

// Find returns the path from start toward edge.
func Find(board Board, start game.Coords, edge bounds.Edge) ([]game.Coords, error) {
	p, err := New(board, start, edge)
	if err != nil {
		return nil, err
	}
	return p.Path(), nil
}

// FindToFacingEdge returns the path toward the edge across from start.
func FindToFacingEdge(board Board, start game.Coords) ([]game.Coords, error) {
	return Find(board, start, board.Bounds().EdgeFromStart(start))
}

// Path returns the route including the start tile. The slice is a copy.
func (p *Pathfinder) Path() []game.Coords {
	return append([]game.Coords(nil), p.path...)
}

func (p *Pathfinder) Start() game.Coords { return p.start }
func (p *Pathfinder) Edge() bounds.Edge { return p.edge }

// ReachesEdge reports whether the path ends on the target edge rather than
// inside a closed pocket.
func (p *Pathfinder) ReachesEdge() bool {
	return p.b.OnEdge(p.edge, p.path[len(p.path)-1])
}

func (p *Pathfinder) at(c game.Coords) *node { return &p.grid[c.X][c.Y] }

func (p *Pathfinder) open(c game.Coords) bool {
	return p.b.InArena(c) && !p.at(c).blocked
}

// idealness ranks a tile as a pocket destination: edge tiles beat every
// other tile, then distance advanced toward the edge, then sideways
// progress.
func (p *Pathfinder) idealness(c game.Coords) int {
	if p.b.OnEdge(p.edge, c) {
		return math.MaxInt
	}
	n := p.b.Size()
	score := 0
	if p.edge.IsTop() {
		score += n * c.Y
	} else {
		score += n * (n - 1 - c.Y)
	}
	if p.edge.IsRight() {
		score += c.X
	} else {
		score += n - 1 - c.X
	}
	return score
}

// openEdgeTiles lists the unblocked tiles of the target edge, x then y.
func (p *Pathfinder) openEdgeTiles() []game.Coords {
	var out []game.Coords
	for x := 0; x < p.b.Size(); x++ {
		for y := 0; y < p.b.Size(); y++ {
			c := game.Coords{X: x, Y: y}
			if p.b.OnEdge(p.edge, c) && !p.at(c).blocked {
				out = append(out, c)
			}
		}
	}
	return out
}

// idealTiles floods the start's pocket. If the flood touches the target edge
// the destinations are all open edge tiles, otherwise the single best tile.
func (p *Pathfinder) idealTiles() []game.Coords {
	if p.b.OnEdge(p.edge, p.start) {
		return p.openEdgeTiles()
	}

	best := p.start
	bestScore := p.idealness(p.start)
	p.at(p.start).visitedIdeal = true
	queue := []game.Coords{p.start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nb := range curr.Neighbors() {
			if !p.open(nb) || p.at(nb).visitedIdeal {
				continue
			}
			p.at(nb).visitedIdeal = true

			if p.b.OnEdge(p.edge, nb) {
				return p.openEdgeTiles()
			}
			if score := p.idealness(nb); score > bestScore {
				best, bestScore = nb, score
			}
			queue = append(queue, nb)
		}
	}
	return []game.Coords{best}
}

// label assigns every tile connected to the destinations its walking
// distance to the nearest one.
func (p *Pathfinder) label(dest []game.Coords) {
	queue := make([]game.Coords, 0, len(dest))
	for _, c := range dest {
		n := p.at(c)
		n.pathLength = 0
		n.visitedLabel = true
		queue = append(queue, c)
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nb := range curr.Neighbors() {
			if !p.open(nb) || p.at(nb).visitedLabel {
				continue
			}
			p.at(nb).visitedLabel = true
			p.at(nb).pathLength = p.at(curr).pathLength + 1
			queue = append(queue, nb)
		}
	}
}

func (p *Pathfinder) walk() []game.Coords {
	path := []game.Coords{p.start}
	curr := p.start
	dir := dirNone
	for p.at(curr).pathLength > 0 {
		next, ok := p.nextMove(curr, dir)
		if !ok {
			break
		}
		dir = directionBetween(curr, next)
		curr = next
		path = append(path, next)
	}
	return path
}

// nextMove picks among the labelled neighbours with the shortest remaining
// distance. Candidates are visited in neighbour order and a later candidate
// only replaces the current pick when it is strictly preferred.
func (p *Pathfinder) nextMove(curr game.Coords, dir direction) (game.Coords, bool) {
	var candidates []game.Coords
	shortest := math.MaxInt
	for _, nb := range curr.Neighbors() {
		if !p.b.InArena(nb) || !p.at(nb).visitedLabel {
			continue
		}
		candidates = append(candidates, nb)
		shortest = min(shortest, p.at(nb).pathLength)
	}

	var best game.Coords
	found := false
	for _, c := range candidates {
		if p.at(c).pathLength != shortest {
			continue
		}
		if !found || !p.keepFirst(curr, dir, best, c) {
			best = c
			found = true
		}
	}
	return best, found
}

// keepFirst reports whether a should be kept over b as the next step from
// curr.
func (p *Pathfinder) keepFirst(curr game.Coords, dir direction, a, b game.Coords) bool {
	da := directionBetween(curr, a)
	db := directionBetween(curr, b)

	// The first step goes vertical.
	goodA := dir == dirNone && da == dirVertical
	goodB := dir == dirNone && db == dirVertical
	if goodA != goodB {
		return goodA
	}

	// Then alternate axes.
	goodA = da != dir
	goodB = db != dir
	if goodA != goodB {
		return goodA
	}

	// Then head toward the target edge.
	var towardB bool
	switch p.edge {
	case bounds.TopRight:
		towardB = b.X > a.X || b.Y > a.Y
	case bounds.TopLeft:
		towardB = b.X < a.X || b.Y > a.Y
	case bounds.BottomRight:
		towardB = b.X > a.X || b.Y < a.Y
	case bounds.BottomLeft:
		towardB = b.X < a.X || b.Y < a.Y
	}
	return !towardB
}

// String renders the labelled grid: distances for reachable tiles, [] for
// structures and ** outside the arena.
func (p *Pathfinder) String() string {
	var sb strings.Builder
	n := p.b.Size()
	for y := n - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%3d", y)
		for x := 0; x < n; x++ {
			c := game.Coords{X: x, Y: y}
			switch nd := p.at(c); {
			case !p.b.InArena(c):
				sb.WriteString(" **")
			case nd.blocked:
				sb.WriteString(" []")
			case nd.visitedLabel:
				fmt.Fprintf(&sb, "%3d", nd.pathLength)
			default:
				sb.WriteString("   ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 0; x < n; x++ {
		fmt.Fprintf(&sb, "%3d", x)
	}
	sb.WriteByte('\n')
	return sb.String()
}
