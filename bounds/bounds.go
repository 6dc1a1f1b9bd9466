// Package bounds holds the fixed geometry of the diamond-shaped arena: which
// cells are playable and which cells form each of the four edges.
package bounds

import (
	"fmt"

	"github.com/brensch/terminal/game"
)

// BoardSize is the side length of the square grid the arena is drawn in.
const BoardSize = 28

// Edge names one of the four diagonal borders of the arena. Values match the
// edge numbers used on the wire.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight
)

// Edges lists every edge in wire order.
var Edges = [4]Edge{TopRight, TopLeft, BottomLeft, BottomRight}

func (e Edge) String() string {
	switch e {
	case TopRight:
		return "top-right"
	case TopLeft:
		return "top-left"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

func (e Edge) Valid() bool { return e >= TopRight && e <= BottomRight }

// Opposite returns the edge facing e across the arena.
func (e Edge) Opposite() Edge {
	switch e {
	case TopRight:
		return BottomLeft
	case TopLeft:
		return BottomRight
	case BottomLeft:
		return TopRight
	default:
		return TopLeft
	}
}

// IsTop reports whether e borders the opponent's half.
func (e Edge) IsTop() bool { return e == TopRight || e == TopLeft }

// IsRight reports whether e lies on the high-x side.
func (e Edge) IsRight() bool { return e == TopRight || e == BottomRight }

// Bounds is the precomputed geometry for one board size. It is immutable.
type Bounds struct {
	size   int
	onEdge [4][][]bool
	edges  [4][]game.Coords
	arena  [][]bool
}

// Default is the geometry of the standard 28x28 board.
var Default = New(BoardSize)

func newGrid(n int) [][]bool {
	g := make([][]bool, n)
	for x := range g {
		g[x] = make([]bool, n)
	}
	return g
}

// New computes the geometry for an even board size.
func New(size int) *Bounds {
	if size <= 0 || size%2 != 0 {
		panic(fmt.Sprintf("bounds: board size must be positive and even, got %d", size))
	}
	b := &Bounds{size: size, arena: newGrid(size)}
	half := size / 2

	cell := [4]func(i int) game.Coords{
		TopRight:    func(i int) game.Coords { return game.Coords{X: half + i, Y: size - 1 - i} },
		TopLeft:     func(i int) game.Coords { return game.Coords{X: half - 1 - i, Y: size - 1 - i} },
		BottomLeft:  func(i int) game.Coords { return game.Coords{X: half - 1 - i, Y: i} },
		BottomRight: func(i int) game.Coords { return game.Coords{X: half + i, Y: i} },
	}
	for _, e := range Edges {
		b.onEdge[e] = newGrid(size)
		b.edges[e] = make([]game.Coords, half)
		for i := 0; i < half; i++ {
			c := cell[e](i)
			b.onEdge[e][c.X][c.Y] = true
			b.edges[e][i] = c
			b.arena[c.X][c.Y] = true
		}
	}

	// Each row holds exactly two edge cells; fill the span between them.
	for y := 0; y < size; y++ {
		inside := false
		for x := 0; x < size; x++ {
			if b.arena[x][y] {
				if inside {
					break
				}
				inside = true
			} else if inside {
				b.arena[x][y] = true
			}
		}
	}
	return b
}

// Size is the side length of the grid.
func (b *Bounds) Size() int { return b.size }

// Half is the first row index of the opponent's side.
func (b *Bounds) Half() int { return b.size / 2 }

// InGrid reports whether c indexes the square grid, arena or not.
func (b *Bounds) InGrid(c game.Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.size && c.Y < b.size
}

// InArena reports whether c is a playable cell.
func (b *Bounds) InArena(c game.Coords) bool {
	return b.InGrid(c) && b.arena[c.X][c.Y]
}

// OnEdge reports whether c lies on edge e.
func (b *Bounds) OnEdge(e Edge, c game.Coords) bool {
	return e.Valid() && b.InGrid(c) && b.onEdge[e][c.X][c.Y]
}

// OnAnyEdge returns the first edge containing c.
func (b *Bounds) OnAnyEdge(c game.Coords) (Edge, bool) {
	for _, e := range Edges {
		if b.OnEdge(e, c) {
			return e, true
		}
	}
	return 0, false
}

// Edge returns the cells of e ordered from the centre line outward.
// The slice is a copy.
func (b *Bounds) Edge(e Edge) []game.Coords {
	if !e.Valid() {
		return nil
	}
	return append([]game.Coords(nil), b.edges[e]...)
}

// EdgeFromStart returns the edge a unit starting at c walks toward: the one
// across the arena from the quadrant it starts in.
func (b *Bounds) EdgeFromStart(c game.Coords) Edge {
	half := b.Half()
	if c.X < half {
		if c.Y < half {
			return TopRight
		}
		return BottomRight
	}
	if c.Y < half {
		return TopLeft
	}
	return BottomLeft
}
