package game

import (
	"fmt"
	"math"
)

// Coords is a board coordinate.
// (0,0) is the bottom corner of the diamond on the planning player's side.
type Coords struct {
	X int
	Y int
}

// Neighbors returns the four axis-aligned neighbours.
// The order (+x, -x, +y, -y) is relied on by path tie-breaking.
func (c Coords) Neighbors() [4]Coords {
	return [4]Coords{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// Distance is the Euclidean distance between two coordinates.
func (c Coords) Distance(o Coords) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (c Coords) String() string {
	return fmt.Sprintf("<%d, %d>", c.X, c.Y)
}
