package bounds

import (
	"strings"
	"testing"

	"github.com/brensch/terminal/game"
)

var edgeLabel = map[Edge]string{TopRight: "TR", TopLeft: "TL", BottomLeft: "BL", BottomRight: "BR"}

func dumpArena(b *Bounds) string {
	var sb strings.Builder
	for y := b.Size() - 1; y >= 0; y-- {
		for x := 0; x < b.Size(); x++ {
			c := game.Coords{X: x, Y: y}
			switch e, ok := b.OnAnyEdge(c); {
			case ok:
				sb.WriteString(edgeLabel[e])
			case b.InArena(c):
				sb.WriteString(". ")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestArenaShape(t *testing.T) {
	b := Default
	t.Logf("arena:\n%s", dumpArena(b))

	count := 0
	for x := 0; x < b.Size(); x++ {
		for y := 0; y < b.Size(); y++ {
			if b.InArena(game.Coords{X: x, Y: y}) {
				count++
			}
		}
	}
	if count != 420 {
		t.Fatalf("arena cells=%d want=420", count)
	}

	for _, c := range []game.Coords{{X: 13, Y: 0}, {X: 14, Y: 0}, {X: 0, Y: 13}, {X: 27, Y: 14}, {X: 13, Y: 27}, {X: 14, Y: 14}} {
		if !b.InArena(c) {
			t.Fatalf("%v should be in the arena", c)
		}
	}
	for _, c := range []game.Coords{{X: 0, Y: 0}, {X: 27, Y: 27}, {X: 12, Y: 0}, {X: -1, Y: 13}, {X: 28, Y: 14}, {X: 13, Y: 28}} {
		if b.InArena(c) {
			t.Fatalf("%v should be outside the arena", c)
		}
	}
}

func TestEdgeLists(t *testing.T) {
	b := Default
	seen := make(map[game.Coords]Edge)
	for _, e := range Edges {
		cells := b.Edge(e)
		if len(cells) != b.Half() {
			t.Fatalf("%s has %d cells want=%d", e, len(cells), b.Half())
		}
		for _, c := range cells {
			if !b.OnEdge(e, c) || !b.InArena(c) {
				t.Fatalf("%v listed on %s but not flagged", c, e)
			}
			if prev, dup := seen[c]; dup {
				t.Fatalf("%v on both %s and %s", c, prev, e)
			}
			seen[c] = e
		}
	}

	for x := 0; x < b.Size(); x++ {
		for y := 0; y < b.Size(); y++ {
			c := game.Coords{X: x, Y: y}
			for _, e := range Edges {
				if !b.OnEdge(e, c) {
					continue
				}
				if !b.InArena(c) {
					t.Fatalf("%v flagged on %s but outside the arena", c, e)
				}
				if b.OnEdge(e.Opposite(), c) {
					t.Fatalf("%v flagged on both %s and its opposite", c, e)
				}
			}
		}
	}

	cases := []struct {
		c    game.Coords
		edge Edge
	}{
		{game.Coords{X: 14, Y: 27}, TopRight},
		{game.Coords{X: 27, Y: 14}, TopRight},
		{game.Coords{X: 13, Y: 27}, TopLeft},
		{game.Coords{X: 0, Y: 14}, TopLeft},
		{game.Coords{X: 13, Y: 0}, BottomLeft},
		{game.Coords{X: 0, Y: 13}, BottomLeft},
		{game.Coords{X: 14, Y: 0}, BottomRight},
		{game.Coords{X: 27, Y: 13}, BottomRight},
	}
	for _, tc := range cases {
		got, ok := b.OnAnyEdge(tc.c)
		if !ok || got != tc.edge {
			t.Fatalf("%v edge=%v ok=%v want=%v", tc.c, got, ok, tc.edge)
		}
	}
}

func TestEdgeReturnsCopy(t *testing.T) {
	cells := Default.Edge(TopRight)
	cells[0] = game.Coords{X: -5, Y: -5}
	if Default.Edge(TopRight)[0] != (game.Coords{X: 14, Y: 27}) {
		t.Fatalf("edge list was mutated through the returned slice")
	}
	if Default.Edge(Edge(9)) != nil {
		t.Fatalf("invalid edge should have no cells")
	}
}

func TestEdgeFromStart(t *testing.T) {
	cases := []struct {
		c    game.Coords
		want Edge
	}{
		{game.Coords{X: 3, Y: 10}, TopRight},
		{game.Coords{X: 3, Y: 17}, BottomRight},
		{game.Coords{X: 24, Y: 10}, TopLeft},
		{game.Coords{X: 24, Y: 17}, BottomLeft},
		{game.Coords{X: 13, Y: 0}, TopRight},
		{game.Coords{X: 14, Y: 0}, TopLeft},
	}
	for _, tc := range cases {
		if got := Default.EdgeFromStart(tc.c); got != tc.want {
			t.Fatalf("EdgeFromStart(%v)=%v want=%v", tc.c, got, tc.want)
		}
	}

	// Every arena cell targets the edge across from its quadrant.
	b := Default
	for x := 0; x < b.Size(); x++ {
		for y := 0; y < b.Size(); y++ {
			c := game.Coords{X: x, Y: y}
			if !b.InArena(c) {
				continue
			}
			got := b.EdgeFromStart(c)
			if got.IsRight() != (x < b.Half()) || got.IsTop() != (y < b.Half()) {
				t.Fatalf("EdgeFromStart(%v)=%v does not face its quadrant", c, got)
			}
			if b.OnEdge(got, c) {
				t.Fatalf("%v already lies on its target %s", c, got)
			}
		}
	}
}

func TestOpposite(t *testing.T) {
	for _, e := range Edges {
		if e.Opposite().Opposite() != e {
			t.Fatalf("%s opposite is not an involution", e)
		}
		if e.Opposite().IsTop() == e.IsTop() || e.Opposite().IsRight() == e.IsRight() {
			t.Fatalf("%s opposite %s does not face it", e, e.Opposite())
		}
	}
}

func TestNewRejectsOddSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("odd size should panic")
		}
	}()
	New(7)
}

func TestSmallBoard(t *testing.T) {
	b := New(4)
	t.Logf("arena:\n%s", dumpArena(b))
	if !b.InArena(game.Coords{X: 1, Y: 0}) || !b.InArena(game.Coords{X: 0, Y: 1}) || b.InArena(game.Coords{X: 0, Y: 0}) {
		t.Fatalf("unexpected 4x4 arena")
	}
	if b.Half() != 2 {
		t.Fatalf("half=%d want=2", b.Half())
	}
}
