package game_test

import (
	"math"
	"testing"

	"github.com/brensch/terminal/game"
)

func TestNeighborsOrder(t *testing.T) {
	got := game.Coords{X: 5, Y: 9}.Neighbors()
	want := [4]game.Coords{{X: 6, Y: 9}, {X: 4, Y: 9}, {X: 5, Y: 10}, {X: 5, Y: 8}}
	if got != want {
		t.Fatalf("neighbors=%v want=%v", got, want)
	}
}

func TestDistance(t *testing.T) {
	a := game.Coords{X: 1, Y: 2}
	b := game.Coords{X: 4, Y: 6}
	if d := a.Distance(b); d != 5 {
		t.Fatalf("distance=%v want=5", d)
	}
	if d := b.Distance(a); d != 5 {
		t.Fatalf("distance not symmetric: %v", d)
	}
	if d := a.Distance(game.Coords{X: 2, Y: 3}); math.Abs(d-math.Sqrt2) > 1e-12 {
		t.Fatalf("diagonal distance=%v want=%v", d, math.Sqrt2)
	}
}

func TestCoordsAsMapKey(t *testing.T) {
	seen := map[game.Coords]int{}
	seen[game.Coords{X: 3, Y: 4}]++
	seen[game.Coords{X: 3, Y: 4}]++
	if len(seen) != 1 || seen[game.Coords{X: 3, Y: 4}] != 2 {
		t.Fatalf("map=%v want one key counted twice", seen)
	}
	if s := (game.Coords{X: 3, Y: 4}).String(); s != "<3, 4>" {
		t.Fatalf("string=%q", s)
	}
}
