package superposition

import (
	"sort"
	"testing"
)

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -3, 4},
	}

	for _, tc := range cases {
		_, err := New(&Config{Width: tc.width, Height: tc.height})
		if err != ErrInvalidDimensions {
			t.Errorf("%s: err = %v, want ErrInvalidDimensions", tc.name, err)
		}
	}
}

func TestNewSeedDefaulting(t *testing.T) {
	g, err := New(&Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if g.Seed == 0 {
		t.Error("zero config seed should be replaced with a random one")
	}

	g, err = New(&Config{Width: 4, Height: 4, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	if g.Seed != 99 {
		t.Errorf("Seed = %d, want 99", g.Seed)
	}
}

func TestInitialEntropy(t *testing.T) {
	g, err := New(&Config{Width: 6, Height: 6, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	houses := len(terrainTiles[House])
	for i := 0; i < g.Size(); i++ {
		want := TileCount()
		if g.onBoundary(i) {
			// boundary cells can never host a house, so every
			// house tile is gone from the start
			want = TileCount() - houses
		}
		if got := g.EntropyAt(i); got != want {
			t.Errorf("EntropyAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestAccessorsOnFreshGrid(t *testing.T) {
	g, err := New(&Config{Width: 5, Height: 4, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := g.TileAt(7); ok {
		t.Error("TileAt on an uncollapsed cell should report no tile")
	}
	if g.IsCollapsed(7) {
		t.Error("fresh cells should not be collapsed")
	}
	if g.CollapsedCount() != 0 {
		t.Errorf("CollapsedCount() = %d, want 0", g.CollapsedCount())
	}

	// out of range queries are safe
	if _, ok := g.TileAt(-1); ok {
		t.Error("TileAt(-1) should report no tile")
	}
	if g.EntropyAt(g.Size()) != 0 {
		t.Error("EntropyAt out of range should be 0")
	}
	if g.IsCollapsed(g.Size()) {
		t.Error("IsCollapsed out of range should be false")
	}
}

func TestCardinalNeighbours(t *testing.T) {
	g, err := New(&Config{Width: 3, Height: 3, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		cell int
		want []int
	}{
		{4, []int{1, 3, 5, 7}}, // centre
		{0, []int{1, 3}},       // corner
		{1, []int{0, 2, 4}},    // edge
		{8, []int{5, 7}},       // opposite corner
	}

	for _, tc := range cases {
		got := g.cardinal(tc.cell)
		sort.Ints(got)
		if len(got) != len(tc.want) {
			t.Errorf("cardinal(%d) = %v, want %v", tc.cell, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("cardinal(%d) = %v, want %v", tc.cell, got, tc.want)
				break
			}
		}
	}
}

func TestMooreNeighbours(t *testing.T) {
	g, err := New(&Config{Width: 3, Height: 3, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		cell int
		want []int
	}{
		{4, []int{0, 1, 2, 3, 5, 6, 7, 8}}, // centre
		{0, []int{1, 3, 4}},                // corner
		{5, []int{1, 2, 4, 7, 8}},          // edge
	}

	for _, tc := range cases {
		got := g.moore(tc.cell)
		sort.Ints(got)
		if len(got) != len(tc.want) {
			t.Errorf("moore(%d) = %v, want %v", tc.cell, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("moore(%d) = %v, want %v", tc.cell, got, tc.want)
				break
			}
		}
	}
}

func TestViableCategoriesOnFreshGrid(t *testing.T) {
	g, err := New(&Config{Width: 5, Height: 5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	// centre of a fresh grid: every neighbour still supports every category
	cats := g.viableCategories(12)
	if len(cats) != len(terrainCategories) {
		t.Errorf("viableCategories(12) = %v, want all of %v", cats, terrainCategories)
	}
}

func TestHouseRuleAfterNeighbourPinned(t *testing.T) {
	g, err := New(&Config{Width: 5, Height: 5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	// pin one neighbour of the centre to sea & everything else around it
	// to mountain; no single category can cover the neighbourhood
	g.resolve(7, terrainTiles[Sea][0])
	for _, n := range g.moore(12) {
		if n == 7 {
			continue
		}
		g.resolve(n, terrainTiles[Mountain][0])
	}

	if !g.applyHouseRule(12) {
		t.Fatal("house rule should have cleared the centre's house tiles")
	}
	for _, h := range terrainTiles[House] {
		if g.cells[12].wave.Has(h) {
			t.Errorf("house tile %d still possible after rule applied", h)
		}
	}

	// a second application is a no-op
	if g.applyHouseRule(12) {
		t.Error("house rule reported a change with no house tiles left")
	}
}
