package superposition

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/diogodebastos/super-position-grid/internal/bitset"
)

var (
	// ErrInvalidDimensions implies the configured grid size is unusable.
	ErrInvalidDimensions = fmt.Errorf("grid dimensions must be positive")

	// ErrCellOutOfRange implies a cell index outside the grid was given.
	ErrCellOutOfRange = fmt.Errorf("cell index out of range")

	// ErrCellCollapsed implies a run was started on an already resolved cell.
	ErrCellCollapsed = fmt.Errorf("cell is already collapsed")
)

// Config holds settings for a single grid.
type Config struct {
	// Width & Height of the grid in cells. The engine accepts any
	// positive dimensions; callers wanting sensible terrain should stay
	// within roughly 4-60 by 4-40.
	Width  int
	Height int

	// Seed for rng (random number chosen if not set)
	Seed int64
}

// Grid holds the wave state of one generation attempt: a possibility set
// per cell, narrowed by collapse & propagation until every cell resolves
// to a single tile or some cell runs out of options. A grid is not
// reusable across attempts - discard it & build a fresh one to retry.
type Grid struct {
	width  int
	height int
	cells  []*cell

	rng *rand.Rand

	// Seed the grid was built with, recorded so runs can be replayed
	Seed int64
}

// cell is one square of the grid. Invariant: once collapsed, wave is the
// singleton {tile} and never changes again.
type cell struct {
	wave      *bitset.Set
	collapsed bool
	tile      int
}

// New creates a grid with every cell able to hold any catalogue tile,
// except that boundary cells can never be houses (a house needs all 8 of
// its neighbours to exist inside the grid).
func New(cfg *Config) (*Grid, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, ErrInvalidDimensions
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Grid{
		width:  cfg.Width,
		height: cfg.Height,
		rng:    rand.New(rand.NewSource(seed)),
		Seed:   seed,
		cells:  make([]*cell, cfg.Width*cfg.Height),
	}

	for i := range g.cells {
		c := &cell{wave: bitset.Full(len(tileset)), tile: -1}
		if g.onBoundary(i) {
			for _, h := range terrainTiles[House] {
				c.wave.Clear(h)
			}
		}
		g.cells[i] = c
	}

	return g, nil
}

// Width of the grid in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height of the grid in cells.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the total cell count.
func (g *Grid) Size() int {
	return len(g.cells)
}

// TileAt returns the tile a cell collapsed to, or false if the cell is
// out of range or still unresolved.
func (g *Grid) TileAt(i int) (Tile, bool) {
	if i < 0 || i >= len(g.cells) || !g.cells[i].collapsed {
		return Tile{}, false
	}
	return tileset[g.cells[i].tile], true
}

// EntropyAt returns the number of tiles still possible at a cell.
func (g *Grid) EntropyAt(i int) int {
	if i < 0 || i >= len(g.cells) {
		return 0
	}
	return g.cells[i].wave.Count()
}

// IsCollapsed returns if the cell has resolved to a single tile.
func (g *Grid) IsCollapsed(i int) bool {
	if i < 0 || i >= len(g.cells) {
		return false
	}
	return g.cells[i].collapsed
}

// CollapsedCount returns how many cells have resolved so far.
func (g *Grid) CollapsedCount() int {
	count := 0
	for _, c := range g.cells {
		if c.collapsed {
			count++
		}
	}
	return count
}

// onBoundary returns if cell i sits on the outer edge of the grid.
func (g *Grid) onBoundary(i int) bool {
	x, y := i%g.width, i/g.width
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

// cardinal returns the up-to-4 orthogonal neighbours of cell i.
func (g *Grid) cardinal(i int) []int {
	x, y := i%g.width, i/g.width
	out := make([]int, 0, 4)
	if y > 0 {
		out = append(out, i-g.width)
	}
	if x > 0 {
		out = append(out, i-1)
	}
	if x < g.width-1 {
		out = append(out, i+1)
	}
	if y < g.height-1 {
		out = append(out, i+g.width)
	}
	return out
}

// moore returns the up-to-8 surrounding neighbours of cell i.
func (g *Grid) moore(i int) []int {
	x, y := i%g.width, i/g.width
	out := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= g.width || ny < 0 || ny >= g.height {
				continue
			}
			out = append(out, ny*g.width+nx)
		}
	}
	return out
}

// supportsTerrain returns if cell i could still end up in the given
// terrain category: either it collapsed to it, or it is unresolved with
// at least one tile of that category remaining.
func (g *Grid) supportsTerrain(i int, cat Terrain) bool {
	c := g.cells[i]
	if c.collapsed {
		return tileset[c.tile].Terrain == cat
	}
	for _, t := range terrainTiles[cat] {
		if c.wave.Has(t) {
			return true
		}
	}
	return false
}

// supportsSeat returns if cell n could still hold a tile of the given
// category that house tile h may sit directly against.
func (g *Grid) supportsSeat(n int, cat Terrain, h int) bool {
	c := g.cells[n]
	if c.collapsed {
		return tileset[c.tile].Terrain == cat && adjacency[h][c.tile]
	}
	for _, t := range terrainTiles[cat] {
		if c.wave.Has(t) && adjacency[h][t] {
			return true
		}
	}
	return false
}

// viableCategories returns the terrain categories that every one of cell
// i's 8 neighbours could still share. A house can only stand at i while
// this is non-empty.
func (g *Grid) viableCategories(i int) []Terrain {
	out := []Terrain{}
	for _, cat := range terrainCategories {
		ok := true
		for _, n := range g.moore(i) {
			if !g.supportsTerrain(n, cat) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cat)
		}
	}
	return out
}
