package superposition

// Terrain indicates the broad category of a tile. Each category spans a
// fixed band of elevations (see init below).
type Terrain string

const (
	Sea      Terrain = "sea"      // open water, elevation 0 only
	Ground   Terrain = "ground"   // flat-ish land, elevations 0-5
	Mountain Terrain = "mountain" // high terrain, elevations 6-10
	House    Terrain = "house"    // settlement, any elevation, demands uniform surroundings
)

// Tile is an immutable (terrain, elevation) pair - the unit a cell may
// finally resolve to. Cells refer to tiles by index into the shared
// catalogue rather than holding tile data themselves.
type Tile struct {
	Terrain   Terrain
	Elevation int
}

var (
	// the fixed, ordered tile catalogue; built once, never mutated
	tileset []Tile

	// tile indices grouped by terrain, for category level checks
	terrainTiles map[Terrain][]int

	// the categories a house neighbourhood may resolve to
	terrainCategories = []Terrain{Sea, Ground, Mountain}

	// adjacency[a][b] caches compatible(tileset[a], tileset[b])
	adjacency [][]bool
)

func init() {
	tileset = []Tile{{Terrain: Sea, Elevation: 0}}
	for e := 0; e <= 5; e++ {
		tileset = append(tileset, Tile{Terrain: Ground, Elevation: e})
	}
	for e := 6; e <= 10; e++ {
		tileset = append(tileset, Tile{Terrain: Mountain, Elevation: e})
	}
	for e := 0; e <= 10; e++ {
		tileset = append(tileset, Tile{Terrain: House, Elevation: e})
	}

	terrainTiles = map[Terrain][]int{}
	for i, t := range tileset {
		terrainTiles[t.Terrain] = append(terrainTiles[t.Terrain], i)
	}

	buildAdjacency()
}

// Tiles returns a copy of the tile catalogue in index order.
func Tiles() []Tile {
	out := make([]Tile, len(tileset))
	copy(out, tileset)
	return out
}

// TileCount returns the number of tiles in the catalogue.
func TileCount() int {
	return len(tileset)
}

// weight returns the sampling weight used when a cell is collapsed.
// These are aesthetic biases, not correctness constraints; low flat
// ground is favoured, houses are rare.
func (t Tile) weight() float64 {
	switch t.Terrain {
	case Sea:
		return 1.0
	case Ground:
		return 1.0 - 0.15*float64(t.Elevation)
	case Mountain:
		return 0.5 - 0.05*float64(t.Elevation-6)
	case House:
		return 0.1
	}
	return 0
}
