package superposition

// compatible returns if tile a may sit cardinally adjacent to tile b.
// This predicate is the only place the adjacency rules are written down;
// everything else consults the precomputed table.
//
// The rows are directional (evaluated from a's side). Propagation asks
// "does anything at the current cell support tile b at the neighbour",
// so both orderings of a pair end up exercised over a run.
func compatible(a, b Tile) bool {
	switch a.Terrain {
	case Sea:
		switch b.Terrain {
		case Sea:
			return true
		case Ground:
			return b.Elevation == 0
		}
		return false
	case Ground:
		switch b.Terrain {
		case Sea:
			return a.Elevation == 0
		case Mountain:
			return a.Elevation >= 5
		}
		// ground next to ground or house is always fine; the house
		// uniformity rule supplies the real restriction for houses
		return true
	case Mountain:
		return b.Elevation >= 5
	case House:
		if b.Terrain == Sea {
			return a.Elevation == 0
		}
		return true
	}
	return false
}

// buildAdjacency evaluates compatible() for all ordered tile pairs.
// Called once from init; the table is read-only afterwards & safe to
// share between grids.
func buildAdjacency() {
	adjacency = make([][]bool, len(tileset))
	for i, a := range tileset {
		adjacency[i] = make([]bool, len(tileset))
		for j, b := range tileset {
			adjacency[i][j] = compatible(a, b)
		}
	}
}
