package superposition

import (
	"sort"
)

// resolve pins cell i to tile t. The possibility set becomes the
// singleton {t} and is never touched again.
func (g *Grid) resolve(i, t int) {
	c := g.cells[i]
	c.wave.Each(func(s int) {
		if s != t {
			c.wave.Clear(s)
		}
	})
	c.collapsed = true
	c.tile = t
}

// collapse resolves cell i to one of its remaining tiles by weighted
// random draw. Returns false if the possibility set was already empty,
// which only happens if the caller mis-sequenced operations - selection
// never hands out empty cells.
func (g *Grid) collapse(i int) (int, bool) {
	c := g.cells[i]
	if c.wave.Count() == 0 {
		return -1, false
	}

	total := 0.0
	c.wave.Each(func(t int) { total += tileset[t].weight() })

	rv := g.rng.Float64()
	sofar := 0.0
	chosen := -1
	c.wave.Each(func(t int) {
		if chosen >= 0 {
			return
		}
		sofar += tileset[t].weight() / total
		if rv <= sofar {
			chosen = t
		}
	})
	if chosen < 0 {
		// float drift left rv above the accumulated total, take
		// the last remaining tile
		c.wave.Each(func(t int) { chosen = t })
	}

	g.resolve(i, chosen)
	return chosen, true
}

// narrow recomputes the possibility set of neighbour n against cell cur:
// a tile survives at n only if something still possible at cur supports
// it. Returns if the set changed.
func (g *Grid) narrow(cur, n int) bool {
	cw := g.cells[cur].wave
	nw := g.cells[n].wave

	changed := false
	nw.Each(func(t int) {
		supported := false
		cw.Each(func(s int) {
			if adjacency[s][t] {
				supported = true
			}
		})
		if !supported {
			nw.Clear(t)
			changed = true
		}
	})
	return changed
}

// applyHouseRule clears the house tiles at cell i that could no longer
// legally stand there. Returns if the set changed.
func (g *Grid) applyHouseRule(i int) bool {
	c := g.cells[i]

	changed := false
	for _, h := range terrainTiles[House] {
		if !c.wave.Has(h) {
			continue
		}
		if !g.onBoundary(i) && g.houseViable(i, h) {
			continue
		}
		c.wave.Clear(h)
		changed = true
	}
	return changed
}

// houseViable returns if house tile h could still stand at interior
// cell i: some terrain category must remain shareable by all 8
// neighbours, & the 4 orthogonal neighbours must each hold a tile of
// that category the house itself can sit against. Without the second
// condition, placing the house narrows its orthogonal neighbours to the
// house's own elevation band & can strand the neighbourhood with no
// shared category left.
func (g *Grid) houseViable(i, h int) bool {
	for _, cat := range terrainCategories {
		ok := true
		for _, n := range g.moore(i) {
			if !g.supportsTerrain(n, cat) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, n := range g.cardinal(i) {
			if !g.supportsSeat(n, cat, h) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// enforceHouse narrows the unresolved neighbours of a collapsed house so
// the whole neighbourhood converges on a single shared terrain category,
// chosen at random among those every neighbour still supports. Returns
// the neighbours whose sets changed.
//
// Without this the uniformity rule only guards the house *possibility*:
// once the house itself is placed, its neighbours could still drift into
// different categories. Pinning them keeps narrowing monotone & makes
// placed houses stay legal. Re-runs are cheap: once pinned, the chosen
// category is the only viable one left.
func (g *Grid) enforceHouse(h int) []int {
	cats := g.viableCategories(h)
	cat := Terrain("")
	if len(cats) > 0 {
		cat = cats[g.rng.Intn(len(cats))]
	}

	changed := []int{}
	for _, n := range g.moore(h) {
		nc := g.cells[n]
		if nc.collapsed {
			continue
		}

		ch := false
		nc.wave.Each(func(t int) {
			if tileset[t].Terrain != cat {
				nc.wave.Clear(t)
				ch = true
			}
		})
		if !ch {
			continue
		}

		if t, ok := nc.wave.Single(); ok {
			g.resolve(n, t)
		}
		changed = append(changed, n)
	}
	return changed
}

// propagate pushes the consequences of the seed cells' changed
// possibility sets outward until nothing more narrows. Returns every
// cell touched (seeds included), ascending, for the animation layer.
//
// Cells whose sets empty out are left that way; the next selection scan
// notices the zero entropy & surfaces the contradiction.
func (g *Grid) propagate(seeds []int) []int {
	work := append([]int{}, seeds...)
	touched := map[int]bool{}
	for _, i := range seeds {
		touched[i] = true
	}

	push := func(n int) {
		touched[n] = true
		work = append(work, n)
	}

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		// cardinal pass: re-check orthogonal neighbours against
		// whatever is still possible here
		for _, n := range g.cardinal(cur) {
			nc := g.cells[n]
			if nc.collapsed {
				continue
			}
			if !g.narrow(cur, n) {
				continue
			}
			if t, ok := nc.wave.Single(); ok {
				g.resolve(n, t) // forced collapse, reported via Propagate only
			}
			push(n)
		}

		// house pass: our change may have killed (or pinned) house
		// prospects anywhere in the surrounding 8
		for _, n := range g.moore(cur) {
			nc := g.cells[n]
			if nc.collapsed {
				if tileset[nc.tile].Terrain == House {
					for _, m := range g.enforceHouse(n) {
						push(m)
					}
				}
				continue
			}
			if !g.applyHouseRule(n) {
				continue
			}
			if t, ok := nc.wave.Single(); ok {
				g.resolve(n, t)
			}
			push(n)
		}

		// a freshly placed house pins its own surroundings too
		if c := g.cells[cur]; c.collapsed && tileset[c.tile].Terrain == House {
			for _, m := range g.enforceHouse(cur) {
				push(m)
			}
		}
	}

	out := make([]int, 0, len(touched))
	for i := range touched {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// outcome of a selection scan
type pick int

const (
	pickCell pick = iota
	pickSolved
	pickContradiction
)

// nextCell scans uncollapsed cells in row-major order & chooses the next
// collapse target: uniformly at random among the cells tied at minimum
// entropy. The first zero-entropy cell encountered short-circuits the
// scan as a contradiction.
func (g *Grid) nextCell() (int, pick) {
	min := len(tileset) + 1
	ties := []int{}
	found := false

	for i, c := range g.cells {
		if c.collapsed {
			continue
		}
		found = true

		n := c.wave.Count()
		if n == 0 {
			return i, pickContradiction
		}
		if n < min {
			min = n
			ties = ties[:0]
		}
		if n == min {
			ties = append(ties, i)
		}
	}

	if !found {
		return -1, pickSolved
	}
	return ties[g.rng.Intn(len(ties))], pickCell
}
