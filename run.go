package superposition

// Event is a single step produced by a solver run. Exactly one of
// Collapse, Propagate, Contradiction or Done, carrying only the fields
// an animation layer needs.
type Event interface {
	event()
}

// Collapse records a cell explicitly resolved by weighted sampling.
// Cells forced to a single tile during propagation are never reported
// here - they show up inside the following Propagate instead.
type Collapse struct {
	Cell int
	Tile int
}

// Propagate records one completed propagation pass. Cells lists every
// cell whose possibility set changed, ascending, including any that were
// forced all the way down to a single tile.
type Propagate struct {
	Cells []int
}

// Contradiction records a cell left with zero possible tiles; the run is
// over & the grid is unrecoverable. Cell is -1 when the empty set was
// found during selection rather than at a specific collapse attempt.
type Contradiction struct {
	Cell int
}

// Done indicates every cell collapsed without contradiction.
type Done struct{}

func (Collapse) event()      {}
func (Propagate) event()     {}
func (Contradiction) event() {}
func (Done) event()          {}

// run phases
const (
	phaseCollapse = iota
	phasePropagate
	phaseSelect
	phaseHalt
)

// Run steps a single solve over its grid, one event at a time. The
// caller controls pacing by deciding when to ask for the next event;
// the engine holds no timers & nothing needs tearing down if the caller
// simply stops asking. One run at a time per grid.
type Run struct {
	grid  *Grid
	phase int
	cell  int
}

// Run starts a solver run collapsing outward from the given cell, which
// must be unresolved.
func (g *Grid) Run(start int) (*Run, error) {
	if start < 0 || start >= len(g.cells) {
		return nil, ErrCellOutOfRange
	}
	if g.cells[start].collapsed {
		return nil, ErrCellCollapsed
	}
	return &Run{grid: g, phase: phaseCollapse, cell: start}, nil
}

// Next produces the next event of the run. It returns false forever once
// a terminal event (Done or Contradiction) has been handed out.
func (r *Run) Next() (Event, bool) {
	for {
		switch r.phase {
		case phaseCollapse:
			tile, ok := r.grid.collapse(r.cell)
			if !ok {
				r.phase = phaseHalt
				return Contradiction{Cell: r.cell}, true
			}
			r.phase = phasePropagate
			return Collapse{Cell: r.cell, Tile: tile}, true

		case phasePropagate:
			r.phase = phaseSelect
			return Propagate{Cells: r.grid.propagate([]int{r.cell})}, true

		case phaseSelect:
			next, res := r.grid.nextCell()
			if res == pickSolved {
				r.phase = phaseHalt
				return Done{}, true
			}
			if res == pickContradiction {
				r.phase = phaseHalt
				return Contradiction{Cell: -1}, true
			}
			r.cell = next
			r.phase = phaseCollapse // loop round & emit the Collapse

		default:
			return nil, false
		}
	}
}
