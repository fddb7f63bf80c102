package superposition

import (
	"encoding/json"
	"image"
	"image/color"
	"io/ioutil"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how terrain categories should be coloured when a
// grid is rendered. Elevation shading is applied on top (higher ground &
// peaks render lighter).
type ColourScheme struct {
	Sea      color.Color
	Ground   color.Color
	Mountain color.Color
	House    color.Color

	// Unknown is used for cells that have not resolved yet
	Unknown color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Sea:      colornames.Steelblue,
		Ground:   colornames.Mediumseagreen,
		Mountain: colornames.Dimgray,
		House:    colornames.Firebrick,
		Unknown:  colornames.Whitesmoke,
	}
}

// colourFor returns the scheme colour for a tile, shaded by elevation.
func (s *ColourScheme) colourFor(t Tile) color.Color {
	switch t.Terrain {
	case Ground:
		return lighten(s.Ground, 0.35*float64(t.Elevation)/5)
	case Mountain:
		return lighten(s.Mountain, 0.5*float64(t.Elevation-6)/4)
	case House:
		return s.House
	}
	return s.Sea
}

// lighten blends c toward white by f, where 0 leaves c untouched.
func lighten(c color.Color, f float64) color.Color {
	r, g, b, _ := c.RGBA()
	blend := func(v uint32) uint8 {
		vv := float64(v >> 8)
		return uint8(vv + (255-vv)*f)
	}
	return color.RGBA{R: blend(r), G: blend(g), B: blend(b), A: 255}
}

// Image renders the grid at cellSize pixels per cell. Unresolved cells
// are painted with the scheme's Unknown colour, so partial grids (mid
// run, or after a contradiction) render fine too.
func (g *Grid) Image(scheme *ColourScheme, cellSize int) image.Image {
	if cellSize < 1 {
		cellSize = 1
	}

	ctx := gg.NewContext(g.width*cellSize, g.height*cellSize)
	ctx.SetColor(scheme.Unknown)
	ctx.Clear()

	for i, c := range g.cells {
		if !c.collapsed {
			continue
		}
		x, y := i%g.width, i/g.width
		ctx.SetColor(scheme.colourFor(tileset[c.tile]))
		ctx.DrawRectangle(float64(x*cellSize), float64(y*cellSize), float64(cellSize), float64(cellSize))
		ctx.Fill()
	}

	return ctx.Image()
}

// SavePNG renders the grid with the given scheme & writes it to disk.
func (g *Grid) SavePNG(fpath string, scheme *ColourScheme, cellSize int) error {
	ctx := gg.NewContextForImage(g.Image(scheme, cellSize))
	if err := ctx.SavePNG(fpath); err != nil {
		return errors.Wrap(err, "failed to write grid png")
	}
	return nil
}

// gridJSON is the serialised form of a grid.
type gridJSON struct {
	Width  int
	Height int
	Seed   int64

	// Tiles in row-major order; null where a cell never resolved
	Tiles []*Tile
}

// JSON returns the grid as json.
func (g *Grid) JSON() ([]byte, error) {
	out := &gridJSON{
		Width:  g.width,
		Height: g.height,
		Seed:   g.Seed,
		Tiles:  make([]*Tile, len(g.cells)),
	}
	for i, c := range g.cells {
		if !c.collapsed {
			continue
		}
		t := tileset[c.tile]
		out.Tiles[i] = &t
	}
	return json.Marshal(out)
}

// SaveJSON writes a json file to the given path.
func (g *Grid) SaveJSON(fpath string) error {
	data, err := g.JSON()
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(fpath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write grid json")
	}
	return nil
}
