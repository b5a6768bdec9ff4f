package world

import (
	"errors"
	"fmt"
)

// Grid represents the game map as a dense row-major array of cells
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid creates a new grid of floor cells with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.height = height
	g.cells = make([]Cell, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[x+y*width] = Cell{Pos: Pt(x, y), Tile: TileFloor}
		}
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsInBounds checks if a position is within grid bounds
func (g *Grid) IsInBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Cell returns the cell at the given position, or nil if out of bounds
func (g *Grid) Cell(p Point) *Cell {
	if !g.IsInBounds(p) {
		return nil
	}
	return &g.cells[p.X+p.Y*g.width]
}

// SetTile changes the tile at p. Returns false if out of bounds.
func (g *Grid) SetTile(p Point, t Tile) bool {
	cell := g.Cell(p)
	if cell == nil {
		return false
	}
	cell.Tile = t
	return true
}

// IsPassable reports whether p is in bounds and can be stood on
func (g *Grid) IsPassable(p Point) bool {
	return g.Cell(p).Passable()
}

// IsTransparent reports whether p is in bounds and lets sight through
func (g *Grid) IsTransparent(p Point) bool {
	return g.Cell(p).Transparent()
}

// OpenDoor opens a closed door at p. Returns true if the tile changed.
func (g *Grid) OpenDoor(p Point) bool {
	cell := g.Cell(p)
	if cell == nil || cell.Tile != TileDoorClosed {
		return false
	}
	cell.Tile = TileDoorOpen
	return true
}

// CloseDoor closes an open door at p. Returns true if the tile changed.
func (g *Grid) CloseDoor(p Point) bool {
	cell := g.Cell(p)
	if cell == nil || cell.Tile != TileDoorOpen {
		return false
	}
	cell.Tile = TileDoorClosed
	return true
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(cell *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}

// CountTiles returns how many cells have the given tile kind
func (g *Grid) CountTiles(t Tile) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Tile == t {
			n++
		}
	}
	return n
}

// Validate checks the grid for structural problems
func (g *Grid) Validate() error {
	if g.width <= 0 || g.height <= 0 {
		return errors.New("grid has invalid dimensions")
	}
	if len(g.cells) != g.width*g.height {
		return fmt.Errorf("grid has %d cells, want %d", len(g.cells), g.width*g.height)
	}
	if g.CountTiles(TileWall) == len(g.cells) {
		return errors.New("grid has no passable cells")
	}
	return nil
}

// Rows renders the grid back to its ASCII form
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	line := make([]rune, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			line[x] = g.cells[x+y*g.width].Tile.Glyph()
		}
		rows[y] = string(line)
	}
	return rows
}
