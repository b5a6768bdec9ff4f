// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Tile is the terrain kind of a cell
type Tile int

// Tile kinds
const (
	TileFloor Tile = iota
	TileWall
	TileDoorClosed
	TileDoorOpen
)

// String returns the name of the tile kind
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "Floor"
	case TileWall:
		return "Wall"
	case TileDoorClosed:
		return "DoorClosed"
	case TileDoorOpen:
		return "DoorOpen"
	default:
		return "Unknown"
	}
}

// Glyph returns the ASCII map symbol for the tile kind
func (t Tile) Glyph() rune {
	switch t {
	case TileWall:
		return '#'
	case TileDoorClosed:
		return '+'
	case TileDoorOpen:
		return '\''
	default:
		return '.'
	}
}

// Passable reports whether actors may stand on the tile.
// Closed doors are passable: walking into one opens it.
func (t Tile) Passable() bool {
	return t != TileWall
}

// Transparent reports whether the tile lets sight through
func (t Tile) Transparent() bool {
	return t == TileFloor || t == TileDoorOpen
}

// Cell represents a single cell/tile in the grid.
type Cell struct {
	Pos  Point
	Tile Tile
}

// Passable reports whether actors may stand on the cell
func (c *Cell) Passable() bool {
	return c != nil && c.Tile.Passable()
}

// Transparent reports whether the cell lets sight through
func (c *Cell) Transparent() bool {
	return c != nil && c.Tile.Transparent()
}

// IsDoor returns true for open and closed doors
func (c *Cell) IsDoor() bool {
	return c != nil && (c.Tile == TileDoorClosed || c.Tile == TileDoorOpen)
}
