package world

import (
	"strings"
	"testing"
)

func TestNewGrid_PanicsOnInvalidDimensions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGrid(0, 3) did not panic")
		}
	}()
	NewGrid(0, 3)
}

func TestGrid_IsInBounds(t *testing.T) {
	g := NewGrid(4, 3)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(3, 2), true},
		{Pt(4, 2), false},
		{Pt(3, 3), false},
		{Pt(-1, 0), false},
		{Pt(0, -1), false},
	}
	for _, tt := range tests {
		if got := g.IsInBounds(tt.p); got != tt.want {
			t.Errorf("IsInBounds(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGrid_CellOutOfBoundsIsNil(t *testing.T) {
	g := NewGrid(2, 2)
	if c := g.Cell(Pt(2, 0)); c != nil {
		t.Errorf("Cell((2,0)) = %v, want nil", c)
	}
	if g.IsPassable(Pt(-1, 0)) {
		t.Error("IsPassable out of bounds = true, want false")
	}
	if g.IsTransparent(Pt(0, 5)) {
		t.Error("IsTransparent out of bounds = true, want false")
	}
}

func TestGrid_TileFlags(t *testing.T) {
	tests := []struct {
		tile        Tile
		passable    bool
		transparent bool
	}{
		{TileFloor, true, true},
		{TileWall, false, false},
		{TileDoorClosed, true, false},
		{TileDoorOpen, true, true},
	}
	g := NewGrid(1, 1)
	p := Pt(0, 0)
	for _, tt := range tests {
		t.Run(tt.tile.String(), func(t *testing.T) {
			g.SetTile(p, tt.tile)
			if got := g.IsPassable(p); got != tt.passable {
				t.Errorf("IsPassable = %v, want %v", got, tt.passable)
			}
			if got := g.IsTransparent(p); got != tt.transparent {
				t.Errorf("IsTransparent = %v, want %v", got, tt.transparent)
			}
		})
	}
}

func TestGrid_Doors(t *testing.T) {
	g := NewGrid(3, 1)
	door := Pt(1, 0)
	g.SetTile(door, TileDoorClosed)

	if !g.OpenDoor(door) {
		t.Fatal("OpenDoor on closed door = false, want true")
	}
	if g.OpenDoor(door) {
		t.Error("OpenDoor on open door = true, want false")
	}
	if !g.IsTransparent(door) {
		t.Error("open door is not transparent")
	}
	if !g.CloseDoor(door) {
		t.Error("CloseDoor on open door = false, want true")
	}
	if g.CloseDoor(Pt(0, 0)) {
		t.Error("CloseDoor on floor = true, want false")
	}
	if !g.Cell(door).IsDoor() {
		t.Error("IsDoor = false, want true")
	}
}

func TestParseGrid(t *testing.T) {
	g, markers, err := ParseGrid([]string{
		"#####",
		"#@.g#",
		"#+'g#",
		"#####",
	})
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.Width() != 5 || g.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", g.Width(), g.Height())
	}
	if got := markers['@']; len(got) != 1 || got[0] != Pt(1, 1) {
		t.Errorf("markers['@'] = %v, want [(1,1)]", got)
	}
	if got := markers['g']; len(got) != 2 || got[0] != Pt(3, 1) || got[1] != Pt(3, 2) {
		t.Errorf("markers['g'] = %v, want [(3,1) (3,2)]", got)
	}
	if got := g.Cell(Pt(1, 2)).Tile; got != TileDoorClosed {
		t.Errorf("tile at (1,2) = %v, want DoorClosed", got)
	}
	if got := g.Cell(Pt(2, 2)).Tile; got != TileDoorOpen {
		t.Errorf("tile at (2,2) = %v, want DoorOpen", got)
	}
	if !g.IsPassable(Pt(1, 1)) {
		t.Error("marker cell is not passable floor")
	}

	want := "#####\n#...#\n#+'.#\n#####"
	if got := strings.Join(g.Rows(), "\n"); got != want {
		t.Errorf("Rows() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"...", ".."}},
		{"blank cell", []string{". ."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseGrid(tt.rows); err == nil {
				t.Errorf("ParseGrid(%q) error = nil, want error", tt.rows)
			}
		})
	}
}

func TestSplitMap(t *testing.T) {
	got := SplitMap("\n##\n#.\r\n")
	if len(got) != 2 || got[0] != "##" || got[1] != "#." {
		t.Errorf("SplitMap = %q, want [\"##\" \"#.\"]", got)
	}
	if SplitMap("\n\n") != nil {
		t.Error("SplitMap of blank input is not nil")
	}
}

func TestGrid_Validate(t *testing.T) {
	g := NewGrid(2, 1)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	g.SetTile(Pt(0, 0), TileWall)
	g.SetTile(Pt(1, 0), TileWall)
	if err := g.Validate(); err == nil {
		t.Error("Validate() on all-wall grid = nil, want error")
	}
}
