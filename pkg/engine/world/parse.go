package world

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Markers maps non-terrain map symbols (player, monsters) to the positions
// where they appear, in row-major order.
type Markers map[rune][]Point

// ParseGrid builds a grid from ASCII rows.
//
//	.  floor
//	#  wall
//	+  closed door
//	'  open door
//
// Any other non-space rune is a floor cell whose position is recorded in the
// returned markers. All rows must have the same rune count.
func ParseGrid(rows []string) (*Grid, Markers, error) {
	if len(rows) == 0 {
		return nil, nil, errors.New("map has no rows")
	}

	width := utf8.RuneCountInString(rows[0])
	if width == 0 {
		return nil, nil, errors.New("map rows are empty")
	}

	var errs []string
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			errs = append(errs, fmt.Sprintf("row %d has %d columns, want %d", y, n, width))
		}
	}
	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("ragged map: %s", strings.Join(errs, "; "))
	}

	g := NewGrid(width, len(rows))
	markers := make(Markers)

	for y, row := range rows {
		x := 0
		for _, r := range row {
			p := Pt(x, y)
			switch r {
			case '.':
				g.SetTile(p, TileFloor)
			case '#':
				g.SetTile(p, TileWall)
			case '+':
				g.SetTile(p, TileDoorClosed)
			case '\'':
				g.SetTile(p, TileDoorOpen)
			case ' ':
				return nil, nil, fmt.Errorf("blank cell at %v", p)
			default:
				g.SetTile(p, TileFloor)
				markers[r] = append(markers[r], p)
			}
			x++
		}
	}

	return g, markers, nil
}

// SplitMap splits a multi-line map literal into rows, dropping a trailing
// newline and surrounding blank lines.
func SplitMap(s string) []string {
	s = strings.Trim(s, "\n")
	if s == "" {
		return nil
	}
	rows := strings.Split(s, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, "\r")
	}
	return rows
}
