// Package level loads hand-authored maps and the player's exploration progress on them.
package level

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"roguecore/pkg/engine/world"
)

// PlayerGlyph marks the player's starting cell in a level map.
const PlayerGlyph = '@'

// MonsterSpawn places a named monster on the map.
type MonsterSpawn struct {
	Name  string
	Glyph rune
	Pos   world.Point
}

// Level is a loaded map together with its spawn points and the cells the
// player has already seen on it.
type Level struct {
	Name        string
	Grid        *world.Grid
	PlayerStart world.Point
	Monsters    []MonsterSpawn

	// FOVRange and MaxPathCost override the configured values when non-zero.
	FOVRange    int
	MaxPathCost uint

	// Explored is row-major, width*height entries, or nil when nothing is known.
	Explored []bool
}

// FromMap builds a level from map rows and a glyph-to-name monster table.
//
// Precondition: rows is a rectangular ASCII map holding exactly one '@'.
// Postcondition: Returns a validated Level or a non-nil error.
func FromMap(name string, rows []string, monsters map[rune]string) (*Level, error) {
	grid, markers, err := world.ParseGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}

	lvl := &Level{Name: name, Grid: grid}

	var errs []string
	switch starts := markers[PlayerGlyph]; len(starts) {
	case 0:
		errs = append(errs, "map has no player start '@'")
	case 1:
		lvl.PlayerStart = starts[0]
	default:
		errs = append(errs, fmt.Sprintf("map has %d player starts, want 1", len(starts)))
	}
	delete(markers, PlayerGlyph)

	glyphs := make([]rune, 0, len(markers))
	for glyph := range markers {
		glyphs = append(glyphs, glyph)
	}
	slices.Sort(glyphs)

	for _, glyph := range glyphs {
		monsterName, ok := monsters[glyph]
		if !ok {
			errs = append(errs, fmt.Sprintf("map glyph %q is not a declared monster", glyph))
			continue
		}
		for _, pos := range markers[glyph] {
			lvl.Monsters = append(lvl.Monsters, MonsterSpawn{Name: monsterName, Glyph: glyph, Pos: pos})
		}
	}
	// Row-major spawn order keeps turn order stable across loads.
	slices.SortStableFunc(lvl.Monsters, func(a, b MonsterSpawn) int {
		if c := cmp.Compare(a.Pos.Y, b.Pos.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.X, b.Pos.X)
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid level %q: %s", name, strings.Join(errs, "; "))
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Validate checks that the level is playable.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (l *Level) Validate() error {
	var errs []string
	if l.Grid == nil {
		return fmt.Errorf("invalid level %q: no grid", l.Name)
	}
	if err := l.Grid.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if !l.Grid.IsPassable(l.PlayerStart) {
		errs = append(errs, fmt.Sprintf("player start %v is not passable", l.PlayerStart))
	}
	for _, m := range l.Monsters {
		if !l.Grid.IsPassable(m.Pos) {
			errs = append(errs, fmt.Sprintf("monster %s at %v is not passable", m.Name, m.Pos))
		}
		if m.Pos == l.PlayerStart {
			errs = append(errs, fmt.Sprintf("monster %s spawns on the player", m.Name))
		}
	}
	if l.FOVRange < 0 {
		errs = append(errs, fmt.Sprintf("fov_range must be >= 0, got %d", l.FOVRange))
	}
	if l.Explored != nil && len(l.Explored) != l.Grid.Width()*l.Grid.Height() {
		errs = append(errs, fmt.Sprintf("explored has %d cells, want %d",
			len(l.Explored), l.Grid.Width()*l.Grid.Height()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid level %q: %s", l.Name, strings.Join(errs, "; "))
	}
	return nil
}

// ExploredCount returns how many cells of the level have been seen.
func (l *Level) ExploredCount() int {
	n := 0
	for _, seen := range l.Explored {
		if seen {
			n++
		}
	}
	return n
}
