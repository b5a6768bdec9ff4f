// Package fov computes which grid cells are visible from a point using
// octant-based shadow casting, and remembers every cell ever seen.
//
// Each of the eight octants is scanned row by row outward from the origin.
// Opaque cells add their slope range to a per-octant shadow line; later cells
// whose range is wholly inside a shadow are hidden. The scan order keeps
// occluder projections monotonic, which the containment test relies on.
//
// A Field is not safe for concurrent use.
package fov

import (
	"errors"
	"fmt"

	"roguecore/pkg/engine/world"
)

// ErrInvalidArgument is returned for bad construction parameters, an origin
// outside the grid, or an explored snapshot of the wrong size.
var ErrInvalidArgument = errors.New("invalid argument")

// Predicate reports whether a cell lets sight through. It is read fresh on
// every Compute.
type Predicate func(world.Point) bool

// octant maps canonical (row, col) coordinates onto the grid.
type octant struct {
	rowInc world.Point
	colInc world.Point
}

var octants = [8]octant{
	{rowInc: world.Pt(0, -1), colInc: world.Pt(1, 0)},
	{rowInc: world.Pt(1, 0), colInc: world.Pt(0, -1)},
	{rowInc: world.Pt(1, 0), colInc: world.Pt(0, 1)},
	{rowInc: world.Pt(0, 1), colInc: world.Pt(1, 0)},
	{rowInc: world.Pt(0, 1), colInc: world.Pt(-1, 0)},
	{rowInc: world.Pt(-1, 0), colInc: world.Pt(0, 1)},
	{rowInc: world.Pt(-1, 0), colInc: world.Pt(0, -1)},
	{rowInc: world.Pt(0, -1), colInc: world.Pt(-1, 0)},
}

// Field holds the visible and explored sets for one grid.
type Field struct {
	width         int
	height        int
	isTransparent Predicate

	visible  []bool
	explored []bool
	shadows  shadowLine
}

// New creates an empty field for a width x height grid.
func New(width, height int, isTransparent Predicate) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	if isTransparent == nil {
		return nil, fmt.Errorf("%w: nil transparency predicate", ErrInvalidArgument)
	}

	return &Field{
		width:         width,
		height:        height,
		isTransparent: isTransparent,
		visible:       make([]bool, width*height),
		explored:      make([]bool, width*height),
	}, nil
}

// Width returns the grid width
func (f *Field) Width() int { return f.width }

// Height returns the grid height
func (f *Field) Height() int { return f.height }

// Clear hides every cell. Explored cells stay explored.
func (f *Field) Clear() {
	clear(f.visible)
}

// Compute marks the cells visible from origin within a circular radius.
// It adds to the current visible set; call Clear first for a fresh view.
// A negative radius does nothing.
func (f *Field) Compute(origin world.Point, radius int) error {
	if !f.isInBounds(origin) {
		return fmt.Errorf("%w: origin %v outside %dx%d grid", ErrInvalidArgument, origin, f.width, f.height)
	}
	if radius < 0 {
		return nil
	}

	f.setVisible(origin)

	for _, o := range octants {
		f.refreshOctant(o, origin, radius)
	}
	return nil
}

func (f *Field) refreshOctant(o octant, origin world.Point, radius int) {
	f.shadows.reset()
	radiusSquared := radius * radius

	for row := 1; row <= radius; row++ {
		pos := origin.Add(o.rowInc.Mul(row))
		if !f.isInBounds(pos) {
			return
		}

		for col := 0; col <= row; col++ {
			// Circular field of view
			if pos.Sub(origin).LengthSquared() > radiusSquared {
				break
			}

			projection := projectTile(row, col)
			if !f.shadows.isInShadow(projection) {
				f.setVisible(pos)

				if !f.isTransparent(pos) && f.shadows.add(projection) {
					return
				}
			}

			pos = pos.Add(o.colInc)
			if !f.isInBounds(pos) {
				break
			}
		}
	}
}

// IsVisible reports whether p was visible in the latest Compute. False out of bounds.
func (f *Field) IsVisible(p world.Point) bool {
	return f.isInBounds(p) && f.visible[f.index(p)]
}

// IsExplored reports whether p has ever been visible. False out of bounds.
func (f *Field) IsExplored(p world.Point) bool {
	return f.isInBounds(p) && f.explored[f.index(p)]
}

// VisibleCount returns the number of visible cells
func (f *Field) VisibleCount() int {
	return count(f.visible)
}

// ExploredCount returns the number of explored cells
func (f *Field) ExploredCount() int {
	return count(f.explored)
}

// ForEachVisible calls fn for every visible cell in row-major order
func (f *Field) ForEachVisible(fn func(world.Point)) {
	for i, v := range f.visible {
		if v {
			fn(world.Pt(i%f.width, i/f.width))
		}
	}
}

// Explored returns a row-major copy of the explored set, for saving with a level.
func (f *Field) Explored() []bool {
	out := make([]bool, len(f.explored))
	copy(out, f.explored)
	return out
}

// LoadExplored replaces the explored set, e.g. when returning to a level.
// Cells currently visible stay explored. A nil slice resets exploration.
func (f *Field) LoadExplored(explored []bool) error {
	if explored == nil {
		f.ResetExplored()
		return nil
	}
	if len(explored) != len(f.explored) {
		return fmt.Errorf("%w: explored has %d cells, want %d", ErrInvalidArgument, len(explored), len(f.explored))
	}
	for i := range f.explored {
		f.explored[i] = explored[i] || f.visible[i]
	}
	return nil
}

// ResetExplored forgets every explored cell that is not currently visible.
func (f *Field) ResetExplored() {
	copy(f.explored, f.visible)
}

func (f *Field) setVisible(p world.Point) {
	i := f.index(p)
	f.visible[i] = true
	f.explored[i] = true
}

func (f *Field) index(p world.Point) int {
	return p.X + p.Y*f.width
}

func (f *Field) isInBounds(p world.Point) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

func count(cells []bool) int {
	n := 0
	for _, v := range cells {
		if v {
			n++
		}
	}
	return n
}
