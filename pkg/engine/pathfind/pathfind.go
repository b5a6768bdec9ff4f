// Package pathfind finds low-cost 8-directional paths over a passability grid.
//
// The search is a best-first variant of A*. Each cell is expanded at most once
// and is never reopened after it has been popped, so the result is optimal only
// when the heuristic does not overestimate the remaining cost. The default
// Roguelike heuristic satisfies that for the 10/14 step costs used here.
//
// A PathFinder owns per-call scratch buffers and is not safe for concurrent use.
// Separate instances share nothing.
package pathfind

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/zyedidia/generic/heap"

	"roguecore/pkg/engine/world"
)

// Step costs in internal units. A diagonal step approximates 10*sqrt(2).
const (
	OrthogonalCost uint = 10
	DiagonalCost   uint = 14

	// CostScale converts orthogonal steps to internal cost units.
	CostScale uint = 10
)

// Unbounded is the default maximum path cost.
const Unbounded uint = math.MaxUint

// ErrInvalidArgument is returned for bad construction parameters and for
// start or end points outside the grid.
var ErrInvalidArgument = errors.New("invalid argument")

// Predicate reports whether a cell can be entered. It is consulted on every
// search and must reflect the map as it is at call time.
type Predicate func(world.Point) bool

type record struct {
	parent  world.Point
	cost    uint
	visited bool
}

type openNode struct {
	pos   world.Point
	score uint
}

func lessScore(a, b openNode) bool {
	return a.score < b.score
}

// PathFinder searches a fixed-size grid for paths between two cells.
type PathFinder struct {
	width      int
	height     int
	isPassable Predicate
	heuristic  Heuristic
	maxCost    uint

	cells []record
	open  *heap.Heap[openNode]
}

// New creates a path finder for a width x height grid.
func New(width, height int, isPassable Predicate) (*PathFinder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	if isPassable == nil {
		return nil, fmt.Errorf("%w: nil passability predicate", ErrInvalidArgument)
	}

	return &PathFinder{
		width:      width,
		height:     height,
		isPassable: isPassable,
		heuristic:  Roguelike,
		maxCost:    Unbounded,
		cells:      make([]record, width*height),
		open:       heap.New(lessScore),
	}, nil
}

// SetMaxCost bounds the search to paths cheaper than steps orthogonal moves.
// A path costing exactly steps*CostScale or more is not found.
func (pf *PathFinder) SetMaxCost(steps uint) {
	if steps > Unbounded/CostScale {
		pf.maxCost = Unbounded
		return
	}
	pf.maxCost = steps * CostScale
}

// ResetMaxCost removes the cost bound.
func (pf *PathFinder) ResetMaxCost() {
	pf.maxCost = Unbounded
}

// MaxCost returns the current bound in internal cost units.
func (pf *PathFinder) MaxCost() uint {
	return pf.maxCost
}

// SetHeuristic replaces the remaining-cost estimate. nil restores Roguelike.
// Cells are expanded at most once, so an estimate that overshoots the true
// remaining cost may yield longer paths.
func (pf *PathFinder) SetHeuristic(h Heuristic) {
	if h == nil {
		h = Roguelike
	}
	pf.heuristic = h
}

// Width returns the grid width the finder was built for
func (pf *PathFinder) Width() int { return pf.width }

// Height returns the grid height the finder was built for
func (pf *PathFinder) Height() int { return pf.height }

// FindPath returns a path from start to end inclusive, ordered start first.
//
// The start cell is never tested against the predicate; the end cell must be
// passable. A nil path with a nil error means no path exists under the
// current cost bound. Out-of-bounds endpoints fail with ErrInvalidArgument.
func (pf *PathFinder) FindPath(start, end world.Point) ([]world.Point, error) {
	if !pf.isInBounds(start) {
		return nil, fmt.Errorf("%w: start %v outside %dx%d grid", ErrInvalidArgument, start, pf.width, pf.height)
	}
	if !pf.isInBounds(end) {
		return nil, fmt.Errorf("%w: end %v outside %dx%d grid", ErrInvalidArgument, end, pf.width, pf.height)
	}
	if start == end {
		return []world.Point{start}, nil
	}

	pf.clear()
	pf.open.Push(openNode{pos: start})
	pf.cell(start).cost = 0

	for pf.open.Size() > 0 {
		node, _ := pf.open.Pop()
		current := node.pos

		if current == end {
			return pf.reconstruct(start, end), nil
		}

		currentCell := pf.cell(current)
		if currentCell.visited {
			continue
		}
		currentCell.visited = true

		for _, dir := range world.AllDirections() {
			next := current.Add(dir.Delta())

			if !pf.isInBounds(next) || !pf.isPassable(next) {
				continue
			}

			nextCell := pf.cell(next)
			if nextCell.visited {
				continue
			}

			newCost := currentCell.cost + stepCost(dir)
			if newCost < nextCell.cost {
				pf.open.Push(openNode{pos: next, score: newCost + pf.heuristic(next, end)})
				nextCell.cost = newCost
				nextCell.parent = current
			}
		}
	}

	return nil, nil
}

// Cost returns the step cost of a contiguous path in internal units.
func Cost(path []world.Point) uint {
	var total uint
	for i := 1; i < len(path); i++ {
		d := path[i].Sub(path[i-1])
		if d.X != 0 && d.Y != 0 {
			total += DiagonalCost
		} else {
			total += OrthogonalCost
		}
	}
	return total
}

func stepCost(dir world.Direction) uint {
	if dir.IsDiagonal() {
		return DiagonalCost
	}
	return OrthogonalCost
}

func (pf *PathFinder) reconstruct(start, end world.Point) []world.Point {
	path := []world.Point{}
	for current := end; current != start; current = pf.cell(current).parent {
		path = append(path, current)
	}
	path = append(path, start)
	slices.Reverse(path)
	return path
}

func (pf *PathFinder) clear() {
	pf.open = heap.New(lessScore)
	for i := range pf.cells {
		pf.cells[i] = record{cost: pf.maxCost}
	}
}

func (pf *PathFinder) cell(p world.Point) *record {
	return &pf.cells[p.X+p.Y*pf.width]
}

func (pf *PathFinder) isInBounds(p world.Point) bool {
	return p.X >= 0 && p.X < pf.width && p.Y >= 0 && p.Y < pf.height
}
