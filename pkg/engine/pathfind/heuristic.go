package pathfind

import (
	"fmt"
	"math"
	"strings"

	g "github.com/zyedidia/generic"

	"roguecore/pkg/engine/world"
)

// Heuristic estimates the remaining cost between two cells in internal units.
type Heuristic func(from, to world.Point) uint

// Manhattan is 10 * (|dx| + |dy|). It overestimates when diagonal moves are allowed.
func Manhattan(from, to world.Point) uint {
	dx, dy := absDelta(from, to)
	return CostScale * uint(dx+dy)
}

// Euclidean is 10 * the straight-line distance, truncated.
func Euclidean(from, to world.Point) uint {
	dx, dy := absDelta(from, to)
	return uint(float64(CostScale) * math.Sqrt(float64(dx*dx+dy*dy)))
}

// Octagonal is 10 * (|dx| + |dy|) - 6 * min(|dx|, |dy|), the exact 10/14 cost on an empty grid.
func Octagonal(from, to world.Point) uint {
	dx, dy := absDelta(from, to)
	return CostScale*uint(dx+dy) - 6*uint(g.Min(dx, dy))
}

// Roguelike is 10 * max(|dx|, |dy|), treating diagonal steps as orthogonal.
func Roguelike(from, to world.Point) uint {
	dx, dy := absDelta(from, to)
	return CostScale * uint(g.Max(dx, dy))
}

var heuristics = map[string]Heuristic{
	"manhattan": Manhattan,
	"euclidean": Euclidean,
	"octagonal": Octagonal,
	"roguelike": Roguelike,
}

// HeuristicNames lists the names accepted by HeuristicByName
func HeuristicNames() []string {
	return []string{"manhattan", "euclidean", "octagonal", "roguelike"}
}

// HeuristicByName looks a heuristic up by its case-insensitive name
func HeuristicByName(name string) (Heuristic, error) {
	h, ok := heuristics[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown heuristic %q (want one of %s)",
			ErrInvalidArgument, name, strings.Join(HeuristicNames(), ", "))
	}
	return h, nil
}

func absDelta(from, to world.Point) (int, int) {
	d := to.Sub(from)
	return abs(d.X), abs(d.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
