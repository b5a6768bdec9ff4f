package generator

import (
	"math/rand"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
)

// LineWalkerGenerator generates cave-like maps by walking lines in random
// directions with branching probability
type LineWalkerGenerator struct {
	rng *rand.Rand
}

// Name returns the name of this generator
func (g *LineWalkerGenerator) Name() string {
	return "Line Walker"
}

// Generate creates a new level for the given depth
func (g *LineWalkerGenerator) Generate(depth int) (*level.Level, error) {
	depth = max(depth, 1)

	// Scale grid size with depth (add 2 extra for perimeter walls)
	// Depth 1: 22x12 (20x10 playable)
	width := min(18+depth*4, 100)
	height := min(10+depth*2, 60)

	grid := filledGrid(width, height)

	// Start in the center (which is always in playable area)
	start := world.Pt(width/2, height/2)

	// Scale branch probability with depth (more complex layouts)
	// Depth 1: 0.28, Depth 10: 0.55
	branchProb := min(float32(0.25)+float32(depth)*0.03, 0.65)

	// Scale corridor length with depth
	// Depth 1: 2-4, Depth 10: 4-9
	minDist := 2 + depth/4
	maxDist := 4 + depth/2

	// Build main corridors in all four directions
	for _, dir := range world.CardinalDirections() {
		g.buildLine(grid, start, dir, branchProb, minDist, maxDist)
	}

	// Add extra corridors at greater depths for more complexity
	for i := 0; i < depth/2; i++ {
		// Start from a random position near center
		p := start.Add(world.Pt(g.rng.Intn(5)-2, g.rng.Intn(5)-2))
		if isInterior(grid, p) && grid.IsPassable(p) {
			g.buildLine(grid, p, g.randomDirection(), branchProb, minDist, maxDist)
		}
	}

	var candidates []world.Point
	grid.ForEachCell(func(c *world.Cell) {
		if c.Tile == world.TileFloor {
			candidates = append(candidates, c.Pos)
		}
	})

	return populate(g.rng, grid, start, candidates, depth)
}

// randomDirection returns a random cardinal direction
func (g *LineWalkerGenerator) randomDirection() world.Direction {
	dirs := world.CardinalDirections()
	return dirs[g.rng.Intn(len(dirs))]
}

// buildLine carves a line of floor from p in direction dir, branching as it goes.
// Floor is only carved inside the perimeter. Returns where the line ended.
func (g *LineWalkerGenerator) buildLine(grid *world.Grid, p world.Point, dir world.Direction, branchProbability float32, minDist, maxDist int) world.Point {
	if !dir.IsValid() {
		dir = g.randomDirection()
	}
	delta := dir.Delta()
	distance := minDist + g.rng.Intn(maxDist-minDist+1)

	for segment := 0; segment < distance; segment++ {
		if isInterior(grid, p) {
			grid.SetTile(p, world.TileFloor)
		}

		// If the next cell would be outside playable area, stop here
		if !isInterior(grid, p.Add(delta)) {
			return p
		}

		if g.rng.Float32() < branchProbability {
			g.buildLine(grid, p, g.randomDirection(), branchProbability-.1, minDist, maxDist)
		}

		p = p.Add(delta)
	}

	if isInterior(grid, p) {
		grid.SetTile(p, world.TileFloor)
	}
	return p
}
