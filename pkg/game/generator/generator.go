// Package generator builds random levels for a given dungeon depth.
//
// Generators carve floor out of a wall-filled grid, then hand the result to
// level.FromMap so generated and hand-written levels pass the same checks.
package generator

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
)

// LevelGenerator is an interface for map generation algorithms
type LevelGenerator interface {
	Generate(depth int) (*level.Level, error)
	Name() string
}

// Names lists the generators New accepts
func Names() []string {
	return []string{"bsp", "walker"}
}

// New returns the named generator seeded with seed.
func New(name string, seed int64) (LevelGenerator, error) {
	rng := rand.New(rand.NewSource(seed))
	switch name {
	case "", "bsp":
		return &BSPGenerator{rng: rng}, nil
	case "walker":
		return &LineWalkerGenerator{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q (want one of %v)", name, Names())
	}
}

// filledGrid returns a width x height grid of walls
func filledGrid(width, height int) *world.Grid {
	grid := world.NewGrid(width, height)
	grid.ForEachCell(func(c *world.Cell) {
		c.Tile = world.TileWall
	})
	return grid
}

// isInterior reports whether p is inside the perimeter wall
func isInterior(grid *world.Grid, p world.Point) bool {
	return p.X > 0 && p.X < grid.Width()-1 && p.Y > 0 && p.Y < grid.Height()-1
}

// distancesFrom returns the step count from start to every cell reachable
// through passable cells, moving in eight directions.
func distancesFrom(grid *world.Grid, start world.Point) map[world.Point]int {
	dist := map[world.Point]int{start: 0}
	visited := mapset.New[world.Point]()
	visited.Put(start)
	queue := []world.Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range world.AllDirections() {
			next := current.Add(dir.Delta())
			if visited.Has(next) || !grid.IsPassable(next) {
				continue
			}
			visited.Put(next)
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// populate places the player at start and up to monsterCount monsters on
// candidate floor cells, preferring those far from the player, then builds
// the level.
func populate(rng *rand.Rand, grid *world.Grid, start world.Point, candidates []world.Point, depth int) (*level.Level, error) {
	th := themeFor(depth)
	dist := distancesFrom(grid, start)

	// Monsters start out of reach of a first-turn chase
	minDistance := 3 + depth
	var far []world.Point
	for _, p := range candidates {
		d, ok := dist[p]
		if !ok || p == start || grid.Cell(p).Tile != world.TileFloor {
			continue
		}
		if d >= minDistance {
			far = append(far, p)
		}
	}
	// Sort for a stable order before shuffling so equal seeds give equal levels
	slices.SortFunc(far, func(a, b world.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	far = slices.Compact(far)
	rng.Shuffle(len(far), func(i, j int) { far[i], far[j] = far[j], far[i] })

	glyphs := th.glyphs()
	rows := make([][]rune, grid.Height())
	for y, row := range grid.Rows() {
		rows[y] = []rune(row)
	}
	rows[start.Y][start.X] = level.PlayerGlyph

	count := min(monsterCount(depth), len(far))
	for i := 0; i < count; i++ {
		p := far[i]
		rows[p.Y][p.X] = glyphs[rng.Intn(len(glyphs))]
	}

	lines := make([]string, len(rows))
	for y, r := range rows {
		lines[y] = string(r)
	}
	return level.FromMap(th.levelName(rng), lines, th.roster)
}

// monsterCount scales the number of monsters with depth
func monsterCount(depth int) int {
	return min(2+depth, 12)
}
