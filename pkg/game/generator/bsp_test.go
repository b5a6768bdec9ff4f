// Package generator tests level generation: validity, connectivity, doors,
// monster placement and per-depth theming.
package generator

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
)

func generate(t *testing.T, name string, seed int64, depth int) *level.Level {
	t.Helper()
	gen, err := New(name, seed)
	if err != nil {
		t.Fatalf("New(%q) error: %v", name, err)
	}
	lvl, err := gen.Generate(depth)
	if err != nil {
		t.Fatalf("%s.Generate(%d) seed %d error: %v", gen.Name(), depth, seed, err)
	}
	return lvl
}

// checkLevel reports structural problems with a generated level.
func checkLevel(lvl *level.Level, depth int) []string {
	var problems []string
	grid := lvl.Grid

	if err := lvl.Validate(); err != nil {
		problems = append(problems, "invalid: "+err.Error())
	}

	grid.ForEachCell(func(c *world.Cell) {
		p := c.Pos
		edge := p.X == 0 || p.Y == 0 || p.X == grid.Width()-1 || p.Y == grid.Height()-1
		if edge && c.Tile != world.TileWall {
			problems = append(problems, "perimeter opening at "+p.String())
		}
	})

	dist := distancesFrom(grid, lvl.PlayerStart)
	passable := 0
	grid.ForEachCell(func(c *world.Cell) {
		if c.Passable() {
			passable++
		}
	})
	if len(dist) != passable {
		problems = append(problems, "unreachable floor")
	}

	if len(lvl.Monsters) > monsterCount(depth) {
		problems = append(problems, "too many monsters")
	}
	for _, m := range lvl.Monsters {
		if d := dist[m.Pos]; d < 3+depth {
			problems = append(problems, "monster too close at "+m.Pos.String())
		}
	}
	return problems
}

func TestGenerate_LevelsAreValid(t *testing.T) {
	for _, name := range Names() {
		for depth := 1; depth <= 4; depth++ {
			for seed := int64(1); seed <= 5; seed++ {
				lvl := generate(t, name, seed, depth)
				for _, p := range checkLevel(lvl, depth) {
					t.Errorf("%s depth %d seed %d: %s", name, depth, seed, p)
				}
			}
		}
	}
}

func TestGenerate_SameSeedSameLevel(t *testing.T) {
	for _, name := range Names() {
		a := generate(t, name, 42, 2)
		b := generate(t, name, 42, 2)
		if a.Name != b.Name {
			t.Errorf("%s: names differ: %q vs %q", name, a.Name, b.Name)
		}
		if strings.Join(a.Grid.Rows(), "\n") != strings.Join(b.Grid.Rows(), "\n") {
			t.Errorf("%s: same seed produced different maps", name)
		}
		if len(a.Monsters) != len(b.Monsters) {
			t.Errorf("%s: monster counts differ: %d vs %d", name, len(a.Monsters), len(b.Monsters))
		}
	}
}

func TestBSPGenerate_HasDoorsAndMonsters(t *testing.T) {
	doors, monsters := 0, 0
	for seed := int64(1); seed <= 10; seed++ {
		lvl := generate(t, "bsp", seed, 2)
		doors += lvl.Grid.CountTiles(world.TileDoorClosed)
		monsters += len(lvl.Monsters)
	}
	if doors == 0 {
		t.Error("no doors placed across ten BSP levels")
	}
	if monsters == 0 {
		t.Error("no monsters placed across ten BSP levels")
	}
}

func TestBSPGenerate_GrowsWithDepth(t *testing.T) {
	shallow := generate(t, "bsp", 1, 1)
	deep := generate(t, "bsp", 1, 5)
	if deep.Grid.Width() <= shallow.Grid.Width() || deep.Grid.Height() <= shallow.Grid.Height() {
		t.Errorf("depth 5 grid %dx%d not larger than depth 1 grid %dx%d",
			deep.Grid.Width(), deep.Grid.Height(), shallow.Grid.Width(), shallow.Grid.Height())
	}
}

func TestGenerate_ThemedByDepth(t *testing.T) {
	for depth := 1; depth <= len(themes)+1; depth++ {
		th := themeFor(depth)
		lvl := generate(t, "bsp", 9, depth)

		named := false
		for _, n := range th.names {
			if strings.HasSuffix(lvl.Name, n) {
				named = true
			}
		}
		if !named {
			t.Errorf("depth %d: name %q not from theme %v", depth, lvl.Name, th.names)
		}
		for _, m := range lvl.Monsters {
			if th.roster[m.Glyph] != m.Name {
				t.Errorf("depth %d: monster %q (%q) not in roster %v", depth, m.Name, m.Glyph, th.roster)
			}
		}
	}
}

func TestThemeFor_Cycles(t *testing.T) {
	if got, want := themeFor(len(themes)+1).names[0], themes[0].names[0]; got != want {
		t.Errorf("themeFor(%d) = %q, want %q", len(themes)+1, got, want)
	}
	if got, want := themeFor(0).names[0], themes[0].names[0]; got != want {
		t.Errorf("themeFor(0) = %q, want %q", got, want)
	}
}

func TestNew_UnknownGenerator(t *testing.T) {
	if _, err := New("maze", 1); err == nil {
		t.Error("New(\"maze\") succeeded, want error")
	}
}

func TestPropertyGeneratedLevelsAreValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom(Names()).Draw(t, "generator")
		seed := rapid.Int64().Draw(t, "seed")
		depth := rapid.IntRange(1, 6).Draw(t, "depth")

		gen, err := New(name, seed)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		lvl, err := gen.Generate(depth)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if problems := checkLevel(lvl, depth); len(problems) > 0 {
			t.Fatalf("generated level has problems: %v", problems)
		}
	})
}
