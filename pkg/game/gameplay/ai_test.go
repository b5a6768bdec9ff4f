package gameplay

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
	"roguecore/pkg/game/state"
)

func monsterAt(t *testing.T, g *state.Game, p world.Point) *state.Actor {
	t.Helper()
	a := g.ActorAt(p)
	if a == nil || a.Player {
		t.Fatalf("no monster at %v", p)
	}
	return a
}

func TestChaseStep_Straight(t *testing.T) {
	g := makeGame(t,
		"#########",
		"#.......#",
		"#@...b..#",
		"#.......#",
		"#########",
	)
	b := monsterAt(t, g, world.Pt(5, 2))
	b.Target = g.Player

	next, ok := ChaseStep(g, b)
	if !ok {
		t.Fatal("ChaseStep() ok = false, want true")
	}
	if want := world.Pt(4, 2); next != want {
		t.Errorf("ChaseStep() = %v, want %v", next, want)
	}
}

func TestChaseStep_SidestepsOccupiedCell(t *testing.T) {
	g := makeGame(t,
		"#########",
		"#.......#",
		"#@..ab..#",
		"#.......#",
		"#########",
	)
	b := monsterAt(t, g, world.Pt(5, 2))
	b.Target = g.Player

	next, ok := ChaseStep(g, b)
	if !ok {
		t.Fatal("ChaseStep() ok = false, want true")
	}
	// West is blocked by a; turning 45 degrees left of west is south-west.
	if want := world.Pt(4, 3); next != want {
		t.Errorf("ChaseStep() = %v, want %v", next, want)
	}
}

func TestChaseStep_SidestepsBlocked(t *testing.T) {
	g := makeGame(t,
		"#########",
		"#...#...#",
		"#@..ab..#",
		"#...#...#",
		"#########",
	)
	b := monsterAt(t, g, world.Pt(5, 2))
	b.Target = g.Player

	if next, ok := ChaseStep(g, b); ok {
		t.Errorf("ChaseStep() = %v, true; want to stay put", next)
	}
}

func TestChaseStep_Stays(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		monster  world.Point
		maxCost  uint
		noTarget bool
	}{
		{
			name:    "adjacent",
			rows:    []string{"#####", "#@g.#", "#####"},
			monster: world.Pt(2, 1),
		},
		{
			name:     "no target",
			rows:     []string{"######", "#@..g#", "######"},
			monster:  world.Pt(4, 1),
			noTarget: true,
		},
		{
			name:    "beyond max cost",
			rows:    []string{"#########", "#@.....g#", "#########"},
			monster: world.Pt(7, 1),
			maxCost: 3,
		},
		{
			name:    "walled off",
			rows:    []string{"#######", "#@.#g.#", "#######"},
			monster: world.Pt(4, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := makeGame(t, tt.rows...)
			if tt.maxCost > 0 {
				g.Paths.SetMaxCost(tt.maxCost)
			}
			m := monsterAt(t, g, tt.monster)
			if !tt.noTarget {
				m.Target = g.Player
			}
			if next, ok := ChaseStep(g, m); ok {
				t.Errorf("ChaseStep() = %v, true; want to stay put", next)
			}
		})
	}
}

func TestEnemyTurn_VisibleMonsterGivesChase(t *testing.T) {
	g := makeGame(t,
		"########",
		"#@....g#",
		"########",
	)
	m := monsterAt(t, g, world.Pt(6, 1))

	EnemyTurn(g)

	if m.Target != g.Player {
		t.Error("visible monster did not target the player")
	}
	if want := world.Pt(5, 1); m.Pos != want {
		t.Errorf("monster at %v, want %v", m.Pos, want)
	}
	if len(g.Messages) == 0 {
		t.Fatal("no message logged when monster noticed the player")
	}
	if got, want := g.Messages[0], "The g notices you!"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestEnemyTurn_HiddenMonsterWaits(t *testing.T) {
	g := makeGame(t,
		"########",
		"#@.#..g#",
		"########",
	)
	m := monsterAt(t, g, world.Pt(6, 1))

	EnemyTurn(g)

	if m.Target != nil {
		t.Error("hidden monster acquired a target")
	}
	if want := world.Pt(6, 1); m.Pos != want {
		t.Errorf("monster at %v, want %v", m.Pos, want)
	}
}

func TestEnemyTurn_MonsterOpensDoor(t *testing.T) {
	g := makeGame(t,
		"########",
		"#@..+.g#",
		"########",
	)
	door := world.Pt(4, 1)
	m := monsterAt(t, g, world.Pt(6, 1))
	m.Target = g.Player

	if g.FOV.IsVisible(m.Pos) {
		t.Fatal("monster visible through closed door")
	}

	EnemyTurn(g)
	EnemyTurn(g)

	if m.Pos != door {
		t.Fatalf("monster at %v, want on door %v", m.Pos, door)
	}
	if got := g.Grid().Cell(door).Tile; got != world.TileDoorOpen {
		t.Errorf("door tile = %v, want %v", got, world.TileDoorOpen)
	}
	if !g.FOV.IsVisible(world.Pt(5, 1)) {
		t.Error("view not refreshed after monster opened the door")
	}

	EnemyTurn(g)
	if got := g.Grid().Cell(door).Tile; got != world.TileDoorClosed {
		t.Errorf("door tile after monster left = %v, want %v", got, world.TileDoorClosed)
	}
}

// openRoom renders a walled room of the given interior size with the player
// and one monster placed in it.
func openRoom(w, h int, player, monster world.Point) []string {
	rows := make([]string, h+2)
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < w+2; x++ {
			p := world.Pt(x, y)
			switch {
			case x == 0 || y == 0 || x == w+1 || y == h+1:
				sb.WriteByte('#')
			case p == player:
				sb.WriteByte('@')
			case p == monster:
				sb.WriteByte('g')
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func chebyshev(a, b world.Point) int {
	d := b.Sub(a)
	return max(abs(d.X), abs(d.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestPropertyChaseStepClosesDistance(t *testing.T) {
	const size = 10
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.IntRange(1, size)
		player := world.Pt(coord.Draw(t, "px"), coord.Draw(t, "py"))
		monster := world.Pt(coord.Draw(t, "mx"), coord.Draw(t, "my"))
		if chebyshev(player, monster) <= 1 {
			return
		}

		lvl, err := level.FromMap("room", openRoom(size, size, player, monster), map[rune]string{'g': "goblin"})
		if err != nil {
			t.Fatalf("level.FromMap() error = %v", err)
		}
		g, err := state.NewGame(lvl, 10, 100)
		if err != nil {
			t.Fatalf("state.NewGame() error = %v", err)
		}
		m := g.Monsters()[0]
		m.Target = g.Player

		next, ok := ChaseStep(g, m)
		if !ok {
			t.Fatalf("ChaseStep() from %v to %v stayed put", monster, player)
		}
		if got, want := chebyshev(next, player), chebyshev(monster, player)-1; got != want {
			t.Fatalf("step %v -> %v leaves distance %d, want %d", monster, next, got, want)
		}
	})
}
