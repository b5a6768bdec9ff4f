package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
	"roguecore/pkg/game/state"
)

func makeGame(t *testing.T) *state.Game {
	t.Helper()
	lvl, err := level.FromMap("dump", []string{
		"#########",
		"#@..#..g#",
		"#...+...#",
		"#########",
	}, map[rune]string{'g': "goblin"})
	require.NoError(t, err)

	g, err := state.NewGame(lvl, 10, 25)
	require.NoError(t, err)
	require.NoError(t, g.FOV.Compute(g.Player.Pos, g.FOVRange))
	return g
}

// section returns the lines between a "--- name" header and the next blank line.
func section(t *testing.T, dump, name string) []string {
	t.Helper()
	lines := strings.Split(dump, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "--- "+name) {
			var out []string
			for _, l := range lines[i+1:] {
				if l == "" {
					return out
				}
				out = append(out, l)
			}
			return out
		}
	}
	t.Fatalf("section %q not found", name)
	return nil
}

func TestDumpMap(t *testing.T) {
	g := makeGame(t)
	path, err := g.Paths.FindPath(g.Player.Pos, world.Pt(6, 2))
	require.NoError(t, err)
	require.NotNil(t, path)

	var buf bytes.Buffer
	require.NoError(t, DumpMap(&buf, g, path))
	dump := buf.String()

	assert.Contains(t, dump, `level: "dump"`)
	assert.Contains(t, dump, "grid_width: 9")
	assert.Contains(t, dump, "player: 1,1")
	assert.True(t, strings.HasSuffix(dump, "=== END MAP DUMP ===\n"))

	full := section(t, dump, "Map (fully revealed")
	require.Len(t, full, 4)
	assert.Equal(t, "#########", full[0])
	assert.Equal(t, '@', rune(full[1][1]))
	assert.Equal(t, 'g', rune(full[1][7]), "monster shown in full view")
	assert.Equal(t, '*', rune(full[2][4]), "path crosses the door")

	revealed := section(t, dump, "Map (explored cells only")
	require.Len(t, revealed, 4)
	assert.Equal(t, '?', rune(revealed[1][6]), "cell behind wall and door unexplored")
	assert.NotEqual(t, 'g', rune(revealed[1][7]), "hidden monster not drawn")

	actors := section(t, dump, "Actors")
	require.Len(t, actors, 2)
	assert.Contains(t, actors[1], `name: "goblin"`)
	assert.Contains(t, actors[1], "visible: false")

	doors := section(t, dump, "Doors")
	assert.Equal(t, []string{"  x: 4 y: 2 open: false explored: true"}, doors)

	pathLines := section(t, dump, "Path")
	assert.Equal(t, "  length: 6 cost: 54", pathLines[0])
}

func TestDumpMap_NoPath(t *testing.T) {
	g := makeGame(t)
	var buf bytes.Buffer
	require.NoError(t, DumpMap(&buf, g, nil))
	assert.Equal(t, []string{"  (none)"}, section(t, buf.String(), "Path"))
}

func TestDumpMap_NoGame(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, DumpMap(&buf, nil, nil))
}

func TestDumpMapToFile(t *testing.T) {
	g := makeGame(t)
	filename := filepath.Join(t.TempDir(), "dump.txt")

	abs, err := DumpMapToFile(g, nil, filename)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== MAP DUMP DEBUG")
}

func TestWriteScreenshotHTML(t *testing.T) {
	g := makeGame(t)
	g.AddMessage("\x1b[31mThe <goblin> growls\x1b[0m")

	var buf bytes.Buffer
	require.NoError(t, WriteScreenshotHTML(&buf, g, nil))
	page := buf.String()

	assert.Contains(t, page, `<div class="header">dump, turn 0</div>`)
	assert.Contains(t, page, `<span class="player">@</span>`)
	assert.NotContains(t, page, `<span class="monster">`, "hidden monster drawn")
	assert.Contains(t, page, `<span class="door">+</span>`)
	assert.Contains(t, page, "The &lt;goblin&gt; growls")
	assert.NotContains(t, page, "\x1b[")
}

func TestSaveScreenshotHTML(t *testing.T) {
	g := makeGame(t)
	name, err := SaveScreenshotHTML(g, nil, t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".html"))

	_, err = os.Stat(name)
	assert.NoError(t, err)
}
