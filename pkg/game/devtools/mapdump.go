// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"roguecore/pkg/engine/pathfind"
	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

// DefaultDumpFilename is where DumpMapToFile writes when no name is given.
const DefaultDumpFilename = "map.txt"

const (
	symbolUnexplored = '?'
	symbolPath       = '*'
)

// cellSymbol returns the single-character symbol for a cell (no actor/path overlay).
// If revealedOnly is true, cells never seen return '?'.
func cellSymbol(g *state.Game, cell *world.Cell, revealedOnly bool) rune {
	if cell == nil {
		return '#'
	}
	if revealedOnly && !g.FOV.IsExplored(cell.Pos) {
		return symbolUnexplored
	}
	return cell.Tile.Glyph()
}

// writeMapGrid writes the grid to w with actor and path overlays. In the
// revealed-only view monsters appear only where currently visible.
func writeMapGrid(w io.Writer, g *state.Game, onPath map[world.Point]bool, revealedOnly bool) {
	grid := g.Grid()
	for y := 0; y < grid.Height(); y++ {
		line := make([]rune, grid.Width())
		for x := range line {
			p := world.Pt(x, y)
			sym := cellSymbol(g, grid.Cell(p), revealedOnly)
			if onPath[p] {
				sym = symbolPath
			}
			if a := g.ActorAt(p); a != nil && (a.Player || !revealedOnly || g.FOV.IsVisible(p)) {
				sym = a.Glyph
			}
			line[x] = sym
		}
		fmt.Fprintln(w, string(line))
	}
}

// DumpMap writes a full debug dump to w: metadata, legend, revealed-only map,
// fully-revealed map, actors, doors and the optional path.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func DumpMap(w io.Writer, g *state.Game, path []world.Point) error {
	if g == nil || g.Level == nil || g.Grid() == nil {
		return fmt.Errorf("no grid")
	}

	bw := bufio.NewWriter(w)
	grid := g.Grid()

	onPath := make(map[world.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	// --- Metadata ---
	fmt.Fprintln(bw, "=== MAP DUMP DEBUG (layout, visibility, actors) ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "level: %q\n", g.Level.Name)
	fmt.Fprintf(bw, "grid_width: %d\n", grid.Width())
	fmt.Fprintf(bw, "grid_height: %d\n", grid.Height())
	fmt.Fprintf(bw, "coordinate_system: x,y (0-based, x=horizontal, y grows south)\n")
	fmt.Fprintf(bw, "turn: %d\n", g.Turn)
	fmt.Fprintf(bw, "player: %d,%d\n", g.Player.Pos.X, g.Player.Pos.Y)
	fmt.Fprintf(bw, "fov_range: %d\n", g.FOVRange)
	fmt.Fprintf(bw, "max_path_cost: %d\n", g.Paths.MaxCost())
	fmt.Fprintf(bw, "visible_cells: %d\n", g.FOV.VisibleCount())
	fmt.Fprintf(bw, "explored_cells: %d\n", g.FOV.ExploredCount())
	fmt.Fprintln(bw, "")

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (cell symbols) ---")
	fmt.Fprintln(bw, ". = floor  # = wall  + = closed door  ' = open door  ? = unexplored  * = path  @ = player  letters = monsters")
	fmt.Fprintln(bw, "")

	// --- Map: Revealed only ---
	fmt.Fprintln(bw, "--- Map (explored cells only; unexplored = ?) ---")
	writeMapGrid(bw, g, onPath, true)
	fmt.Fprintln(bw, "")

	// --- Map: Fully revealed ---
	fmt.Fprintln(bw, "--- Map (fully revealed; full layout) ---")
	writeMapGrid(bw, g, onPath, false)
	fmt.Fprintln(bw, "")

	// --- Actors ---
	fmt.Fprintln(bw, "--- Actors ---")
	for _, a := range g.Actors {
		target := ""
		if a.Target != nil {
			target = a.Target.Name
		}
		fmt.Fprintf(bw, "  x: %d y: %d name: %q glyph: %q player: %v visible: %v target: %q\n",
			a.Pos.X, a.Pos.Y, a.Name, a.Glyph, a.Player, g.FOV.IsVisible(a.Pos), target)
	}
	fmt.Fprintln(bw, "")

	// --- Doors ---
	fmt.Fprintln(bw, "--- Doors ---")
	grid.ForEachCell(func(cell *world.Cell) {
		if !cell.IsDoor() {
			return
		}
		fmt.Fprintf(bw, "  x: %d y: %d open: %v explored: %v\n",
			cell.Pos.X, cell.Pos.Y, cell.Tile == world.TileDoorOpen, g.FOV.IsExplored(cell.Pos))
	})
	fmt.Fprintln(bw, "")

	// --- Path ---
	fmt.Fprintln(bw, "--- Path ---")
	if len(path) == 0 {
		fmt.Fprintln(bw, "  (none)")
	} else {
		fmt.Fprintf(bw, "  length: %d cost: %d\n", len(path), pathfind.Cost(path))
		for i, p := range path {
			fmt.Fprintf(bw, "  step: %d x: %d y: %d\n", i, p.X, p.Y)
		}
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "=== END MAP DUMP ===")

	return bw.Flush()
}

// DumpMapToFile writes DumpMap output to filename (DefaultDumpFilename when
// empty) and returns the absolute path written.
func DumpMapToFile(g *state.Game, path []world.Point, filename string) (string, error) {
	if filename == "" {
		filename = DefaultDumpFilename
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(f, g, path); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
