// Package tui draws the player's view of a level to a terminal.
package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"roguecore/pkg/engine/terminal"
	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

// Icon constants
const (
	IconVoid = " "
	IconPath = "*"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 3
	ViewportMinCols = 10
	// Lines needed outside viewport:
	// - Header + blank (2)
	// - Status line + blank (2)
	// - Messages pane (header + 5 messages + footer = 7)
	// - Input prompt (1)
	ViewportTopMargin = 12
)

// Options controls how a TUIRenderer draws.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// Width and Height bound the output; zero means the terminal size.
	Width  int
	Height int
}

// TUIRenderer is the terminal-based renderer
type TUIRenderer struct {
	opts Options

	colorFloor      color.Style
	colorWall       color.Style
	colorDoor       color.Style
	colorRemembered color.Style
	colorPlayer     color.Style
	colorMonster    color.Style
	colorPath       color.Style
	colorHeader     color.Style
	colorSubtle     color.Style
}

// New creates a new TUI renderer
func New(opts Options) *TUIRenderer {
	t := &TUIRenderer{opts: opts}
	t.Init()
	return t
}

// Init initializes the TUI renderer colours
func (t *TUIRenderer) Init() {
	t.colorFloor = color.Style{color.FgWhite}
	t.colorWall = color.Style{color.FgLightWhite, color.OpBold}
	t.colorDoor = color.Style{color.FgYellow, color.OpBold}
	t.colorRemembered = color.Style{color.FgDarkGray}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorMonster = color.Style{color.FgRed, color.OpBold}
	t.colorPath = color.Style{color.FgCyan}
	t.colorHeader = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
}

// paint applies style s when colour output is enabled.
func (t *TUIRenderer) paint(s color.Style, text string) string {
	if !t.opts.Color {
		return text
	}
	return s.Sprint(text)
}

// GetViewportSize returns the viewport dimensions for a grid, bounded by the
// output size.
func (t *TUIRenderer) GetViewportSize(grid *world.Grid) (rows, cols int) {
	width, height := t.opts.Width, t.opts.Height
	if width <= 0 || height <= 0 {
		tw, th := terminal.GetSize()
		if width <= 0 {
			width = tw
		}
		if height <= 0 {
			height = th
		}
	}

	cols = max(width, ViewportMinCols)
	rows = max(height-ViewportTopMargin, ViewportMinRows)

	return min(rows, grid.Height()), min(cols, grid.Width())
}

// viewportOrigin returns the top-left grid cell of a viewport centred on
// centre and kept inside the grid.
func viewportOrigin(centre world.Point, rows, cols int, grid *world.Grid) world.Point {
	x := clamp(centre.X-cols/2, 0, grid.Width()-cols)
	y := clamp(centre.Y-rows/2, 0, grid.Height()-rows)
	return world.Pt(x, y)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Render writes a complete frame for g to w. Cells on path are overlaid
// with '*' where no visible actor stands.
func (t *TUIRenderer) Render(w io.Writer, g *state.Game, path []world.Point) error {
	bw := bufio.NewWriter(w)
	grid := g.Grid()

	fmt.Fprintln(bw, t.paint(t.colorHeader, fmt.Sprintf(gotext.Get("LEVEL_HEADER"), g.Level.Name, g.Turn)))
	fmt.Fprintln(bw)

	t.printMap(bw, g, path)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, t.paint(t.colorSubtle, fmt.Sprintf(gotext.Get("STATUS_LINE"),
		g.Player.Pos.String(),
		g.FOV.VisibleCount(),
		g.FOV.ExploredCount(),
		grid.Width()*grid.Height(),
	)))

	t.printMessagesPane(bw, g)

	return bw.Flush()
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(g *state.Game, p world.Point, onPath map[world.Point]bool) string {
	cell := g.Grid().Cell(p)
	if cell == nil || !g.FOV.IsExplored(p) {
		return IconVoid
	}

	glyph := string(cell.Tile.Glyph())
	if !g.FOV.IsVisible(p) {
		return t.paint(t.colorRemembered, glyph)
	}

	if a := g.ActorAt(p); a != nil {
		if a.Player {
			return t.paint(t.colorPlayer, string(a.Glyph))
		}
		return t.paint(t.colorMonster, string(a.Glyph))
	}

	if onPath[p] {
		return t.paint(t.colorPath, IconPath)
	}

	switch cell.Tile {
	case world.TileWall:
		return t.paint(t.colorWall, glyph)
	case world.TileDoorClosed, world.TileDoorOpen:
		return t.paint(t.colorDoor, glyph)
	default:
		return t.paint(t.colorFloor, glyph)
	}
}

// printMap renders the viewport around the player
func (t *TUIRenderer) printMap(w io.Writer, g *state.Game, path []world.Point) {
	grid := g.Grid()
	rows, cols := t.GetViewportSize(grid)
	origin := viewportOrigin(g.Player.Pos, rows, cols, grid)

	onPath := make(map[world.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var line strings.Builder
	for y := origin.Y; y < origin.Y+rows; y++ {
		line.Reset()
		for x := origin.X; x < origin.X+cols; x++ {
			line.WriteString(t.renderCell(g, world.Pt(x, y), onPath))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(w io.Writer, g *state.Game) {
	_, cols := t.GetViewportSize(g.Grid())
	width := max(cols, ViewportMinCols)

	label := " " + gotext.Get("MESSAGES") + " "
	labelLen := len(label)
	sideLen := max((width-labelLen)/2, 1)
	rightLen := max(width-sideLen-labelLen, 1)

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.paint(t.colorSubtle, strings.Repeat("-", sideLen)+label+strings.Repeat("-", rightLen)))

	if len(g.Messages) == 0 {
		fmt.Fprintln(w, t.paint(t.colorSubtle, "  "+gotext.Get("NO_MESSAGES")))
	} else {
		for _, msg := range g.Messages {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}

	fmt.Fprintln(w, t.paint(t.colorSubtle, strings.Repeat("-", width)))
}
