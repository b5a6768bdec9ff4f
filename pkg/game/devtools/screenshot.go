package devtools

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gookit/color"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

const screenshotHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>roguecore - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .player { color: #00ff00; font-weight: bold; }
        .monster { color: #ff4444; font-weight: bold; }
        .wall { color: #aaa; }
        .floor { color: #888; }
        .door { color: #ffff00; font-weight: bold; }
        .path { color: #00ffff; }
        .remembered { color: #444; }
        .void { color: #1a1a2e; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`

// WriteScreenshotHTML writes the player's view of the whole level as HTML:
// visible cells in colour, remembered cells greyed, unexplored cells blank.
func WriteScreenshotHTML(w io.Writer, g *state.Game, path []world.Point) error {
	if g == nil || g.Level == nil || g.Grid() == nil {
		return fmt.Errorf("no grid")
	}

	bw := bufio.NewWriter(w)
	grid := g.Grid()

	onPath := make(map[world.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	bw.WriteString(screenshotHead)

	// Header
	fmt.Fprintf(bw, `    <div class="header">%s, turn %d</div>`+"\n", html.EscapeString(g.Level.Name), g.Turn)

	// Map container
	bw.WriteString(`    <div class="map-container">` + "\n")
	for y := 0; y < grid.Height(); y++ {
		bw.WriteString(`        <div class="map-row">`)
		for x := 0; x < grid.Width(); x++ {
			icon, class := getCellHTMLInfo(g, world.Pt(x, y), onPath)
			fmt.Fprintf(bw, `<span class="%s">%s</span>`, class, html.EscapeString(icon))
		}
		bw.WriteString("</div>\n")
	}
	bw.WriteString(`    </div>` + "\n")

	// Messages
	if len(g.Messages) > 0 {
		bw.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range g.Messages {
			fmt.Fprintf(bw, `        <div class="message">%s</div>`+"\n", html.EscapeString(color.ClearCode(msg)))
		}
		bw.WriteString(`    </div>` + "\n")
	}

	bw.WriteString(`</body>
</html>
`)
	return bw.Flush()
}

// SaveScreenshotHTML writes a timestamped screenshot into dir and returns its path.
func SaveScreenshotHTML(g *state.Game, path []world.Point, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp))

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteScreenshotHTML(f, g, path); err != nil {
		return filename, err
	}
	return filename, nil
}

// getCellHTMLInfo returns the icon and CSS class for a cell
func getCellHTMLInfo(g *state.Game, p world.Point, onPath map[world.Point]bool) (string, string) {
	cell := g.Grid().Cell(p)
	if cell == nil || !g.FOV.IsExplored(p) {
		return " ", "void"
	}

	if !g.FOV.IsVisible(p) {
		return string(cell.Tile.Glyph()), "remembered"
	}

	if a := g.ActorAt(p); a != nil {
		if a.Player {
			return string(a.Glyph), "player"
		}
		return string(a.Glyph), "monster"
	}

	if onPath[p] {
		return "*", "path"
	}

	switch cell.Tile {
	case world.TileWall:
		return string(cell.Tile.Glyph()), "wall"
	case world.TileDoorClosed, world.TileDoorOpen:
		return string(cell.Tile.Glyph()), "door"
	default:
		return string(cell.Tile.Glyph()), "floor"
	}
}
