// Package renderer defines the output backends a frame can be drawn with.
package renderer

import (
	"io"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

// Renderer draws one frame of the game to w, overlaying path when non-empty.
// Implementations include the terminal view and the HTML screenshot.
type Renderer interface {
	Render(w io.Writer, g *state.Game, path []world.Point) error
}

// Func adapts a plain function to the Renderer interface.
type Func func(w io.Writer, g *state.Game, path []world.Point) error

// Render calls f(w, g, path).
func (f Func) Render(w io.Writer, g *state.Game, path []world.Point) error {
	return f(w, g, path)
}
