// Package gameplay provides core game logic for player movement and monster turns.
package gameplay

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

// CanEnter checks if an actor may step onto p
func CanEnter(g *state.Game, p world.Point) bool {
	return g.Grid().IsPassable(p) && g.ActorAt(p) == nil
}

// MovePlayer moves the player one step in dir and reports whether the player
// changed position. None is a wait. Bumping into a monster or wall costs nothing
// but still ends the player's turn in PlayTurn.
func MovePlayer(g *state.Game, dir world.Direction) bool {
	if dir == world.None {
		return false
	}
	if !dir.IsValid() {
		g.Log.Warn("invalid direction", zap.Int("dir", int(dir)))
		return false
	}

	dest := g.Player.Pos.Add(dir.Delta())
	if !g.Grid().IsInBounds(dest) {
		return false
	}

	if other := g.ActorAt(dest); other != nil {
		logMessage(g, fmt.Sprintf(gotext.Get("MSG_PLAYER_SHOVES"), other.Name))
		return false
	}

	if !g.Grid().IsPassable(dest) {
		logMessage(g, fmt.Sprintf(gotext.Get("MSG_BLOCKED"), gotext.Get(dir.String())))
		return false
	}

	moveActor(g, g.Player, dest)
	g.NeedsFOVUpdate = true
	return true
}

// PlayTurn runs one full turn: the player's action, then every monster's.
func PlayTurn(g *state.Game, dir world.Direction) {
	moved := MovePlayer(g, dir)
	g.Log.Debug("player turn",
		zap.Int("turn", g.Turn),
		zap.Stringer("dir", dir),
		zap.Stringer("pos", g.Player.Pos),
		zap.Bool("moved", moved),
	)
	RecomputeFOV(g)
	EnemyTurn(g)
	g.Turn++
}

// moveActor relocates a, closing any door it leaves and opening any door it enters.
func moveActor(g *state.Game, a *state.Actor, dest world.Point) {
	grid := g.Grid()
	if grid.CloseDoor(a.Pos) {
		g.NeedsFOVUpdate = true
	}
	a.Pos = dest
	if grid.OpenDoor(a.Pos) {
		g.NeedsFOVUpdate = true
		if a.Player {
			logMessage(g, gotext.Get("MSG_DOOR_OPENED"))
		}
	}
}

// logMessage adds a message to the game's message log
func logMessage(g *state.Game, msg string) {
	g.AddMessage(msg)
	g.Log.Debug("message", zap.String("text", msg))
}
