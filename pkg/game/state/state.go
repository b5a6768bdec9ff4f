package state

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"roguecore/pkg/engine/fov"
	"roguecore/pkg/engine/pathfind"
	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
)

// ErrNoLevel is returned when a game is started without a loaded level
var ErrNoLevel = errors.New("game needs a level with a grid")

// Actor is the player or a monster standing on the grid
type Actor struct {
	Name   string
	Glyph  rune
	Pos    world.Point
	Target *Actor
	Player bool
}

// Game represents the state of one level being played
type Game struct {
	Level *level.Level

	Player *Actor
	Actors []*Actor // player first, then monsters in spawn order

	FOV   *fov.Field
	Paths *pathfind.PathFinder

	FOVRange       int
	NeedsFOVUpdate bool

	Turn int

	Messages []string

	Log *zap.Logger
}

// NewGame creates a game on lvl. Non-zero overrides on the level win over
// fovRange and maxPathCost.
func NewGame(lvl *level.Level, fovRange int, maxPathCost uint) (*Game, error) {
	if lvl == nil || lvl.Grid == nil {
		return nil, ErrNoLevel
	}
	grid := lvl.Grid

	field, err := fov.New(grid.Width(), grid.Height(), grid.IsTransparent)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if err := field.LoadExplored(lvl.Explored); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	paths, err := pathfind.New(grid.Width(), grid.Height(), grid.IsPassable)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	if lvl.FOVRange > 0 {
		fovRange = lvl.FOVRange
	}
	if lvl.MaxPathCost > 0 {
		maxPathCost = lvl.MaxPathCost
	}
	paths.SetMaxCost(maxPathCost)

	player := &Actor{Name: "player", Glyph: level.PlayerGlyph, Pos: lvl.PlayerStart, Player: true}
	g := &Game{
		Level:          lvl,
		Player:         player,
		Actors:         []*Actor{player},
		FOV:            field,
		Paths:          paths,
		FOVRange:       fovRange,
		NeedsFOVUpdate: true,
		Messages:       make([]string, 0),
		Log:            zap.NewNop(),
	}
	for _, m := range lvl.Monsters {
		g.Actors = append(g.Actors, &Actor{Name: m.Name, Glyph: m.Glyph, Pos: m.Pos})
	}
	return g, nil
}

// Grid returns the level's grid
func (g *Game) Grid() *world.Grid {
	return g.Level.Grid
}

// ActorAt returns the actor standing on p, or nil
func (g *Game) ActorAt(p world.Point) *Actor {
	for _, a := range g.Actors {
		if a.Pos == p {
			return a
		}
	}
	return nil
}

// Monsters returns every actor other than the player
func (g *Game) Monsters() []*Actor {
	return g.Actors[1:]
}

// SaveExplored copies the field's explored cells back into the level
func (g *Game) SaveExplored() {
	g.Level.Explored = g.FOV.Explored()
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}
