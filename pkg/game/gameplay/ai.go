package gameplay

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"roguecore/pkg/engine/pathfind"
	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/state"
)

// EnemyTurn lets every monster act once. Monsters the player can see pick the
// player as their target; monsters with a target chase it. Doors opened or
// closed on the way are reflected in the player's view before returning.
func EnemyTurn(g *state.Game) {
	for _, m := range g.Monsters() {
		if m.Target == nil && g.FOV.IsVisible(m.Pos) {
			m.Target = g.Player
			logMessage(g, fmt.Sprintf(gotext.Get("MSG_MONSTER_NOTICES"), m.Name))
		}
		if m.Target == nil {
			continue
		}
		if adjacent(m.Pos, m.Target.Pos) {
			logMessage(g, fmt.Sprintf(gotext.Get("MSG_MONSTER_THREATENS"), m.Name))
			continue
		}
		if next, ok := ChaseStep(g, m); ok {
			moveActor(g, m, next)
		}
	}
	RecomputeFOV(g)
}

// ChaseStep returns the cell a should step to in pursuit of its target, and
// false when it should stay put: no target, already adjacent, no path within
// the search budget, or every candidate cell occupied.
func ChaseStep(g *state.Game, a *state.Actor) (world.Point, bool) {
	if a.Target == nil || adjacent(a.Pos, a.Target.Pos) {
		return a.Pos, false
	}

	path, err := g.Paths.FindPath(a.Pos, a.Target.Pos)
	if err != nil {
		g.Log.Warn("chase path failed", zap.String("actor", a.Name), zap.Error(err))
		return a.Pos, false
	}
	g.Log.Debug("chase path",
		zap.String("actor", a.Name),
		zap.Stringer("from", a.Pos),
		zap.Stringer("to", a.Target.Pos),
		zap.Int("length", len(path)),
		zap.Uint("cost", pathfind.Cost(path)),
	)
	// The last cell is the target itself, so a useful path has at least three.
	if len(path) <= 2 {
		return a.Pos, false
	}

	next := path[1]
	if g.ActorAt(next) == nil {
		return next, true
	}

	dir := world.DirectionOf(next.Sub(a.Pos))
	for _, side := range []world.Direction{dir.Left45(), dir.Right45()} {
		if p := a.Pos.Add(side.Delta()); CanEnter(g, p) {
			return p, true
		}
	}
	return a.Pos, false
}

func adjacent(a, b world.Point) bool {
	return b.Sub(a).LengthSquared() <= 2
}
