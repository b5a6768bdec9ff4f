package gameplay

import (
	"go.uber.org/zap"

	"roguecore/pkg/game/state"
)

// RecomputeFOV refreshes the player's view if anything marked it stale.
func RecomputeFOV(g *state.Game) {
	if !g.NeedsFOVUpdate {
		return
	}
	g.FOV.Clear()
	if err := g.FOV.Compute(g.Player.Pos, g.FOVRange); err != nil {
		g.Log.Error("fov compute failed", zap.Stringer("origin", g.Player.Pos), zap.Error(err))
		return
	}
	g.NeedsFOVUpdate = false
	g.Log.Debug("fov recomputed",
		zap.Stringer("origin", g.Player.Pos),
		zap.Int("radius", g.FOVRange),
		zap.Int("visible", g.FOV.VisibleCount()),
		zap.Int("explored", g.FOV.ExploredCount()),
	)
}
