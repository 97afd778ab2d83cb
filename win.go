package tileswap

import "log/slog"

// checkWin ends the level if the board is solved. Runs after every swap.
// On a win the drag affordances (tile frames) disappear, the banner shows,
// and the next-level control shows only when the catalog has another level.
func (g *Game) checkWin() bool {
	if g.gameOver || !g.collection.Solved() {
		return false
	}
	g.gameOver = true
	g.drag.Cancel()

	for _, v := range g.views {
		for _, c := range v.Children() {
			if c.Class == classFrame {
				c.Visible = false
			}
		}
	}

	hasNext := g.catalog.HasNext(g.level)
	g.setBanner(true)
	g.setAdvance(hasNext)
	if hasNext {
		g.state = StateWon
	} else {
		g.state = StateFinished
	}

	g.log.Info("level solved",
		slog.Int("level", g.level),
		slog.Int("moves", g.moves),
		slog.Bool("hasNext", hasNext))
	g.emit(GameEvent{
		Type:    EventLevelWon,
		Level:   g.level,
		Grid:    g.collection.Grid(),
		Moves:   g.moves,
		HasNext: hasNext,
	})
	return true
}
