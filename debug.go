package tileswap

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame draw metrics. Only shown when Config.Debug is
// set.
type debugStats struct {
	commandCount int
}

// debugf prints a diagnostic line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tileswap] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tileswap debug: %s on disposed node %q", op, n.Name))
	}
}

// debugText renders the overlay lines.
func (g *Game) debugText() string {
	var b strings.Builder
	if g.cfg.Debug || g.showFPS {
		fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	if !g.cfg.Debug {
		return b.String()
	}
	lvl, _ := g.catalog.Level(g.level)
	fmt.Fprintf(&b, "level %d/%d %s (%dx%d)\n", g.level+1, g.catalog.Len(), lvl.Name, lvl.Grid, lvl.Grid)
	fmt.Fprintf(&b, "state: %s\n", g.state)
	fmt.Fprintf(&b, "moves: %d", g.moves)
	if g.collection != nil {
		fmt.Fprintf(&b, "  misplaced: %d", g.collection.Misplaced())
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "draws: %d  tweens: %d\n", g.stats.commandCount, g.tweens.Len())
	if g.drag.Active() {
		b.WriteString("dragging\n")
	}
	if g.loadErr != nil {
		fmt.Fprintf(&b, "load error: %v\n", g.loadErr)
	}
	return b.String()
}

// drawDebug prints the overlay in the top-left corner.
func (g *Game) drawDebug(screen *ebiten.Image) {
	if text := g.debugText(); text != "" {
		ebitenutil.DebugPrint(screen, text)
	}
}
