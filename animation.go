package tileswap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation timings.
const (
	ghostLiftDuration  = 0.12 // seconds for the drag ghost to reach ghostLiftScale
	ghostLiftScale     = 1.05
	tileSettleDuration = 0.18 // seconds for swapped tiles to fade back to full alpha
	tileSettleFrom     = 0.55
)

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha) and call Update(dt) each frame, or hand it to a Tweens set.
// The group writes values straight into the node and marks it dirty. If the
// target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Target returns the node the group animates.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// Tweens is a set of running tween groups advanced together once per frame.
// Finished groups are dropped on the following Update.
type Tweens struct {
	active []*TweenGroup
}

// Add starts tracking g.
func (t *Tweens) Add(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	t.active = append(t.active, g)
}

// Update advances every group by dt seconds and compacts out finished ones.
func (t *Tweens) Update(dt float32) {
	live := t.active[:0]
	for _, g := range t.active {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(t.active[len(live):])
	t.active = live
}

// Len returns the number of running groups.
func (t *Tweens) Len() int {
	return len(t.active)
}

// Clear stops every group without applying final values.
func (t *Tweens) Clear() {
	clear(t.active)
	t.active = t.active[:0]
}

// liftGhost scales a ghost up about its pivot.
func liftGhost(ghost *Node) *TweenGroup {
	return TweenScale(ghost, ghostLiftScale, ghostLiftScale, ghostLiftDuration, ease.OutQuad)
}

// settleTile fades a freshly swapped tile in from tileSettleFrom.
func settleTile(tile *Node) *TweenGroup {
	tile.SetAlpha(tileSettleFrom)
	return TweenAlpha(tile, 1, tileSettleDuration, ease.OutCubic)
}
