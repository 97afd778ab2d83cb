package tileswap

// Element classes the drag controller resolves against.
const (
	classTile  = "tile"
	classGhost = "ghost"
)

// Ghost styling.
const (
	ghostAlpha = 0.9
)

var ghostGlowColor = Color{1, 1, 1, 0.8}

// dragSession is the single in-flight drag.
type dragSession struct {
	source *Node // tile element the drag started on
	tile   *Tile
	last   Vec2 // last known pointer position, screen space
	ghost  *Node
}

// DragController turns pointer gestures into tile swaps. At most one session
// exists at a time; a press while one is active is ignored, as is a press
// while Blocked reports true.
type DragController struct {
	surface *Surface
	tweens  *Tweens

	// Blocked reports whether new sessions are refused (the level is won).
	Blocked func() bool
	// OnDrop is called on release over a tile other than the source.
	OnDrop func(source, target *Tile)

	session *dragSession
}

// NewDragController creates a controller hit-testing against s. Ghost lift
// tweens are registered with tweens, which may be nil.
func NewDragController(s *Surface, tweens *Tweens) *DragController {
	return &DragController{surface: s, tweens: tweens}
}

// Active reports whether a drag session is in progress.
func (d *DragController) Active() bool {
	return d.session != nil
}

// Ghost returns the floating copy of the dragged tile, or nil when idle.
func (d *DragController) Ghost() *Node {
	if d.session == nil {
		return nil
	}
	return d.session.ghost
}

// Source returns the tile being dragged, or nil when idle.
func (d *DragController) Source() *Tile {
	if d.session == nil {
		return nil
	}
	return d.session.tile
}

// Handle dispatches one pointer event.
func (d *DragController) Handle(evt PointerEvent) {
	switch evt.Kind {
	case PointerPress:
		d.Press(evt.X, evt.Y)
	case PointerMove:
		d.Move(evt.X, evt.Y)
	case PointerRelease:
		if d.session != nil {
			d.session.last = Vec2{evt.X, evt.Y}
		}
		d.Release()
	}
}

// Press starts a session on the tile under (x, y). It reports whether a
// session was started.
func (d *DragController) Press(x, y float64) bool {
	if d.session != nil {
		return false
	}
	if d.Blocked != nil && d.Blocked() {
		return false
	}
	hit := d.surface.ElementAt(x, y)
	if hit == nil {
		return false
	}
	src := hit.Closest(classTile)
	if src == nil {
		return false
	}
	tile, ok := src.UserData.(*Tile)
	if !ok {
		return false
	}

	d.session = &dragSession{
		source: src,
		tile:   tile,
		last:   Vec2{x, y},
		ghost:  d.spawnGhost(src),
	}
	return true
}

// spawnGhost clones src onto the overlay at src's on-screen bounds.
func (d *DragController) spawnGhost(src *Node) *Node {
	b := src.Bounds()
	g := src.Clone()
	g.Name = "ghost"
	g.Class = classGhost
	g.Interactable = false
	g.SetScale(1, 1)
	g.SetSize(b.Width, b.Height)
	g.SetPivot(b.Width/2, b.Height/2)
	g.SetPosition(b.X, b.Y)
	g.SetAlpha(ghostAlpha)
	fitChildren(g, b.Width, b.Height)

	glow := NewFrame("glow", b.Width, b.Height, ghostGlowColor, 2)
	glow.SetPosition(-1, -1)
	glow.SetSize(b.Width+2, b.Height+2)
	glow.SetZIndex(1)
	g.AddChild(glow)

	d.surface.Overlay().AddChild(g)
	if d.tweens != nil {
		d.tweens.Add(liftGhost(g))
	}
	return g
}

// fitChildren resizes a cloned tile's frame children to the ghost's size.
func fitChildren(n *Node, w, h float64) {
	for _, c := range n.Children() {
		if c.Type == NodeTypeFrame {
			c.SetSize(w, h)
		}
	}
}

// Move records the pointer and centers the ghost on it. No-op when idle.
func (d *DragController) Move(x, y float64) {
	s := d.session
	if s == nil {
		return
	}
	s.last = Vec2{x, y}
	if s.ghost != nil {
		s.ghost.SetPosition(x-s.ghost.Width/2, y-s.ghost.Height/2)
	}
}

// Release ends the session at the last known pointer position. If a tile
// other than the source is under it, OnDrop fires. The ghost is always
// removed. With no session, any stray ghost left on the overlay is cleared.
func (d *DragController) Release() {
	s := d.session
	if s == nil {
		d.clearStrayGhosts()
		return
	}
	d.session = nil
	if s.ghost != nil {
		s.ghost.Dispose()
	}

	hit := d.surface.ElementAt(s.last.X, s.last.Y)
	if hit == nil {
		return
	}
	dst := hit.Closest(classTile)
	if dst == nil || dst == s.source {
		return
	}
	target, ok := dst.UserData.(*Tile)
	if !ok || target == s.tile {
		return
	}
	if d.OnDrop != nil {
		d.OnDrop(s.tile, target)
	}
}

// Cancel ends the session without swapping.
func (d *DragController) Cancel() {
	if d.session == nil {
		return
	}
	if d.session.ghost != nil {
		d.session.ghost.Dispose()
	}
	d.session = nil
}

func (d *DragController) clearStrayGhosts() {
	overlay := d.surface.Overlay()
	for i := overlay.NumChildren() - 1; i >= 0; i-- {
		if c := overlay.ChildAt(i); c.Class == classGhost {
			c.Dispose()
		}
	}
}
