package tileswap

// injector is a PointerInput fed by code instead of hardware. One event is
// released per Poll, so a queued drag plays out over several frames the same
// way a real one would.
type injector struct {
	queue  []PointerEvent
	active bool
}

// Poll implements PointerInput.
func (in *injector) Poll(buf []PointerEvent) []PointerEvent {
	if len(in.queue) == 0 {
		return buf
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]
	switch evt.Kind {
	case PointerPress:
		in.active = true
	case PointerRelease:
		in.active = false
	}
	return append(buf, evt)
}

// Captured implements PointerInput.
func (in *injector) Captured() bool {
	return in.active
}

// pending reports how many injected events are still queued.
func (in *injector) pending() int {
	return len(in.queue)
}

func (in *injector) push(kind PointerKind, x, y float64) {
	in.queue = append(in.queue, PointerEvent{Kind: kind, X: x, Y: y, Device: DeviceSynthetic})
}

// InjectPress queues a pointer press at the given screen coordinates.
// The event is consumed on a following Update.
func (g *Game) InjectPress(x, y float64) {
	g.injected.push(PointerPress, x, y)
}

// InjectMove queues a pointer move to the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.injected.push(PointerMove, x, y)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Game) InjectRelease(x, y float64) {
	g.injected.push(PointerRelease, x, y)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and a release at
// (toX, toY). Minimum frames is 2 (press + release); the release lands where
// the last move left the pointer, so the final move always reaches the target.
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	if steps == 0 {
		g.InjectMove(toX, toY)
	}
	g.InjectRelease(toX, toY)
}

// InjectSwap queues a drag from the center of board position from to the
// center of board position to. It reports false if either position is off the
// current board.
func (g *Game) InjectSwap(from, to, frames int) bool {
	a, okA := g.PositionCenter(from)
	b, okB := g.PositionCenter(to)
	if !okA || !okB {
		return false
	}
	g.InjectDrag(a.X, a.Y, b.X, b.Y, frames)
	return true
}
