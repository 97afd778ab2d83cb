package tileswap

import (
	"image"
	"testing"
)

func hitRect(name string, x, y, w, h float64) *Node {
	n := NewRect(name, w, h, ColorWhite)
	n.Interactable = true
	n.SetPosition(x, y)
	return n
}

func TestBoundsWithParentOffset(t *testing.T) {
	parent := NewContainer("p")
	parent.SetPosition(100, 50)
	child := NewRect("c", 20, 10, ColorWhite)
	child.SetPosition(5, 5)
	parent.AddChild(child)

	got := child.Bounds()
	want := Rect{X: 105, Y: 55, Width: 20, Height: 10}
	if got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestBoundsScaledAboutPivot(t *testing.T) {
	n := NewRect("n", 100, 50, ColorWhite)
	n.SetPosition(10, 10)
	n.SetPivot(50, 25)
	n.SetScale(2, 2)

	got := n.Bounds()
	// Center stays at (60, 35); size doubles.
	c := got.Center()
	if !approxEqual(c.X, 60) || !approxEqual(c.Y, 35) {
		t.Errorf("center = %v, want (60, 35)", c)
	}
	if !approxEqual(got.Width, 200) || !approxEqual(got.Height, 100) {
		t.Errorf("size = %vx%v, want 200x100", got.Width, got.Height)
	}
}

func TestWorldLocalRoundTrip(t *testing.T) {
	parent := NewContainer("p")
	parent.SetPosition(30, 40)
	parent.SetScale(2, 3)
	child := NewContainer("c")
	child.SetPosition(7, 9)
	parent.AddChild(child)
	refreshWorldTransform(child)

	wx, wy := child.LocalToWorld(1, 2)
	lx, ly := child.WorldToLocal(wx, wy)
	if !approxEqual(lx, 1) || !approxEqual(ly, 2) {
		t.Errorf("round trip = (%v, %v), want (1, 2)", lx, ly)
	}
}

func TestInvertSingularIsIdentity(t *testing.T) {
	if got := invertAffine([6]float64{0, 0, 0, 0, 5, 5}); got != identityTransform {
		t.Errorf("invertAffine(singular) = %v", got)
	}
}

func TestElementAtTopmost(t *testing.T) {
	s := NewSurface()
	back := hitRect("back", 0, 0, 100, 100)
	front := hitRect("front", 50, 50, 100, 100)
	s.Root().AddChild(back)
	s.Root().AddChild(front)

	tests := []struct {
		x, y float64
		want *Node
	}{
		{10, 10, back},
		{75, 75, front},
		{140, 140, front},
		{300, 300, nil},
	}
	for _, tt := range tests {
		if got := s.ElementAt(tt.x, tt.y); got != tt.want {
			t.Errorf("ElementAt(%v, %v) = %v, want %v", tt.x, tt.y, nameOf(got), nameOf(tt.want))
		}
	}
}

func TestElementAtRespectsZIndex(t *testing.T) {
	s := NewSurface()
	a := hitRect("a", 0, 0, 50, 50)
	b := hitRect("b", 0, 0, 50, 50)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	a.SetZIndex(10)
	if got := s.ElementAt(25, 25); got != a {
		t.Errorf("ElementAt = %s, want a", nameOf(got))
	}
}

func TestElementAtSkipsHiddenAndInert(t *testing.T) {
	s := NewSurface()
	under := hitRect("under", 0, 0, 50, 50)
	hidden := hitRect("hidden", 0, 0, 50, 50)
	hidden.Visible = false
	inert := NewRect("inert", 50, 50, ColorWhite)
	s.Root().AddChild(under)
	s.Root().AddChild(hidden)
	s.Root().AddChild(inert)

	if got := s.ElementAt(25, 25); got != under {
		t.Errorf("ElementAt = %s, want under", nameOf(got))
	}
}

func TestOverlayDrawsAboveRoot(t *testing.T) {
	s := NewSurface()
	top := hitRect("top", 0, 0, 50, 50)
	top.SetZIndex(1000)
	s.Root().AddChild(top)
	ghost := hitRect("ghost", 0, 0, 50, 50)
	s.Overlay().AddChild(ghost)

	if got := s.ElementAt(10, 10); got != ghost {
		t.Errorf("ElementAt = %s, want ghost", nameOf(got))
	}
	ghost.Interactable = false
	if got := s.ElementAt(10, 10); got != top {
		t.Errorf("with inert ghost ElementAt = %s, want top", nameOf(got))
	}
}

func TestCommandsPainterOrder(t *testing.T) {
	s := NewSurface()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	sprite := NewSprite("sprite", img, Rect{Width: 8, Height: 8})
	frame := NewFrame("frame", 8, 8, ColorWhite, 1)
	sprite.AddChild(frame)
	fill := NewRect("fill", 4, 4, ColorWhite)
	fill.SetZIndex(-1)
	s.Root().AddChild(sprite)
	s.Root().AddChild(fill)
	hidden := NewRect("hidden", 4, 4, ColorWhite)
	hidden.Visible = false
	s.Root().AddChild(hidden)

	cmds := s.Commands()
	want := []string{"fill", "sprite", "frame"}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, name := range want {
		if cmds[i].node.Name != name {
			t.Errorf("command %d = %s, want %s", i, cmds[i].node.Name, name)
		}
	}
	if cmds[1].Type != CommandSprite || cmds[2].Type != CommandStroke || cmds[0].Type != CommandFill {
		t.Error("wrong command types")
	}
}

func TestCommandsMultiplyAlpha(t *testing.T) {
	s := NewSurface()
	parent := NewContainer("p")
	parent.SetAlpha(0.5)
	child := NewRect("c", 4, 4, Color{1, 1, 1, 0.8})
	child.SetAlpha(0.5)
	parent.AddChild(child)
	s.Root().AddChild(parent)

	cmds := s.Commands()
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	if !approxEqual(cmds[0].Color.A, 0.2) {
		t.Errorf("alpha = %v, want 0.2", cmds[0].Color.A)
	}
}

func TestWorldRect(t *testing.T) {
	x, y, w, h := worldRect([6]float64{2, 0, 0, 3, 10, 20}, 5, 5)
	if x != 10 || y != 20 || w != 10 || h != 15 {
		t.Errorf("worldRect = (%v, %v, %v, %v)", x, y, w, h)
	}
}

func nameOf(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}
