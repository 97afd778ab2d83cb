package tileswap

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerKind is one step of the press -> move -> release gesture protocol.
type PointerKind uint8

const (
	PointerPress   PointerKind = iota // contact began
	PointerMove                       // contact (or hovering mouse) moved
	PointerRelease                    // contact ended
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Device identifies the hardware a pointer event came from.
type Device uint8

const (
	DeviceMouse Device = iota // left mouse button
	DeviceTouch               // first finger of a touch screen
	DeviceSynthetic           // injected by InjectPress and friends
)

// PointerEvent is a single device-independent pointer step in screen
// coordinates.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	Device Device
}

// PointerInput turns one input device into PointerEvents. Poll is called once
// per frame and appends the events observed since the previous call.
type PointerInput interface {
	Poll(buf []PointerEvent) []PointerEvent
	// Captured reports whether the device is in the middle of a gesture that
	// other widgets must not see.
	Captured() bool
}

// --- Mouse ---

// MouseInput adapts the left mouse button. The cursor is tracked across the
// whole window, so a drag that leaves a tile is still followed and released.
type MouseInput struct {
	down         bool
	lastX, lastY float64
	seen         bool

	// cursor and pressed default to Ebitengine's polling functions and are
	// replaced in tests.
	cursor  func() (int, int)
	pressed func() bool
}

// NewMouseInput creates a mouse adapter reading Ebitengine's cursor state.
func NewMouseInput() *MouseInput {
	return &MouseInput{
		cursor: ebiten.CursorPosition,
		pressed: func() bool {
			return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		},
	}
}

// Poll implements PointerInput.
func (m *MouseInput) Poll(buf []PointerEvent) []PointerEvent {
	cx, cy := m.cursor()
	x, y := float64(cx), float64(cy)
	pressed := m.pressed()
	moved := !m.seen || x != m.lastX || y != m.lastY
	m.seen = true

	switch {
	case pressed && !m.down:
		m.down = true
		buf = append(buf, PointerEvent{Kind: PointerPress, X: x, Y: y, Device: DeviceMouse})
	case !pressed && m.down:
		m.down = false
		if moved {
			buf = append(buf, PointerEvent{Kind: PointerMove, X: x, Y: y, Device: DeviceMouse})
		}
		buf = append(buf, PointerEvent{Kind: PointerRelease, X: x, Y: y, Device: DeviceMouse})
	case moved:
		buf = append(buf, PointerEvent{Kind: PointerMove, X: x, Y: y, Device: DeviceMouse})
	}
	m.lastX, m.lastY = x, y
	return buf
}

// Captured implements PointerInput. The mouse never hides its gestures.
func (m *MouseInput) Captured() bool {
	return false
}

// --- Touch ---

// TouchInput adapts a touch screen to a single pointer. Only a lone first
// finger starts a gesture: a touch that lands while another finger is already
// down, or together with another finger, is ignored for its whole lifetime.
// The gesture ends when the tracked finger lifts, at its last known position.
type TouchInput struct {
	active       bool
	id           ebiten.TouchID
	lastX, lastY float64

	prev []ebiten.TouchID
	cur  []ebiten.TouchID

	touchIDs func([]ebiten.TouchID) []ebiten.TouchID
	position func(ebiten.TouchID) (int, int)
}

// NewTouchInput creates a touch adapter reading Ebitengine's touch state.
func NewTouchInput() *TouchInput {
	return &TouchInput{
		touchIDs: ebiten.AppendTouchIDs,
		position: ebiten.TouchPosition,
	}
}

// Poll implements PointerInput.
func (t *TouchInput) Poll(buf []PointerEvent) []PointerEvent {
	t.cur = t.touchIDs(t.cur[:0])

	if t.active {
		if !slices.Contains(t.cur, t.id) {
			t.active = false
			buf = append(buf, PointerEvent{Kind: PointerRelease, X: t.lastX, Y: t.lastY, Device: DeviceTouch})
		} else {
			tx, ty := t.position(t.id)
			x, y := float64(tx), float64(ty)
			if x != t.lastX || y != t.lastY {
				t.lastX, t.lastY = x, y
				buf = append(buf, PointerEvent{Kind: PointerMove, X: x, Y: y, Device: DeviceTouch})
			}
		}
	} else if len(t.cur) == 1 && len(t.prev) == 0 {
		t.active = true
		t.id = t.cur[0]
		tx, ty := t.position(t.id)
		t.lastX, t.lastY = float64(tx), float64(ty)
		buf = append(buf, PointerEvent{Kind: PointerPress, X: t.lastX, Y: t.lastY, Device: DeviceTouch})
	}

	t.prev = append(t.prev[:0], t.cur...)
	return buf
}

// Captured implements PointerInput. A tracked finger owns the screen: its
// moves must not scroll or press anything else.
func (t *TouchInput) Captured() bool {
	return t.active
}
