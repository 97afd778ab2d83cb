package tileswap

// Surface owns the element tree the game draws and hit-tests against. It is
// the puzzle's rendering collaborator: elements are created as Nodes, added
// under Root or Overlay, positioned and sized through Node fields, and queried
// with ElementAt, Node.Closest and Node.Bounds.
type Surface struct {
	root    *Node
	overlay *Node
	debug   bool

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color

	hitBuf   []*Node
	commands []RenderCommand
}

// overlayZ keeps the overlay above everything else added to the root.
const overlayZ = 1 << 20

// NewSurface creates a surface with a root container and an overlay layer
// drawn above all other content.
func NewSurface() *Surface {
	root := NewContainer("root")
	root.Interactable = true
	overlay := NewContainer("overlay")
	overlay.Interactable = true
	overlay.ZIndex = overlayZ
	root.AddChild(overlay)
	return &Surface{root: root, overlay: overlay}
}

// Root returns the surface's root container node.
func (s *Surface) Root() *Node {
	return s.root
}

// Overlay returns the topmost layer. Nodes added here draw above the root's
// other children regardless of their ZIndex.
func (s *Surface) Overlay() *Node {
	return s.overlay
}

// Refresh recomputes world transforms for the whole tree.
func (s *Surface) Refresh() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// SetDebugMode enables or disables debug checks on tree operations.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Surface debug flag so that node
// operations (which lack a Surface pointer) can check it cheaply.
var globalDebug bool

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's local bounds.
// Nodes with no size are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.Width <= 0 || n.Height <= 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Width > 0 && n.Height > 0 {
		buf = append(buf, n)
	}
	for _, child := range sortedChildrenOf(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// ElementAt returns the topmost visible, interactable node whose bounds
// contain the screen point (x, y), or nil if nothing is there.
func (s *Surface) ElementAt(x, y float64) *Node {
	s.Refresh()
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}
