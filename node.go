package tileswap

import "image"

// nodeIDCounter is a plain counter (no atomic; the element tree is only
// touched from the game goroutine).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a visual element on the Surface: the board, a tile, a tile's frame,
// the drag ghost. A single flat struct is used for all node types.
//
// Width and Height are the node's local size before scaling. Sprites draw
// Crop (in source image pixels) stretched to that size, so fractional tile
// sizes render without gaps.
type Node struct {
	// Identity
	ID    uint32
	Name  string
	Class string
	Type  NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y           float64
	Width, Height  float64
	ScaleX, ScaleY float64
	PivotX, PivotY float64

	// Computed during updateWorldTransform
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering among siblings; higher draws later and hit-tests first.
	ZIndex int

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite)
	Image image.Image
	Crop  Rect

	// Fill color for NodeTypeRect, stroke color for NodeTypeFrame, tint for
	// sprites.
	Color       Color
	StrokeWidth float64

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws the crop region of img.
// The node's size defaults to the crop size.
func NewSprite(name string, img image.Image, crop Rect) *Node {
	n := &Node{
		Name:   name,
		Type:   NodeTypeSprite,
		Image:  img,
		Crop:   crop,
		Width:  crop.Width,
		Height: crop.Height,
	}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle of the given size and color.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewFrame creates a rectangle outline of the given size, color and stroke width.
func NewFrame(name string, w, h float64, c Color, stroke float64) *Node {
	n := &Node{Name: name, Type: NodeTypeFrame, Width: w, Height: h, StrokeWidth: stroke}
	nodeDefaults(n)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("tileswap: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("tileswap: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("tileswap: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Closest returns the nearest node, starting with n itself and walking up
// through its ancestors, whose Class equals class. Returns nil if none match.
func (n *Node) Closest(class string) *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Class == class {
			return p
		}
	}
	return nil
}

// Clone returns a detached deep copy of n and its subtree. The copy has fresh
// IDs and no parent; UserData is shared.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:         n.Name,
		Class:        n.Class,
		Type:         n.Type,
		X:            n.X,
		Y:            n.Y,
		Width:        n.Width,
		Height:       n.Height,
		ScaleX:       n.ScaleX,
		ScaleY:       n.ScaleY,
		PivotX:       n.PivotX,
		PivotY:       n.PivotY,
		Alpha:        n.Alpha,
		Visible:      n.Visible,
		Interactable: n.Interactable,
		ZIndex:       n.ZIndex,
		UserData:     n.UserData,
		Image:        n.Image,
		Crop:         n.Crop,
		Color:        n.Color,
		StrokeWidth:  n.StrokeWidth,
	}
	c.ID = nextNodeID()
	c.transformDirty = true
	c.childrenSorted = true
	for _, child := range n.children {
		c.AddChild(child.Clone())
	}
	return c
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Image = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// sortedChildrenOf returns n's children in ZIndex order, rebuilding the cached
// order if it is stale. Uses insertion sort: stable and O(n) when nearly sorted.
func sortedChildrenOf(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		nc := len(n.children)
		if cap(n.sortedChildren) < nc {
			n.sortedChildren = make([]*Node, nc)
		}
		n.sortedChildren = n.sortedChildren[:nc]
		copy(n.sortedChildren, n.children)
		for i := 1; i < nc; i++ {
			key := n.sortedChildren[i]
			j := i - 1
			for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
				n.sortedChildren[j+1] = n.sortedChildren[j]
				j--
			}
			n.sortedChildren[j+1] = key
		}
		n.childrenSorted = true
	}
	if n.sortedChildren == nil || len(n.sortedChildren) != len(n.children) {
		return n.children
	}
	return n.sortedChildren
}
