package tileswap

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage of a cropped source image
	CommandFill                      // filled rectangle
	CommandStroke                    // rectangle outline
)

// RenderCommand is a single draw instruction emitted during tree traversal.
// Commands come out in painter order, so the list can be submitted as is.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Width     float64 // node-local size the command covers
	Height    float64
	Color     Color // tint (sprites) or paint color, alpha already multiplied
	Stroke    float64
	Image     image.Image
	Crop      Rect
	node      *Node
}

// collectCommands walks the tree depth-first in ZIndex order, refreshing
// world transforms and appending a command for every visible drawable node.
func collectCommands(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, buf []RenderCommand) []RenderCommand {
	if !n.Visible {
		return buf
	}
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
	switch n.Type {
	case NodeTypeSprite:
		if n.Image != nil && n.Crop.Width > 0 && n.Crop.Height > 0 {
			buf = append(buf, RenderCommand{
				Type: CommandSprite, Transform: n.worldTransform,
				Width: n.Width, Height: n.Height,
				Color: tint, Image: n.Image, Crop: n.Crop, node: n,
			})
		}
	case NodeTypeRect:
		buf = append(buf, RenderCommand{
			Type: CommandFill, Transform: n.worldTransform,
			Width: n.Width, Height: n.Height, Color: tint, node: n,
		})
	case NodeTypeFrame:
		if n.StrokeWidth > 0 {
			buf = append(buf, RenderCommand{
				Type: CommandStroke, Transform: n.worldTransform,
				Width: n.Width, Height: n.Height, Color: tint,
				Stroke: n.StrokeWidth, node: n,
			})
		}
	}

	for _, child := range sortedChildrenOf(n) {
		buf = collectCommands(child, n.worldTransform, n.worldAlpha, recompute, buf)
	}
	return buf
}

// textureCache holds the GPU copy of every source image drawn so far.
// Images are uploaded on first draw so the rest of the package can work with
// plain image.Image values.
type textureCache struct {
	images map[image.Image]*ebiten.Image
}

func (c *textureCache) get(img image.Image) *ebiten.Image {
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	if c.images == nil {
		c.images = make(map[image.Image]*ebiten.Image)
	}
	if t, ok := c.images[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	c.images[img] = t
	return t
}

// clear drops every cached texture.
func (c *textureCache) clear() {
	for _, t := range c.images {
		t.Deallocate()
	}
	clear(c.images)
}

// draw renders the tree onto screen.
func (s *Surface) draw(screen *ebiten.Image, textures *textureCache, stats *debugStats) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.commands = collectCommands(s.root, identityTransform, 1, false, s.commands[:0])
	for i := range s.commands {
		submitCommand(screen, &s.commands[i], textures)
	}
	if stats != nil {
		stats.commandCount = len(s.commands)
	}
}

// Commands collects the draw list for the current tree without drawing it.
// The returned slice is reused by the next call or frame.
func (s *Surface) Commands() []RenderCommand {
	s.commands = collectCommands(s.root, identityTransform, 1, false, s.commands[:0])
	return s.commands
}

// submitCommand draws one command. Transforms only ever scale and translate,
// so rectangles stay axis-aligned and can go through the vector package.
func submitCommand(screen *ebiten.Image, cmd *RenderCommand, textures *textureCache) {
	m := cmd.Transform
	switch cmd.Type {
	case CommandSprite:
		src := textures.get(cmd.Image)
		r := image.Rect(
			int(math.Floor(cmd.Crop.X)), int(math.Floor(cmd.Crop.Y)),
			int(math.Ceil(cmd.Crop.X+cmd.Crop.Width)), int(math.Ceil(cmd.Crop.Y+cmd.Crop.Height)),
		)
		sub, ok := src.SubImage(r).(*ebiten.Image)
		if !ok || r.Dx() <= 0 || r.Dy() <= 0 {
			return
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(cmd.Width/float64(r.Dx()), cmd.Height/float64(r.Dy()))
		op.GeoM.Concat(geoM(m))
		op.ColorScale.Scale(float32(cmd.Color.R*cmd.Color.A), float32(cmd.Color.G*cmd.Color.A),
			float32(cmd.Color.B*cmd.Color.A), float32(cmd.Color.A))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(sub, &op)
	case CommandFill:
		x, y, w, h := worldRect(m, cmd.Width, cmd.Height)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), cmd.Color.toRGBA(), false)
	case CommandStroke:
		x, y, w, h := worldRect(m, cmd.Width, cmd.Height)
		sw := cmd.Stroke * math.Abs(m[0])
		// StrokeRect centers the line on the edge; inset so the stroke stays
		// inside the node like a border-box outline.
		vector.StrokeRect(screen, float32(x+sw/2), float32(y+sw/2), float32(w-sw), float32(h-sw),
			float32(sw), cmd.Color.toRGBA(), false)
	}
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// worldRect maps the local rectangle (0, 0, w, h) through m.
func worldRect(m [6]float64, w, h float64) (x, y, width, height float64) {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, h)
	return math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1 - x0), math.Abs(y1 - y0)
}
