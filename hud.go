package tileswap

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// hud is the widget layer: a win banner and a next-level button stacked
// under the board. Both start hidden.
type hud struct {
	ui      *ebitenui.UI
	panel   *widget.Container
	banner  *widget.Text
	advance *widget.Button
}

// newHUD builds the widget layer for g. The button advances g.
func newHUD(g *Game) (*hud, error) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 220})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0xED, G: 0x1D, B: 0x24, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0xF5, G: 0x4A, B: 0x50, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0xB0, G: 0x12, B: 0x18, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	h := &hud{}
	h.banner = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	h.advance = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}),
		widget.ButtonOpts.Text("Next level", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(center, widget.WidgetOpts.MinSize(120, 28)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			g.Advance()
		}),
	)

	h.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	h.panel.AddChild(h.banner)
	h.panel.AddChild(h.advance)
	h.panel.GetWidget().Visibility = widget.Visibility_Hide
	h.advance.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(h.panel)
	h.ui = &ebitenui.UI{Container: root}
	return h, nil
}

func (h *hud) Update() {
	h.ui.Update()
}

func (h *hud) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

// SetBanner shows or hides the win banner with the given message.
func (h *hud) SetBanner(visible bool, text string) {
	h.banner.Label = text
	setVisible(h.panel.GetWidget(), visible)
	h.panel.RequestRelayout()
}

// SetAdvance shows or hides the next-level button.
func (h *hud) SetAdvance(visible bool) {
	setVisible(h.advance.GetWidget(), visible)
	h.panel.RequestRelayout()
}

func setVisible(w *widget.Widget, visible bool) {
	if visible {
		w.Visibility = widget.Visibility_Show
	} else {
		w.Visibility = widget.Visibility_Hide
	}
}
