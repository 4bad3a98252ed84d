package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/townfolk/assets"
	"github.com/milk9111/townfolk/ecs/render"
	"github.com/milk9111/townfolk/ecs/system"
)

const dialoguePanelHeight = 160

var (
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	speakerColor = color.NRGBA{R: 0xff, G: 0xd8, B: 0x4a, A: 0xff}
	hintColor    = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// DialogueUI is the conversation box along the bottom of the screen. It is
// refreshed from the snapshot each frame and drawn only while a
// conversation is open.
type DialogueUI struct {
	ui       *ebitenui.UI
	images   *render.Registry
	portrait *widget.Graphic
	speaker  *widget.Text
	body     *widget.Text
	hint     *widget.Text
	open     bool
}

func NewDialogueUI(images *render.Registry, width int) *DialogueUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 210})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	d := &DialogueUI{images: images}

	d.portrait = widget.NewGraphic(
		widget.GraphicOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 96)),
	)
	d.speaker = widget.NewText(widget.TextOpts.Text("", &face, speakerColor))
	d.body = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
		widget.TextOpts.MaxWidth(float64(width-180)),
	)
	d.hint = widget.NewText(widget.TextOpts.Text("", &face, hintColor))

	column := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	column.AddChild(d.speaker)
	column.AddChild(d.body)
	column.AddChild(d.hint)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width-32, dialoguePanelHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(d.portrait)
	panel.AddChild(column)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout(
		widget.AnchorLayoutOpts.Padding(&widget.Insets{Bottom: 16}),
	)))
	root.AddChild(panel)
	d.ui = &ebitenui.UI{Container: root}
	return d
}

// Sync copies the open conversation, if any, into the widgets.
func (d *DialogueUI) Sync(snap system.Snapshot) {
	v := snap.Dialogue
	d.open = v != nil
	if v == nil {
		return
	}
	d.speaker.Label = v.Speaker
	d.body.Label = v.Text

	hint := fmt.Sprintf("%d/%d", v.Line+1, v.TotalLines)
	if v.LineComplete {
		hint += "   [Space] continue"
	}
	d.hint.Label = hint + "   [Esc] leave"

	d.portrait.Image = nil
	if v.HasPortrait && d.images != nil {
		d.portrait.Image = d.images.Image(assets.Key(assets.KindPortrait, v.Portrait))
	}
	d.ui.Update()
}

func (d *DialogueUI) Draw(screen *ebiten.Image) {
	if d.open {
		d.ui.Draw(screen)
	}
}
