package assets

import (
	"image"
	"image/color"
	"image/draw"
)

// Sheet rows follow component.Direction: down, left, right, up.
const (
	sheetRows = 4
	sheetCols = 3
)

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// walkSheet draws a 3x4 grid of frames: a body, a trim stripe that shows
// which way the actor faces, and feet that alternate per frame.
func walkSheet(fw, fh int, body, trim color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fw*sheetCols, fh*sheetRows))
	for row := 0; row < sheetRows; row++ {
		for col := 0; col < sheetCols; col++ {
			ox, oy := col*fw, row*fh
			bodyRect := image.Rect(ox+fw/4, oy+fh/6, ox+fw*3/4, oy+fh*5/6)
			fillRect(img, bodyRect, body)

			var mark image.Rectangle
			switch row {
			case 0:
				mark = image.Rect(bodyRect.Min.X, bodyRect.Min.Y+fh/6, bodyRect.Max.X, bodyRect.Min.Y+fh/4)
			case 1:
				mark = image.Rect(bodyRect.Min.X, bodyRect.Min.Y, bodyRect.Min.X+fw/8, bodyRect.Max.Y)
			case 2:
				mark = image.Rect(bodyRect.Max.X-fw/8, bodyRect.Min.Y, bodyRect.Max.X, bodyRect.Max.Y)
			default:
				mark = image.Rect(bodyRect.Min.X, bodyRect.Min.Y, bodyRect.Max.X, bodyRect.Min.Y+fh/12)
			}
			fillRect(img, mark, trim)

			step := (col - 1) * fw / 12
			footY := oy + fh*5/6
			fillRect(img, image.Rect(ox+fw/3+step, footY, ox+fw/3+step+fw/8, footY+fh/12), trim)
			fillRect(img, image.Rect(ox+fw*2/3-fw/8-step, footY, ox+fw*2/3-step, footY+fh/12), trim)
		}
	}
	return img
}

func portrait(size int, body, trim color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fillRect(img, img.Bounds(), trim)
	fillRect(img, image.Rect(size/8, size/8, size*7/8, size*7/8), body)
	fillRect(img, image.Rect(size/4, size/3, size/4+size/8, size/3+size/8), trim)
	fillRect(img, image.Rect(size*3/4-size/8, size/3, size*3/4, size/3+size/8), trim)
	fillRect(img, image.Rect(size/3, size*2/3, size*2/3, size*2/3+size/16), trim)
	return img
}

// tileStrip lays tiles out left to right so tile i starts at x = i*size.
func tileStrip(size int, colors []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size*len(colors), size))
	for i, c := range colors {
		if c.A == 0 {
			continue
		}
		fillRect(img, image.Rect(i*size, 0, (i+1)*size, size), c)
		edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 0xff}
		fillRect(img, image.Rect(i*size, size-2, (i+1)*size, size), edge)
		fillRect(img, image.Rect((i+1)*size-2, 0, (i+1)*size, size), edge)
	}
	return img
}
