package assets

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var quietLogger = log.New(io.Discard, "", 0)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}, true},
		{" RoyalBlue ", color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}, true},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, true},
		{"", color.RGBA{}, true},
		{"#12", color.RGBA{}, false},
		{"plaid", color.RGBA{}, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if (err == nil) != c.ok {
				t.Fatalf("err = %v, ok want %v", err, c.ok)
			}
			if got != c.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestLoaderBecomesReady(t *testing.T) {
	l := NewLoader("", quietLogger)
	if l.Ready() {
		t.Fatalf("ready before start")
	}
	l.Start()
	deadline := time.After(5 * time.Second)
	for !l.Ready() {
		select {
		case <-deadline:
			t.Fatalf("loader never became ready")
		case <-time.After(time.Millisecond):
		}
	}
	if err := l.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	img, ok := l.Image(Key(KindSprite, "player"))
	if !ok {
		t.Fatalf("player sheet missing")
	}
	p := l.Palette()
	if b := img.Bounds(); b.Dx() != p.FrameW*sheetCols || b.Dy() != p.FrameH*sheetRows {
		t.Fatalf("sheet bounds = %v", b)
	}
	if _, ok := l.Image(Key(KindTileset, "town")); !ok {
		t.Fatalf("town tileset missing")
	}
}

func TestPortraitNamespace(t *testing.T) {
	l := NewLoader("", quietLogger)
	if err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	portraits := l.Portraits()
	cases := []struct {
		name string
		want bool
	}{
		{"mayor", true},
		{"oncall", true},
		{"", false},
		{"ghost", false},
		{"player", false},
	}
	for _, c := range cases {
		if got := portraits.HasImage(c.name); got != c.want {
			t.Fatalf("HasImage(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, KindPortrait), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(dir, KindPortrait, "ghost.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 7, 7))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := os.WriteFile(filepath.Join(dir, KindPortrait, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, quietLogger)
	if err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	img, ok := l.Image(Key(KindPortrait, "ghost"))
	if !ok || img.Bounds().Dx() != 7 {
		t.Fatalf("override not loaded")
	}
	if l.Portraits().HasImage("broken") {
		t.Fatalf("undecodable png should be skipped")
	}
}

func TestWalkSheetFramesDiffer(t *testing.T) {
	sheet := walkSheet(48, 48, color.RGBA{B: 0xff, A: 0xff}, color.RGBA{R: 0xff, A: 0xff})
	frame := func(col, row int) []uint8 {
		sub := sheet.SubImage(image.Rect(col*48, row*48, (col+1)*48, (row+1)*48)).(*image.RGBA)
		out := []uint8{}
		for y := sub.Rect.Min.Y; y < sub.Rect.Max.Y; y++ {
			i := sub.PixOffset(sub.Rect.Min.X, y)
			out = append(out, sub.Pix[i:i+48*4]...)
		}
		return out
	}
	if string(frame(0, 0)) == string(frame(2, 0)) {
		t.Fatalf("walk frames should differ")
	}
	if string(frame(1, 1)) == string(frame(1, 2)) {
		t.Fatalf("left and right rows should differ")
	}
}
