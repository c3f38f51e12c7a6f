package main

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/rast3d"
)

// drawStats prints the frame statistics in the top-left corner of img.
func drawStats(img *image.NRGBA, s rast3d.FrameStats, workers int) {
	lines := []string{
		fmt.Sprintf("objects %d  skipped %d", s.Objects, s.Skipped),
		fmt.Sprintf("triangles %d  clipped %d", s.Packets, s.Clipped),
		fmt.Sprintf("tiles %d  bindings %d  workers %d", s.Tiles, s.TileBindings, workers),
	}

	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
	}
	lineHeight := face.Metrics().Height
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(6),
			Y: fixed.I(6) + face.Metrics().Ascent + lineHeight.Mul(fixed.I(i)),
		}
		d.DrawString(line)
	}
}
