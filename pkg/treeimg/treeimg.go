// Package treeimg renders the indented tree dump as a bitmap using the
// 7x13 fixed font from golang.org/x/image.
package treeimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"minicc/pkg/compiler"
)

const (
	margin     = 8
	glyphWidth = 7
	lineHeight = 13
	indent     = 2 // columns per tree level, same as compiler.PrintTree

	// MaxSide and MaxPixels bound the bitmap Render will allocate.
	MaxSide   = 16384
	MaxPixels = 16 << 20
)

var ErrImageTooLarge = errors.New("tree image too large")

var (
	background = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	foreground = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	edge       = color.RGBA{0xB0, 0xB0, 0xB0, 0xFF}
)

type row struct {
	depth int
	text  string
}

// Render draws one row per node, indented by depth, with a short guide line
// to the left of every non-root node. Trees whose bitmap would exceed MaxSide
// or MaxPixels fail with ErrImageTooLarge before anything is allocated.
func Render(root *compiler.Node) (*image.RGBA, error) {
	const maxRows = (MaxSide - 2*margin) / lineHeight
	const maxCols = (MaxSide - 2*margin) / glyphWidth

	var rows []row
	cols := 1
	for depth, n := range compiler.Preorder(root) {
		if len(rows) == maxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrImageTooLarge, maxRows)
		}
		rows = append(rows, row{depth, n.Text})
		if w := depth*indent + len(n.Text); w > cols {
			if w > maxCols {
				return nil, fmt.Errorf("%w: row %d is %d columns wide, limit %d", ErrImageTooLarge, len(rows), w, maxCols)
			}
			cols = w
		}
	}

	width := 2*margin + cols*glyphWidth
	height := 2*margin + max(len(rows), 1)*lineHeight
	if width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, MaxPixels)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(foreground), Face: face}
	for i, r := range rows {
		top := margin + i*lineHeight
		x := margin + r.depth*indent*glyphWidth
		if r.depth > 0 {
			y := top + lineHeight/2
			for gx := x - indent*glyphWidth + glyphWidth/2; gx < x-1; gx++ {
				img.Set(gx, y, edge)
			}
		}
		d.Dot = fixed.P(x, top+face.Ascent)
		d.DrawString(strings.TrimSpace(r.text))
	}
	return img, nil
}

// WritePNG encodes Render(root) as PNG. Nothing is written to w when the
// tree is too large to render.
func WritePNG(w io.Writer, root *compiler.Node) error {
	img, err := Render(root)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
