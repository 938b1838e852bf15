package figstudio

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type PanelOptions struct {
	Columns    int
	Spacing    int
	Background color.Color
	Labels     bool
	LabelColor color.Color
}

func DefaultPanelOptions() PanelOptions {
	return PanelOptions{
		Columns:    2,
		Spacing:    20,
		Background: color.White,
		Labels:     true,
		LabelColor: color.Black,
	}
}

// Offset of a panel label from the panel's top-left corner.
const panelLabelInset = 10

// PanelLabel returns "A" for 0, "B" for 1 and so on, then "AA", "AB".
func PanelLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

// PanelSize is the canvas size ComposePanel will produce.
func PanelSize(sizes []image.Point, columns, spacing int) image.Point {
	if len(sizes) == 0 || columns < 1 {
		return image.Point{}
	}

	var cell image.Point
	for _, s := range sizes {
		cell.X = max(cell.X, s.X)
		cell.Y = max(cell.Y, s.Y)
	}

	rows := (len(sizes) + columns - 1) / columns
	return image.Point{
		X: columns*cell.X + (columns+1)*spacing,
		Y: rows*cell.Y + (rows+1)*spacing,
	}
}

// ComposePanel lays images out on a grid of equal cells sized to the largest
// image, left to right then top to bottom.
func ComposePanel(images []image.Image, opts PanelOptions) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no panels to compose: %w", ErrInvalidInput)
	}
	if opts.Columns < 1 {
		return nil, fmt.Errorf("columns must be at least 1, but got %d: %w", opts.Columns, ErrInvalidInput)
	}
	if opts.Spacing < 0 {
		return nil, fmt.Errorf("spacing must not be negative, but got %d: %w", opts.Spacing, ErrInvalidInput)
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.LabelColor == nil {
		opts.LabelColor = color.Black
	}

	sizes := make([]image.Point, len(images))
	var cell image.Point
	for i, img := range images {
		sizes[i] = img.Bounds().Size()
		cell.X = max(cell.X, sizes[i].X)
		cell.Y = max(cell.Y, sizes[i].Y)
	}

	size := PanelSize(sizes, opts.Columns, opts.Spacing)
	canvas := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()

	for i, img := range images {
		row, col := i/opts.Columns, i%opts.Columns
		x := opts.Spacing + col*(cell.X+opts.Spacing)
		y := opts.Spacing + row*(cell.Y+opts.Spacing)

		b := img.Bounds()
		draw.Draw(canvas, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)

		if opts.Labels {
			d := &font.Drawer{
				Dst:  canvas,
				Src:  image.NewUniform(opts.LabelColor),
				Face: face,
				Dot:  fixed.P(x+panelLabelInset, y+panelLabelInset+ascent),
			}
			d.DrawString(PanelLabel(i))
		}
	}

	return canvas, nil
}
