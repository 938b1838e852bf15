package figstudio

import (
	"fmt"
	"image/color"
)

// Per-channel tolerance used when no threshold is configured.
const DefaultCropThreshold uint8 = 10

// BoundingBox holds inclusive pixel coordinates.
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func FullBox(width, height int) BoundingBox {
	return BoundingBox{Left: 0, Top: 0, Right: width - 1, Bottom: height - 1}
}

func (b BoundingBox) Width() int {
	return b.Right - b.Left + 1
}

func (b BoundingBox) Height() int {
	return b.Bottom - b.Top + 1
}

func (b BoundingBox) Within(width, height int) bool {
	return b.Left >= 0 && b.Top >= 0 && b.Left <= b.Right && b.Top <= b.Bottom &&
		b.Right < width && b.Bottom < height
}

// Pad grows the box by padding on every side, clipped to [0,width) x [0,height).
func (b BoundingBox) Pad(padding, width, height int) BoundingBox {
	if padding <= 0 {
		return b
	}

	return BoundingBox{
		Left:   max(b.Left-padding, 0),
		Top:    max(b.Top-padding, 0),
		Right:  min(b.Right+padding, width-1),
		Bottom: min(b.Bottom+padding, height-1),
	}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

type CropOptions struct {
	// A channel further than Threshold from the background marks the pixel as content.
	Threshold uint8
	// Margin added back around the content box, clipped to the image.
	Padding int
	// Defaults to white when nil.
	Background color.Color
	// Use the top-left pixel as background instead of Background.
	SampleCorner bool
}

func DefaultCropOptions() CropOptions {
	return CropOptions{
		Threshold:  DefaultCropThreshold,
		Background: color.White,
	}
}

type CropResult struct {
	Image *Raster
	// Content box before padding. Equals the full image when nothing was found.
	Box BoundingBox
	// Region actually copied into Image, after padding.
	Region BoundingBox
	// False when the input was entirely background.
	Found bool
}

func (o CropOptions) background(r *Raster) []uint8 {
	if o.SampleCorner && !r.Empty() {
		bg := make([]uint8, r.Channels)
		copy(bg, r.At(0, 0))
		return bg
	}

	c := o.Background
	if c == nil {
		c = color.White
	}

	if r.Channels == ChannelsGray {
		return []uint8{lumaOf(c)}
	}
	rgb := rgbOf(c)
	return rgb[:]
}

func isForeground(px, bg []uint8, threshold uint8) bool {
	for i := range px {
		d := int(px[i]) - int(bg[i])
		if d < 0 {
			d = -d
		}
		if d > int(threshold) {
			return true
		}
	}
	return false
}

func rowHasForeground(r *Raster, y, x0, x1 int, bg []uint8, threshold uint8) bool {
	for x := x0; x <= x1; x++ {
		if isForeground(r.At(x, y), bg, threshold) {
			return true
		}
	}
	return false
}

func colHasForeground(r *Raster, x, y0, y1 int, bg []uint8, threshold uint8) bool {
	for y := y0; y <= y1; y++ {
		if isForeground(r.At(x, y), bg, threshold) {
			return true
		}
	}
	return false
}

// FindBoundingBox returns the smallest box holding every foreground pixel.
// When there is none it returns the full image and false.
func FindBoundingBox(r *Raster, opts CropOptions) (BoundingBox, bool) {
	if r.Empty() {
		return BoundingBox{}, false
	}

	full := FullBox(r.Width, r.Height)
	bg := opts.background(r)

	top := 0
	for top < r.Height && !rowHasForeground(r, top, 0, r.Width-1, bg, opts.Threshold) {
		top++
	}
	if top == r.Height {
		return full, false
	}

	bottom := r.Height - 1
	for bottom > top && !rowHasForeground(r, bottom, 0, r.Width-1, bg, opts.Threshold) {
		bottom--
	}

	// columns only need scanning between the rows we already know about
	left := 0
	for !colHasForeground(r, left, top, bottom, bg, opts.Threshold) {
		left++
	}

	right := r.Width - 1
	for right > left && !colHasForeground(r, right, top, bottom, bg, opts.Threshold) {
		right--
	}

	return BoundingBox{Left: left, Top: top, Right: right, Bottom: bottom}, true
}

// AutoCrop trims background margins from r. An all-background raster comes
// back as an uncropped copy. It never fails.
func AutoCrop(r *Raster, opts CropOptions) CropResult {
	if r == nil {
		return CropResult{}
	}
	if r.Empty() {
		return CropResult{Image: r.Clone()}
	}

	box, found := FindBoundingBox(r, opts)
	if !found {
		return CropResult{Image: r.Clone(), Box: box, Region: box}
	}

	region := box.Pad(opts.Padding, r.Width, r.Height)
	out, err := r.SubRaster(region)
	if err != nil {
		// region is derived from r so this only happens on a corrupt raster
		return CropResult{Image: r.Clone(), Box: FullBox(r.Width, r.Height), Region: FullBox(r.Width, r.Height)}
	}

	return CropResult{Image: out, Box: box, Region: region, Found: true}
}
