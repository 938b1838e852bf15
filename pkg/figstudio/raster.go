package figstudio

import (
	"fmt"
	"image"
	"image/color"
)

const (
	ChannelsGray = 1
	ChannelsRGB  = 3
)

// Raster is an owned pixel buffer. Pix is row-major with Channels bytes per pixel.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

func NewRaster(width, height, channels int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if channels != ChannelsGray {
		channels = ChannelsRGB
	}

	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// NewFilledRaster returns an RGB raster painted with c.
func NewFilledRaster(width, height int, c color.Color) *Raster {
	r := NewRaster(width, height, ChannelsRGB)
	px := rgbOf(c)
	for i := 0; i < len(r.Pix); i += ChannelsRGB {
		copy(r.Pix[i:i+ChannelsRGB], px[:])
	}
	return r
}

// RasterFromImage copies img into an RGB raster. Translucent pixels are
// composited onto white so that transparent margins count as background.
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy(), ChannelsRGB)

	// fast path for what go-fitz and image/png hand back most of the time
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < r.Height; y++ {
			src := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := r.Pix[y*r.stride():]
			for x := 0; x < r.Width; x++ {
				a := uint32(src[x*4+3])
				dst[x*3+0] = uint8(uint32(src[x*4+0]) + 255 - a)
				dst[x*3+1] = uint8(uint32(src[x*4+1]) + 255 - a)
				dst[x*3+2] = uint8(uint32(src[x*4+2]) + 255 - a)
			}
		}
		return r
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			px := rgbOf(img.At(b.Min.X+x, b.Min.Y+y))
			copy(r.Pix[r.offset(x, y):], px[:])
		}
	}
	return r
}

func (r *Raster) stride() int {
	return r.Width * r.Channels
}

func (r *Raster) offset(x, y int) int {
	return y*r.stride() + x*r.Channels
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

func (r *Raster) Empty() bool {
	return r == nil || r.Width == 0 || r.Height == 0
}

// At returns the channel values of the pixel at (x, y). The slice aliases Pix.
func (r *Raster) At(x, y int) []uint8 {
	o := r.offset(x, y)
	return r.Pix[o : o+r.Channels]
}

func (r *Raster) Set(x, y int, c color.Color) {
	px := r.At(x, y)
	if r.Channels == ChannelsGray {
		px[0] = lumaOf(c)
		return
	}
	rgb := rgbOf(c)
	copy(px, rgb[:])
}

// FillRect paints the half-open rectangle rect clipped to the raster.
func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(r.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.Set(x, y, c)
		}
	}
}

func (r *Raster) Clone() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Channels: r.Channels, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// SubRaster copies the inclusive box out of r.
func (r *Raster) SubRaster(box BoundingBox) (*Raster, error) {
	if !box.Within(r.Width, r.Height) {
		return nil, fmt.Errorf("box %v is outside of %dx%d raster: %w", box, r.Width, r.Height, ErrInvalidInput)
	}

	out := NewRaster(box.Width(), box.Height(), r.Channels)
	rowLen := out.stride()
	for y := 0; y < out.Height; y++ {
		src := r.offset(box.Left, box.Top+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], r.Pix[src:src+rowLen])
	}
	return out, nil
}

// Gray converts r to a single channel raster using BT.601 luma weights.
func (r *Raster) Gray() *Raster {
	if r.Channels == ChannelsGray {
		return r.Clone()
	}

	out := NewRaster(r.Width, r.Height, ChannelsGray)
	for i, j := 0, 0; i < len(r.Pix); i, j = i+r.Channels, j+1 {
		out.Pix[j] = luma(r.Pix[i], r.Pix[i+1], r.Pix[i+2])
	}
	return out
}

// Image exposes the raster as an image.Image for encoding.
func (r *Raster) Image() image.Image {
	if r.Channels == ChannelsGray {
		img := image.NewGray(r.Bounds())
		copy(img.Pix, r.Pix)
		return img
	}

	img := image.NewRGBA(r.Bounds())
	for i, j := 0, 0; i < len(r.Pix); i, j = i+ChannelsRGB, j+4 {
		img.Pix[j+0] = r.Pix[i+0]
		img.Pix[j+1] = r.Pix[i+1]
		img.Pix[j+2] = r.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

func luma(r, g, b uint8) uint8 {
	// same integer weights PIL uses for "L" conversion
	return uint8((uint32(r)*299 + uint32(g)*587 + uint32(b)*114 + 500) / 1000)
}

func lumaOf(c color.Color) uint8 {
	rgb := rgbOf(c)
	return luma(rgb[0], rgb[1], rgb[2])
}

// rgbOf flattens c onto white.
func rgbOf(c color.Color) [3]uint8 {
	r, g, b, a := c.RGBA()
	return [3]uint8{
		uint8((r + 0xffff - a) >> 8),
		uint8((g + 0xffff - a) >> 8),
		uint8((b + 0xffff - a) >> 8),
	}
}
