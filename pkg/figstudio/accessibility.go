package figstudio

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// GrayscaleScore rates 0-100 how well a figure survives grayscale printing.
// Mass in the extremes of the luma histogram raises the score, mid-gray mass lowers it.
func GrayscaleScore(img image.Image) float64 {
	gray := RasterFromImage(img).Gray()

	var hist [256]int
	for _, v := range gray.Pix {
		hist[v]++
	}

	total := len(gray.Pix)
	if total == 0 {
		return 0
	}

	sum := func(from, to int) float64 {
		n := 0
		for _, c := range hist[from:to] {
			n += c
		}
		return float64(n) / float64(total)
	}

	low, high, mid := sum(0, 32), sum(224, 256), sum(96, 160)
	score := (high+low)*100 - mid*15
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*100) / 100
}

func GrayscalePreview(img image.Image) image.Image {
	return RasterFromImage(img).Gray().Image()
}

// Strength of the green channel in the color-blind preview.
const colorBlindGreenFactor = 0.35

// ColorBlindPreview approximates how a deuteranope sees img by damping green.
func ColorBlindPreview(img image.Image) image.Image {
	r := RasterFromImage(img)
	for i := 1; i < len(r.Pix); i += ChannelsRGB {
		r.Pix[i] = uint8(math.Round(float64(r.Pix[i]) * colorBlindGreenFactor))
	}
	return r.Image()
}

// Thumbnail shrinks img to fit within maxSize x maxSize, keeping the aspect
// ratio. Images that already fit are returned as they are.
func Thumbnail(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	scale := math.Min(float64(maxSize)/float64(w), float64(maxSize)/float64(h))
	tw := max(int(math.Round(float64(w)*scale)), 1)
	th := max(int(math.Round(float64(h)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
