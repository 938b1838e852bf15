package figstudio

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Requires MuPDF through cgo.
type fitzRasterizer struct {
	doc *fitz.Document
}

// FitzOpener is the production Opener backed by MuPDF.
func FitzOpener(pdf []byte) (Rasterizer, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}
	return &fitzRasterizer{doc: doc}, nil
}

func (f *fitzRasterizer) PageCount() int {
	return f.doc.NumPage()
}

func (f *fitzRasterizer) Rasterize(page int, dpi int) (*Raster, error) {
	img, err := f.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", page+1, err)
	}
	return RasterFromImage(img), nil
}

func (f *fitzRasterizer) Close() error {
	return f.doc.Close()
}
