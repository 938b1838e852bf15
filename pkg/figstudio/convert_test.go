package figstudio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type rasterizeCall struct {
	Page int
	DPI  int
}

// recordingRasterizer hands out a 100x100 page with a 10x10 square and
// remembers every call it receives.
type recordingRasterizer struct {
	pages  int
	calls  []rasterizeCall
	closed bool
}

func (r *recordingRasterizer) PageCount() int { return r.pages }

func (r *recordingRasterizer) Rasterize(page int, dpi int) (*Raster, error) {
	r.calls = append(r.calls, rasterizeCall{Page: page, DPI: dpi})
	img := whiteRaster(100, 100)
	img.FillRect(image.Rect(45, 45, 55, 55), color.Black)
	return img, nil
}

func (r *recordingRasterizer) Close() error {
	r.closed = true
	return nil
}

func newStubConverter(stub *recordingRasterizer) *Converter {
	open := func(pdf []byte) (Rasterizer, error) { return stub, nil }
	return NewConverter(open, DefaultDPIs, nil, WithoutPdfValidation())
}

func TestConvertPassesSelectedDPI(t *testing.T) {
	stub := &recordingRasterizer{pages: 1}
	c := newStubConverter(stub)

	pages, err := c.Convert(ConversionRequest{Name: "fig.pdf", PDF: []byte("stub"), DPI: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []rasterizeCall{{Page: 0, DPI: 600}}
	if diff := cmp.Diff(want, stub.calls); diff != "" {
		t.Errorf("rasterizer calls mismatch (-want +got):\n%s", diff)
	}
	if len(pages) != 1 || pages[0].DPI != 600 {
		t.Errorf("expected one page at 600 dpi, got %+v", pages)
	}
	if !stub.closed {
		t.Error("expected document to be closed")
	}
}

func TestConvertRejectsUnsupportedDPI(t *testing.T) {
	stub := &recordingRasterizer{pages: 1}
	opened := false
	open := func(pdf []byte) (Rasterizer, error) {
		opened = true
		return stub, nil
	}
	c := NewConverter(open, DefaultDPIs, nil, WithoutPdfValidation())

	for _, dpi := range []int{0, 72, 299, 301, 1200, -600} {
		_, err := c.Convert(ConversionRequest{PDF: []byte("stub"), DPI: dpi})
		if !errors.Is(err, ErrUnsupportedDPI) {
			t.Errorf("dpi %d: expected ErrUnsupportedDPI, got %v", dpi, err)
		}
	}
	if opened {
		t.Error("document should not be opened for an unsupported dpi")
	}
}

func TestConvertInvalidInput(t *testing.T) {
	failing := func(pdf []byte) (Rasterizer, error) { return nil, errors.New("broken xref") }

	tests := []struct {
		name string
		c    *Converter
		req  ConversionRequest
	}{
		{"empty pdf", newStubConverter(&recordingRasterizer{pages: 1}), ConversionRequest{DPI: 300}},
		{"open fails", NewConverter(failing, DefaultDPIs, nil, WithoutPdfValidation()), ConversionRequest{PDF: []byte("x"), DPI: 300}},
		{"no pages", newStubConverter(&recordingRasterizer{pages: 0}), ConversionRequest{PDF: []byte("x"), DPI: 300}},
		{"page out of range", newStubConverter(&recordingRasterizer{pages: 2}), ConversionRequest{PDF: []byte("x"), DPI: 300, Pages: []int{3}}},
		{"too many pages", newStubConverter(&recordingRasterizer{pages: 5}), ConversionRequest{PDF: []byte("x"), DPI: 300, MaxPages: 4}},
		{"duplicate page", newStubConverter(&recordingRasterizer{pages: 2}), ConversionRequest{PDF: []byte("x"), DPI: 300, Pages: []int{1, 1}}},
		{"page zero", newStubConverter(&recordingRasterizer{pages: 2}), ConversionRequest{PDF: []byte("x"), DPI: 300, Pages: []int{0}}},
		{"not a pdf", NewConverter(failing, DefaultDPIs, nil), ConversionRequest{PDF: []byte("hello, world"), DPI: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Convert(tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestConvertAutoCropAndPageSelection(t *testing.T) {
	stub := &recordingRasterizer{pages: 3}
	c := newStubConverter(stub)

	pages, err := c.Convert(ConversionRequest{
		Name:     "fig.pdf",
		PDF:      []byte("stub"),
		DPI:      450,
		Pages:    []int{3, 1},
		AutoCrop: true,
		Crop:     CropOptions{Threshold: DefaultCropThreshold, Padding: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []rasterizeCall{{Page: 2, DPI: 450}, {Page: 0, DPI: 450}}
	if diff := cmp.Diff(want, stub.calls); diff != "" {
		t.Errorf("rasterizer calls mismatch (-want +got):\n%s", diff)
	}

	for _, p := range pages {
		if !p.Cropped {
			t.Errorf("page %d: expected cropped", p.Page)
		}
		if p.Width != 14 || p.Height != 14 {
			t.Errorf("page %d: expected 14x14, got %dx%d", p.Page, p.Width, p.Height)
		}

		img, err := png.Decode(bytes.NewReader(p.PNG))
		if err != nil {
			t.Fatalf("page %d: invalid png: %v", p.Page, err)
		}
		if img.Bounds().Dx() != p.Width || img.Bounds().Dy() != p.Height {
			t.Errorf("page %d: png is %v, metadata says %dx%d", p.Page, img.Bounds(), p.Width, p.Height)
		}
	}
}

func TestConvertWithoutAutoCropKeepsFullPage(t *testing.T) {
	c := newStubConverter(&recordingRasterizer{pages: 1})

	pages, err := c.Convert(ConversionRequest{PDF: []byte("stub"), DPI: 300})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages[0].Cropped || pages[0].Width != 100 || pages[0].Height != 100 {
		t.Errorf("expected uncropped 100x100 page, got %+v", pages[0])
	}
}

func TestConvertRejectsDuplicatePagesBeforeRendering(t *testing.T) {
	stub := &recordingRasterizer{pages: 3}
	c := newStubConverter(stub)

	_, err := c.Convert(ConversionRequest{Name: "a.pdf", PDF: []byte("stub"), DPI: 300, Pages: []int{2, 1, 2}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Errorf("expected no page to be rasterized, got %v", stub.calls)
	}
}
