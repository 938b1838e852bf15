package figstudio

import (
	"fmt"

	"go.uber.org/zap"
)

type ConversionRequest struct {
	// Used for naming output files, usually the upload file name.
	Name string
	PDF  []byte
	DPI  int
	// 1-based page numbers, empty means every page.
	Pages    []int
	AutoCrop bool
	Crop     CropOptions
	// Refuse documents that would produce more pages than this, 0 means no limit.
	MaxPages int
}

type ConvertedPage struct {
	Page    int         `json:"page"`
	DPI     int         `json:"dpi"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Cropped bool        `json:"cropped"`
	Box     BoundingBox `json:"box"`
	Region  BoundingBox `json:"region"`
	PNG     []byte      `json:"-"`
}

type Converter struct {
	open   Opener
	dpis   DPISet
	logger *zap.SugaredLogger
	// Largest page, in rendered pixels, Convert agrees to rasterize.
	maxPixels int
	// Skip the pdfcpu pass, the opener is trusted to reject bad input itself.
	skipValidation bool
}

type ConverterOption func(*Converter)

// WithMaxPixels caps the rendered size of a single page. Values below 1 keep
// DefaultMaxImagePixels.
func WithMaxPixels(n int) ConverterOption {
	return func(c *Converter) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// WithoutPdfValidation lets test doubles stand in for real PDF bytes.
func WithoutPdfValidation() ConverterOption {
	return func(c *Converter) { c.skipValidation = true }
}

func NewConverter(open Opener, dpis DPISet, logger *zap.SugaredLogger, opts ...ConverterOption) *Converter {
	if open == nil {
		open = FitzOpener
	}
	if len(dpis) == 0 {
		dpis = DefaultDPIs
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Converter{open: open, dpis: dpis, logger: logger, maxPixels: DefaultMaxImagePixels}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) AllowedDPIs() DPISet {
	return c.dpis
}

// Convert rasterizes the requested pages of req.PDF and returns one PNG per page.
func (c *Converter) Convert(req ConversionRequest) ([]ConvertedPage, error) {
	if err := c.dpis.Validate(req.DPI); err != nil {
		return nil, err
	}

	// Page sizes are only known once pdfcpu has read the document.
	var sizes []PageSize
	if !c.skipValidation {
		if err := ValidatePdf(req.PDF); err != nil {
			return nil, err
		}
		var err error
		if sizes, err = pageSizes(req.PDF); err != nil {
			return nil, err
		}
	} else if len(req.PDF) == 0 {
		return nil, fmt.Errorf("pdf is empty: %w", ErrInvalidInput)
	}

	doc, err := c.open(req.PDF)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount < 1 {
		return nil, fmt.Errorf("pdf has no pages: %w", ErrInvalidInput)
	}

	pages, err := selectPages(req.Pages, pageCount)
	if err != nil {
		return nil, err
	}
	if req.MaxPages > 0 && len(pages) > req.MaxPages {
		return nil, fmt.Errorf("%s would produce %d pages, limit is %d: %w", req.Name, len(pages), req.MaxPages, ErrInvalidInput)
	}
	for _, page := range pages {
		if page > len(sizes) {
			continue
		}
		size := sizes[page-1]
		w, h := PixelsAt(size.Width, req.DPI), PixelsAt(size.Height, req.DPI)
		if err := checkPixels(w, h, c.maxPixels); err != nil {
			return nil, fmt.Errorf("page %d of %s at %d dpi: %w", page, req.Name, req.DPI, err)
		}
	}

	out := make([]ConvertedPage, 0, len(pages))
	for _, page := range pages {
		converted, err := c.convertPage(doc, page, req)
		if err != nil {
			return nil, err
		}
		out = append(out, *converted)
	}

	c.logger.Debugf("Converted %s: %d page(s) at %d dpi, autoCrop=%t", req.Name, len(out), req.DPI, req.AutoCrop)
	return out, nil
}

func (c *Converter) convertPage(doc Rasterizer, page int, req ConversionRequest) (*ConvertedPage, error) {
	raster, err := doc.Rasterize(page-1, req.DPI)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize page %d: %v: %w", page, err, ErrInvalidInput)
	}

	full := FullBox(raster.Width, raster.Height)
	result := CropResult{Image: raster, Box: full, Region: full}
	if req.AutoCrop {
		result = AutoCrop(raster, req.Crop)
		if !result.Found {
			c.logger.Debugf("Page %d of %s is blank, leaving it uncropped", page, req.Name)
		}
	}

	data, err := EncodePNG(result.Image.Image())
	if err != nil {
		return nil, err
	}

	return &ConvertedPage{
		Page:    page,
		DPI:     req.DPI,
		Width:   result.Image.Width,
		Height:  result.Image.Height,
		Cropped: result.Found,
		Box:     result.Box,
		Region:  result.Region,
		PNG:     data,
	}, nil
}

func selectPages(requested []int, pageCount int) ([]int, error) {
	if len(requested) == 0 {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]struct{}, len(requested))
	for _, p := range requested {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page number must be between 1 and %d, but got %d: %w", pageCount, p, ErrInvalidInput)
		}
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("page %d is requested more than once: %w", p, ErrInvalidInput)
		}
		seen[p] = struct{}{}
	}
	return requested, nil
}

type DPIPreview struct {
	DPI            int  `json:"dpi"`
	Width          int  `json:"width"`
	Height         int  `json:"height"`
	JournalQuality bool `json:"journalQuality"`
}

type InspectResult struct {
	PdfInfo
	// Pixel size of the first page at each allowed DPI.
	Previews []DPIPreview `json:"previews"`
}

func (c *Converter) Inspect(pdf []byte) (*InspectResult, error) {
	info, err := InspectPdf(pdf)
	if err != nil {
		return nil, err
	}

	res := &InspectResult{PdfInfo: *info}
	if len(info.PageSizes) == 0 {
		return res, nil
	}

	first := info.PageSizes[0]
	for _, dpi := range c.dpis {
		res.Previews = append(res.Previews, DPIPreview{
			DPI:            dpi,
			Width:          PixelsAt(first.Width, dpi),
			Height:         PixelsAt(first.Height, dpi),
			JournalQuality: IsJournalQuality(dpi),
		})
	}
	return res, nil
}
