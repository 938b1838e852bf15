package figstudio

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from writing its config dir into the user's home
	api.DisableConfigDir()
}

func pdfConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

type PageSize struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PdfInfo struct {
	PageCount int        `json:"pageCount"`
	PageSizes []PageSize `json:"pageSizes"`
}

// ValidatePdf checks data is a PDF pdfcpu can read.
func ValidatePdf(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("pdf is empty: %w", ErrInvalidInput)
	}

	if err := api.Validate(bytes.NewReader(data), pdfConfiguration()); err != nil {
		return fmt.Errorf("pdf validation failed: %v: %w", err, ErrInvalidInput)
	}
	return nil
}

// InspectPdf returns the page count and the page sizes in points.
func InspectPdf(data []byte) (*PdfInfo, error) {
	if err := ValidatePdf(data); err != nil {
		return nil, err
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), pdfConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %v: %w", err, ErrInvalidInput)
	}

	sizes, err := pageSizes(data)
	if err != nil {
		return nil, err
	}
	return &PdfInfo{PageCount: pageCount, PageSizes: sizes}, nil
}

func pageSizes(data []byte) ([]PageSize, error) {
	dims, err := api.PageDims(bytes.NewReader(data), pdfConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to get page dimensions: %v: %w", err, ErrInvalidInput)
	}

	sizes := make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Page: i + 1, Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}
