package figstudio

// Rasterizer renders the pages of one opened document.
type Rasterizer interface {
	PageCount() int
	// Rasterize renders the 0-based page at dpi.
	Rasterize(page int, dpi int) (*Raster, error)
	Close() error
}

// Opener opens a PDF held in memory.
type Opener func(pdf []byte) (Rasterizer, error)
