package constant

const (
	MIME_PNG = "image/png"
	MIME_ZIP = "application/zip"

	BATCH_ZIP_NAME   = "batch_figures.zip"
	PANEL_FILE_NAME  = "composed.png"
	EXPORT_PACK_NAME = "figure_pack.zip"
)

type OutputFormat string

const (
	OutputFormatZip OutputFormat = "zip"
	OutputFormatPng OutputFormat = "png"
	// Page metadata with base64 PNGs, used by the browser preview.
	OutputFormatJson OutputFormat = "json"
)

type PreviewMode string

const (
	PreviewModeGrayscale  PreviewMode = "grayscale"
	PreviewModeColorBlind PreviewMode = "colorblind"
)
