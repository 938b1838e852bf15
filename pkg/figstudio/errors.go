package figstudio

import "errors"

var (
	// Missing, corrupt or unreadable input such as a broken PDF or an out of range page.
	ErrInvalidInput = errors.New("invalid input")
	// DPI outside of the allowed set.
	ErrUnsupportedDPI = errors.New("unsupported dpi")
	// TikZ element kind or built-in template name that does not exist.
	ErrUnknownTemplate = errors.New("unknown template")
)
