package config

import (
	"strings"
	"time"

	"github.com/SeakMengs/FigStudio/internal/env"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
)

type Config struct {
	Port        string
	ENV         string
	RateLimiter RateLimiterConfig
	Convert     ConvertConfig
	Image       ImageConfig
	CORS        CORSConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type ConvertConfig struct {
	AllowedDPI figstudio.DPISet
	DefaultDPI int
	// Per-channel background tolerance, 0-255
	CropThreshold int
	CropPadding   int
	// Upload limit in bytes for a whole multipart request
	MaxUploadSize int64
	// Upper bound on pages converted per request, 0 means no limit
	MaxPages int
}

type ImageConfig struct {
	PreviewMaxSize int
	PanelMaxSize   int
	// Decoded size limit for uploaded images and rendered pages
	MaxPixels int
}

type CORSConfig struct {
	AllowOrigins []string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	rateLimiteTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimiteTimeFrame = 60 * time.Second
	}

	allowedDPI, err := figstudio.ParseDPISet(env.GetString("ALLOWED_DPI", "300,450,600"))
	if err != nil {
		allowedDPI = figstudio.DefaultDPIs
	}

	defaultDPI := env.GetInt("DEFAULT_DPI", 300)
	if !allowedDPI.Contains(defaultDPI) {
		defaultDPI = allowedDPI[0]
	}

	cropThreshold := env.GetInt("CROP_THRESHOLD", int(figstudio.DefaultCropThreshold))
	cropThreshold = min(max(cropThreshold, 0), 255)

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		// By default if not specified, we allow 300 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 300),
			TimeFrame:            rateLimiteTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Convert: ConvertConfig{
			AllowedDPI:    allowedDPI,
			DefaultDPI:    defaultDPI,
			CropThreshold: cropThreshold,
			CropPadding:   max(env.GetInt("CROP_PADDING", 0), 0),
			MaxUploadSize: int64(env.GetInt("MAX_UPLOAD_SIZE_MB", 100)) << 20,
			MaxPages:      max(env.GetInt("MAX_PAGES", 50), 0),
		},
		Image: ImageConfig{
			PreviewMaxSize: env.GetInt("PREVIEW_MAX_SIZE", 1200),
			PanelMaxSize:   env.GetInt("PANEL_MAX_SIZE", 800),
			MaxPixels:      env.GetInt("MAX_IMAGE_PIXELS", figstudio.DefaultMaxImagePixels),
		},
		CORS: CORSConfig{
			AllowOrigins: env.GetStrings("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
	}
}
