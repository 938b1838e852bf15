package appcontext

import (
	"github.com/SeakMengs/FigStudio/internal/config"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Converter rasterizes and crops uploaded PDFs.
	Converter *figstudio.Converter
}
