package main

import (
	appcontext "github.com/SeakMengs/FigStudio/internal/app_context"
	"github.com/SeakMengs/FigStudio/internal/config"
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/SeakMengs/FigStudio/internal/env"
	"github.com/SeakMengs/FigStudio/internal/middleware"
	ratelimiter "github.com/SeakMengs/FigStudio/internal/rate_limiter"
	"github.com/SeakMengs/FigStudio/internal/route"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	// Custom validation
	if err := util.RegisterValidations(); err != nil {
		logger.Panic(err)
	}

	converter := figstudio.NewConverter(figstudio.FitzOpener, cfg.Convert.AllowedDPI, logger, figstudio.WithMaxPixels(cfg.Image.MaxPixels))
	logger.Infof("Allowed DPI: %s, default %d", cfg.Convert.AllowedDPI, cfg.Convert.DefaultDPI)

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	app := appcontext.Application{
		Config:    &cfg,
		Logger:    logger,
		Converter: converter,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.Convert.MaxUploadSize

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestLogger)
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)
	route.Register(r, _controller)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
