package controller

import (
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"name":       util.GetAppName(),
		"version":    util.GetAppVersion(),
		"allowedDpi": ic.app.Converter.AllowedDPIs(),
		"defaultDpi": ic.app.Config.Convert.DefaultDPI,
	})
}
