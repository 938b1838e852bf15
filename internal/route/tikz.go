package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Tikz(r *gin.RouterGroup, tikzController *controller.TikzController) {
	v1 := r.Group("/v1/tikz")
	{
		v1.GET("/templates", tikzController.GetTemplates)
		v1.GET("/templates/:name", tikzController.GetTemplate)
		v1.POST("/elements", tikzController.GenerateElement)
		v1.POST("/legends", tikzController.GenerateLegend)
	}
}
