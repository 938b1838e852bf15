package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Convert(r *gin.RouterGroup, convertController *controller.ConvertController) {
	v1 := r.Group("/v1/convert")
	{
		v1.POST("", convertController.Convert)
		v1.POST("/inspect", convertController.Inspect)
	}
}
