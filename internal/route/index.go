package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Profiles(r *gin.RouterGroup, convertController *controller.ConvertController) {
	v1 := r.Group("/v1/profiles")
	{
		v1.GET("", convertController.GetProfiles)
	}
}
