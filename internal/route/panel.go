package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Panels(r *gin.RouterGroup, panelController *controller.PanelController) {
	v1 := r.Group("/v1/panels")
	{
		v1.POST("", panelController.ComposePanel)
	}
}
