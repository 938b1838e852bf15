package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Workspace(r *gin.RouterGroup, workspaceController *controller.WorkspaceController) {
	v1 := r.Group("/v1/workspace")
	{
		v1.GET("/new", workspaceController.NewWorkspace)
		v1.POST("/export", workspaceController.Export)
		v1.POST("/import", workspaceController.Import)
	}
}
