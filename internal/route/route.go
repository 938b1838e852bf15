package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

// Register mounts the index and every versioned group under /api.
func Register(r *gin.Engine, c *controller.Controller) {
	r.GET("/", c.Index.Index)

	rApi := r.Group("/api")

	V1_Profiles(rApi, c.Convert)
	V1_Convert(rApi, c.Convert)
	V1_Tikz(rApi, c.Tikz)
	V1_Accessibility(rApi, c.Accessibility)
	V1_Panels(rApi, c.Panel)
	V1_Workspace(rApi, c.Workspace)
}
