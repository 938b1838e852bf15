package route

import (
	"github.com/SeakMengs/FigStudio/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Accessibility(r *gin.RouterGroup, accessibilityController *controller.AccessibilityController) {
	v1 := r.Group("/v1/accessibility")
	{
		v1.POST("/score", accessibilityController.Score)
		v1.POST("/preview", accessibilityController.Preview)
	}
}
