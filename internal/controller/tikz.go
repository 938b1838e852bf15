package controller

import (
	"net/http"

	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type TikzController struct {
	*baseController
}

func (tc TikzController) GetTemplates(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"templates": figstudio.TemplateNames(),
		"elements":  figstudio.ElementKinds,
	})
}

func (tc TikzController) GetTemplate(ctx *gin.Context) {
	name := ctx.Param("name")

	code, err := figstudio.Template(name)
	if err != nil {
		tc.fail(ctx, "Template not found", err, "name")
		return
	}

	standalone := ctx.Query("standalone") == "true"
	if standalone {
		code, err = figstudio.StandaloneDocument(code)
		if err != nil {
			tc.fail(ctx, "Failed to render template", err, "name")
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"name": name,
		"code": code,
	})
}

func (tc TikzController) GenerateElement(ctx *gin.Context) {
	type Request struct {
		Kind          string `json:"kind" binding:"required,oneof=cell receptor nucleus"`
		Label         string `json:"label" binding:"max=200"`
		Color         string `json:"color" binding:"omitempty,hexcolor"`
		Shape         string `json:"shape"`
		LineThickness string `json:"lineThickness"`
		Shadow        bool   `json:"shadow"`
		Standalone    bool   `json:"standalone"`
	}
	var body Request

	err := ctx.ShouldBindJSON(&body)
	if err != nil {
		tc.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	code, err := figstudio.GenerateElement(figstudio.ElementParams{
		Kind:          figstudio.ElementKind(body.Kind),
		Label:         body.Label,
		Color:         body.Color,
		Shape:         figstudio.Shape(body.Shape),
		LineThickness: figstudio.LineThickness(body.LineThickness),
		Shadow:        body.Shadow,
	})
	if err != nil {
		tc.fail(ctx, "Failed to generate element", err, "lineThickness")
		return
	}

	if body.Standalone {
		code, err = figstudio.StandaloneDocument(code)
		if err != nil {
			tc.fail(ctx, "Failed to generate element", err, "")
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"code": code,
	})
}

func (tc TikzController) GenerateLegend(ctx *gin.Context) {
	type Item struct {
		Label string `json:"label" binding:"required,strNotEmpty,cmax=100"`
		Color string `json:"color" binding:"required,hexcolor"`
		Shape string `json:"shape"`
		Style string `json:"style"`
	}
	type Request struct {
		Items      []Item `json:"items" binding:"required,min=1,max=50,dive"`
		Standalone bool   `json:"standalone"`
	}
	var body Request

	err := ctx.ShouldBindJSON(&body)
	if err != nil {
		tc.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	items := make([]figstudio.LegendItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, figstudio.LegendItem{
			Label: it.Label,
			Color: it.Color,
			Shape: it.Shape,
			Style: it.Style,
		})
	}

	code, err := figstudio.GenerateLegend(items)
	if err != nil {
		tc.fail(ctx, "Failed to generate legend", err, "items")
		return
	}

	if body.Standalone {
		code, err = figstudio.StandaloneDocument(code)
		if err != nil {
			tc.fail(ctx, "Failed to generate legend", err, "")
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"code": code,
	})
}
