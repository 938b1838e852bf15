package controller

import (
	"image"
	"net/http"

	"github.com/SeakMengs/FigStudio/internal/constant"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type PanelController struct {
	*baseController
}

// ComposePanel lays the uploaded figures out as a labelled multi-panel image.
func (pc PanelController) ComposePanel(ctx *gin.Context) {
	type Request struct {
		Columns    int    `form:"columns" binding:"omitempty,gte=1,lte=10"`
		Spacing    *int   `form:"spacing" binding:"omitempty,gte=0,lte=200"`
		Background string `form:"background" binding:"omitempty,hexcolor"`
		LabelColor string `form:"labelColor" binding:"omitempty,hexcolor"`
		Labels     *bool  `form:"labels"`
	}
	var body Request

	pc.limitBody(ctx)
	files, err := pc.formFiles(ctx, "images", "files")
	if err != nil {
		pc.fail(ctx, "No images uploaded", err, "images")
		return
	}

	err = ctx.ShouldBind(&body)
	if err != nil {
		pc.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	opts := figstudio.DefaultPanelOptions()
	if body.Columns > 0 {
		opts.Columns = body.Columns
	}
	if body.Spacing != nil {
		opts.Spacing = *body.Spacing
	}
	if body.Labels != nil {
		opts.Labels = *body.Labels
	}
	if body.Background != "" {
		opts.Background, err = figstudio.ParseHexColor(body.Background)
		if err != nil {
			pc.fail(ctx, "Invalid background color", err, "background")
			return
		}
	}
	if body.LabelColor != "" {
		opts.LabelColor, err = figstudio.ParseHexColor(body.LabelColor)
		if err != nil {
			pc.fail(ctx, "Invalid label color", err, "labelColor")
			return
		}
	}

	images := make([]image.Image, 0, len(files))
	for _, fh := range files {
		img, err := pc.readImage(fh)
		if err != nil {
			pc.fail(ctx, "Invalid image", err, "images")
			return
		}
		images = append(images, figstudio.Thumbnail(img, pc.app.Config.Image.PanelMaxSize))
	}

	panel, err := figstudio.ComposePanel(images, opts)
	if err != nil {
		pc.fail(ctx, "Failed to compose panel", err, "images")
		return
	}

	data, err := figstudio.EncodePNG(panel)
	if err != nil {
		pc.fail(ctx, "Failed to encode panel", err, "images")
		return
	}

	util.ResponseFile(ctx, constant.MIME_PNG, constant.PANEL_FILE_NAME, data)
}
