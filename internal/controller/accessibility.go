package controller

import (
	"image"
	"net/http"

	"github.com/SeakMengs/FigStudio/internal/constant"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type AccessibilityController struct {
	*baseController
}

func (ac AccessibilityController) uploadedImage(ctx *gin.Context) (image.Image, string, bool) {
	ac.limitBody(ctx)
	files, err := ac.formFiles(ctx, "image", "file")
	if err != nil {
		ac.fail(ctx, "No image uploaded", err, "image")
		return nil, "", false
	}

	img, err := ac.readImage(files[0])
	if err != nil {
		ac.fail(ctx, "Invalid image", err, "image")
		return nil, "", false
	}

	return figstudio.Thumbnail(img, ac.app.Config.Image.PreviewMaxSize), files[0].Filename, true
}

// Score rates how well the uploaded figure survives grayscale printing, 0 to 100.
func (ac AccessibilityController) Score(ctx *gin.Context) {
	img, name, ok := ac.uploadedImage(ctx)
	if !ok {
		return
	}

	score := figstudio.GrayscaleScore(img)
	util.ResponseSuccess(ctx, gin.H{
		"file":   name,
		"score":  score,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
}

func (ac AccessibilityController) Preview(ctx *gin.Context) {
	type Request struct {
		Mode string `form:"mode" binding:"omitempty,oneof=grayscale colorblind"`
	}
	var body Request

	img, name, ok := ac.uploadedImage(ctx)
	if !ok {
		return
	}

	err := ctx.ShouldBind(&body)
	if err != nil {
		ac.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	var preview image.Image
	switch constant.PreviewMode(body.Mode) {
	case constant.PreviewModeColorBlind:
		preview = figstudio.ColorBlindPreview(img)
	default:
		preview = figstudio.GrayscalePreview(img)
	}

	data, err := figstudio.EncodePNG(preview)
	if err != nil {
		ac.fail(ctx, "Failed to encode preview", err, "image")
		return
	}

	util.ResponseFile(ctx, constant.MIME_PNG, figstudio.FileStem(name)+"_preview.png", data)
}
