package controller

import (
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"

	appcontext "github.com/SeakMengs/FigStudio/internal/app_context"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index         *IndexController
	Convert       *ConvertController
	Tikz          *TikzController
	Accessibility *AccessibilityController
	Panel         *PanelController
	Workspace     *WorkspaceController
}

const (
	ErrNoFileUploaded = "no file uploaded"
)

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:         &IndexController{baseController: bc},
		Convert:       &ConvertController{baseController: bc},
		Tikz:          &TikzController{baseController: bc},
		Accessibility: &AccessibilityController{baseController: bc},
		Panel:         &PanelController{baseController: bc},
		Workspace:     &WorkspaceController{baseController: bc},
	}
}

// limitBody caps the request body before gin parses the multipart form.
func (b *baseController) limitBody(ctx *gin.Context) {
	if size := b.app.Config.Convert.MaxUploadSize; size > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, size)
	}
}

// formFiles returns the uploads under the first field name that has any.
func (b *baseController) formFiles(ctx *gin.Context, fields ...string) ([]*multipart.FileHeader, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("request exceeds %d bytes: %w", maxBytesErr.Limit, util.ErrFileTooLarge)
		}
		return nil, fmt.Errorf("failed to parse multipart form: %v: %w", err, figstudio.ErrInvalidInput)
	}

	for _, field := range fields {
		if files := form.File[field]; len(files) > 0 {
			return files, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", ErrNoFileUploaded, figstudio.ErrInvalidInput)
}

func (b *baseController) readImage(fh *multipart.FileHeader) (image.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	img, err := figstudio.DecodeImage(f, b.app.Config.Image.MaxPixels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fh.Filename, err)
	}
	return img, nil
}

// fail logs err and answers with the status its kind maps to.
func (b *baseController) fail(ctx *gin.Context, message string, err error, field string) {
	status := util.StatusFromError(err)
	if status >= http.StatusInternalServerError {
		b.app.Logger.Errorw(message, "error", err, "path", ctx.FullPath())
	} else {
		b.app.Logger.Debugw(message, "error", err, "path", ctx.FullPath())
	}
	util.ResponseFailed(ctx, status, message, util.GenerateErrorMessages(err, field), nil)
}
