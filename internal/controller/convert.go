package controller

import (
	"fmt"
	"net/http"

	"github.com/SeakMengs/FigStudio/internal/constant"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type ConvertController struct {
	*baseController
}

const (
	ErrNotAPdf          = "%s is not a pdf file"
	ErrSinglePngOnly    = "png output needs exactly one page, but got %d; use zip instead"
	ErrPageLimitReached = "page limit of %d reached"
)

type convertedFile struct {
	File string `json:"file"`
	figstudio.ConvertedPage
	PNG []byte `json:"png"`
}

func (cc ConvertController) GetProfiles(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"profiles":       figstudio.Profiles(cc.app.Converter.AllowedDPIs()),
		"defaultProfile": figstudio.DefaultProfileName,
	})
}

func (cc ConvertController) Convert(ctx *gin.Context) {
	type Request struct {
		DPI       int    `form:"dpi" binding:"omitempty,gte=1"`
		Profile   string `form:"profile" binding:"omitempty,strNotEmpty"`
		AutoCrop  *bool  `form:"autoCrop"`
		Padding   *int   `form:"padding" binding:"omitempty,gte=0,lte=1000"`
		Threshold *int   `form:"threshold" binding:"omitempty,gte=0,lte=255"`
		Pages     []int  `form:"pages" binding:"omitempty,dive,gte=1"`
		Format    string `form:"format" binding:"omitempty,oneof=zip png json"`
	}
	var body Request

	cc.limitBody(ctx)
	files, err := cc.formFiles(ctx, "files", "file")
	if err != nil {
		cc.fail(ctx, "No pdf uploaded", err, "files")
		return
	}

	err = ctx.ShouldBind(&body)
	if err != nil {
		cc.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	profile, err := figstudio.Profile(figstudio.DefaultProfileName)
	if body.Profile != "" {
		profile, err = figstudio.Profile(body.Profile)
	}
	if err != nil {
		cc.fail(ctx, "Unknown profile", err, "profile")
		return
	}

	dpi := body.DPI
	if dpi == 0 {
		dpi = cc.app.Config.Convert.DefaultDPI
		if body.Profile != "" {
			dpi = profile.DPI
		}
	}

	crop := figstudio.DefaultCropOptions()
	crop.Threshold = uint8(cc.app.Config.Convert.CropThreshold)
	crop.Padding = cc.app.Config.Convert.CropPadding
	if body.Threshold != nil {
		crop.Threshold = uint8(*body.Threshold)
	}
	if body.Padding != nil {
		crop.Padding = *body.Padding
	}

	autoCrop := profile.AutoCrop
	if body.AutoCrop != nil {
		autoCrop = *body.AutoCrop
	}

	maxPages := cc.app.Config.Convert.MaxPages
	var results []convertedFile
	for _, fh := range files {
		data, err := util.ReadFormFile(fh, cc.app.Config.Convert.MaxUploadSize)
		if err != nil {
			cc.fail(ctx, "Failed to read upload", err, "files")
			return
		}
		if !util.IsPdf(fh.Filename, data) {
			cc.fail(ctx, "Invalid pdf file", fmt.Errorf(ErrNotAPdf+": %w", fh.Filename, figstudio.ErrInvalidInput), "files")
			return
		}

		remaining := 0
		if maxPages > 0 {
			remaining = maxPages - len(results)
			if remaining <= 0 {
				cc.fail(ctx, "Too many pages", fmt.Errorf(ErrPageLimitReached+": %w", maxPages, figstudio.ErrInvalidInput), "files")
				return
			}
		}

		pages, err := cc.app.Converter.Convert(figstudio.ConversionRequest{
			Name:     fh.Filename,
			PDF:      data,
			DPI:      dpi,
			Pages:    body.Pages,
			AutoCrop: autoCrop,
			Crop:     crop,
			MaxPages: remaining,
		})
		if err != nil {
			cc.fail(ctx, "Failed to convert "+fh.Filename, err, "files")
			return
		}

		for _, p := range pages {
			results = append(results, convertedFile{
				File:          figstudio.PageFileName(fh.Filename, p.Page),
				ConvertedPage: p,
				PNG:           p.PNG,
			})
		}
	}

	cc.app.Logger.Infow("converted figures", "files", len(files), "pages", len(results), "dpi", dpi, "autoCrop", autoCrop)

	format := constant.OutputFormat(body.Format)
	if format == "" {
		format = constant.OutputFormatZip
		if len(results) == 1 {
			format = constant.OutputFormatPng
		}
	}

	switch format {
	case constant.OutputFormatJson:
		util.ResponseSuccess(ctx, gin.H{
			"dpi":   dpi,
			"pages": results,
		})
	case constant.OutputFormatPng:
		if len(results) != 1 {
			cc.fail(ctx, "Invalid output format", fmt.Errorf(ErrSinglePngOnly+": %w", len(results), figstudio.ErrInvalidInput), "format")
			return
		}
		util.ResponseFile(ctx, constant.MIME_PNG, results[0].File, results[0].PNG)
	default:
		entries := make([]figstudio.ZipEntry, 0, len(results))
		for _, r := range results {
			entries = append(entries, figstudio.ZipEntry{Name: r.File, Data: r.PNG})
		}
		archive, err := figstudio.BuildZip(entries)
		if err != nil {
			cc.fail(ctx, "Failed to build zip", err, "files")
			return
		}
		util.ResponseFile(ctx, constant.MIME_ZIP, constant.BATCH_ZIP_NAME, archive)
	}
}

// Inspect reports page sizes and the pixel dimensions each allowed DPI would give.
func (cc ConvertController) Inspect(ctx *gin.Context) {
	cc.limitBody(ctx)
	files, err := cc.formFiles(ctx, "file", "files")
	if err != nil {
		cc.fail(ctx, "No pdf uploaded", err, "file")
		return
	}

	data, err := util.ReadFormFile(files[0], cc.app.Config.Convert.MaxUploadSize)
	if err != nil {
		cc.fail(ctx, "Failed to read upload", err, "file")
		return
	}

	info, err := cc.app.Converter.Inspect(data)
	if err != nil {
		cc.fail(ctx, "Invalid pdf file", err, "file")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"file": files[0].Filename,
		"info": info,
	})
}
