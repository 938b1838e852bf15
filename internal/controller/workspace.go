package controller

import (
	"net/http"

	"github.com/SeakMengs/FigStudio/internal/constant"
	"github.com/SeakMengs/FigStudio/internal/util"
	"github.com/SeakMengs/FigStudio/pkg/figstudio"
	"github.com/gin-gonic/gin"
)

type WorkspaceController struct {
	*baseController
}

func (wc WorkspaceController) NewWorkspace(ctx *gin.Context) {
	profile, err := figstudio.Profile(ctx.DefaultQuery("profile", figstudio.DefaultProfileName))
	if err != nil {
		wc.fail(ctx, "Unknown profile", err, "profile")
		return
	}

	ws, err := figstudio.NewWorkspace(profile)
	if err != nil {
		wc.fail(ctx, "Failed to create workspace", err, "")
		return
	}
	ws.Padding = wc.app.Config.Convert.CropPadding

	util.ResponseSuccess(ctx, gin.H{
		"workspace": ws,
	})
}

// Export bundles the posted workspace into a zip with project.json and TikZ sources.
func (wc WorkspaceController) Export(ctx *gin.Context) {
	var ws figstudio.Workspace

	err := ctx.ShouldBindJSON(&ws)
	if err != nil {
		wc.app.Logger.Debug(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if ws.ID == "" {
		fresh, err := figstudio.NewWorkspace(figstudio.OutputProfile{})
		if err != nil {
			wc.fail(ctx, "Failed to create workspace", err, "")
			return
		}
		ws.ID, ws.CreatedAt = fresh.ID, fresh.CreatedAt
	}

	pack, err := figstudio.ExportPack(&ws)
	if err != nil {
		wc.fail(ctx, "Failed to export workspace", err, "elements")
		return
	}

	util.ResponseFile(ctx, constant.MIME_ZIP, constant.EXPORT_PACK_NAME, pack)
}

// Import reads a previously exported project.json back into a workspace.
func (wc WorkspaceController) Import(ctx *gin.Context) {
	wc.limitBody(ctx)
	files, err := wc.formFiles(ctx, "project", "file")
	if err != nil {
		wc.fail(ctx, "No project uploaded", err, "project")
		return
	}

	data, err := util.ReadFormFile(files[0], wc.app.Config.Convert.MaxUploadSize)
	if err != nil {
		wc.fail(ctx, "Failed to read upload", err, "project")
		return
	}

	ws, err := figstudio.UnmarshalWorkspace(data)
	if err != nil {
		wc.fail(ctx, "Invalid project file", err, "project")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"workspace": ws,
	})
}
