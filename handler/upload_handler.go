package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranvd/ragchat-be/service"
	"github.com/tranvd/ragchat-be/types"
)

// UploadHandler runs uploaded files through the file processor
type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

// HandleProcessFiles accepts a multipart batch under the "files" field
// and returns the produced attachments together with per-file failures.
// A failing file never aborts its siblings; only a batch where every
// file failed is reported as an error.
func (h *UploadHandler) HandleProcessFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid multipart form",
		})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No files provided",
		})
		return
	}

	attachments := make([]types.Attachment, 0, len(files))
	var failures []string
	for _, header := range files {
		attachment, err := h.fileService.ProcessMultipart(header)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		attachments = append(attachments, attachment)
	}

	if len(attachments) == 0 {
		c.JSON(http.StatusUnprocessableEntity, types.DataResponse{
			Status:  false,
			Message: "All files failed to process",
			Data: types.ProcessFilesResponse{
				Attachments: attachments,
				Failures:    failures,
			},
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ProcessFilesResponse{
			Attachments: attachments,
			Failures:    failures,
		},
	})
}
