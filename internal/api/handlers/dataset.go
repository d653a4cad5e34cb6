// internal/api/handlers/dataset.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsintel/chainsight/internal/service"
)

// DatasetHandler accepts dataset uploads.
type DatasetHandler struct {
	uploads *service.UploadService
}

func NewDatasetHandler(uploads *service.UploadService) *DatasetHandler {
	return &DatasetHandler{uploads: uploads}
}

// Upload handles POST /api/v1/dataset/upload with a multipart "file" field.
func (h *DatasetHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	path, err := h.uploads.Accept(c.Request.Context(), header)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "dataset uploaded",
		"path":    path,
	})
}
