package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranvd/ragchat-be/service"
	"github.com/tranvd/ragchat-be/types"
)

// DocumentHandler manages the document store over HTTP
type DocumentHandler struct {
	store *service.RAGStore
}

func NewDocumentHandler(store *service.RAGStore) *DocumentHandler {
	return &DocumentHandler{
		store: store,
	}
}

func (h *DocumentHandler) HandleAddDocument(c *gin.Context) {
	var req types.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Title is required",
		})
		return
	}

	id := h.store.AddDocument(c.Request.Context(), req.Title, req.Content, req.Metadata)
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   types.AddDocumentResponse{ID: id},
	})
}

func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   h.store.GetAllDocuments(),
	})
}

func (h *DocumentHandler) HandleRemoveDocument(c *gin.Context) {
	id := c.Param("id")
	if !h.store.RemoveDocument(c.Request.Context(), id) {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "Document not found",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
	})
}

func (h *DocumentHandler) HandleClearDocuments(c *gin.Context) {
	h.store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
	})
}

func (h *DocumentHandler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   h.store.Stats(),
	})
}
