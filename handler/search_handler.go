package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tranvd/ragchat-be/service"
	"github.com/tranvd/ragchat-be/types"
)

// SearchHandler answers similarity queries against the document store
// and runs retrieval-augmented question answering
type SearchHandler struct {
	store *service.RAGStore
	ai    service.AIService
}

func NewSearchHandler(store *service.RAGStore, ai service.AIService) *SearchHandler {
	return &SearchHandler{
		store: store,
		ai:    ai,
	}
}

func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	docs := h.store.SearchDocuments(req.Query)
	if req.Limit > 0 && req.Limit < len(docs) {
		docs = docs[:req.Limit]
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.SearchResponse{
			Documents: docs,
			Context:   h.store.GenerateContext(docs),
		},
	})
}

func (h *SearchHandler) HandleAskAI(c *gin.Context) {
	var req types.AskAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	docs := h.store.SearchDocuments(req.Question)
	prompt := service.BuildPrompt(h.store.GenerateContext(docs), req.Question, nil)
	answer, err := h.ai.Chat(c.Request.Context(), prompt, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "AI request failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.AskAIResponse{
			Answer:    answer,
			Documents: docs,
		},
	})
}
