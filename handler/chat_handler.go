package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tranvd/ragchat-be/service"
	"github.com/tranvd/ragchat-be/types"
)

// ChatHandler is the chat-sending collaborator: it runs selected files
// through the file processor, optionally prepends retrieval context from
// the document store, and forwards the composed prompt to the AI service.
type ChatHandler struct {
	ai          service.AIService
	store       *service.RAGStore
	fileService *service.FileService
}

func NewChatHandler(ai service.AIService, store *service.RAGStore, fileService *service.FileService) *ChatHandler {
	return &ChatHandler{
		ai:          ai,
		store:       store,
		fileService: fileService,
	}
}

// HandleChat accepts either a JSON ChatRequest or a multipart form with
// "message", optional "files" and "use_rag" fields.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.handleMultipartChat(c)
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No messages provided",
		})
		return
	}

	last := req.Messages[len(req.Messages)-1]
	history := req.Messages[:len(req.Messages)-1]
	h.respond(c, req.ChatId, last.Content, history, nil, req.UseRAG, nil)
}

func (h *ChatHandler) handleMultipartChat(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid multipart form",
		})
		return
	}
	message := c.Request.FormValue("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Message is required",
		})
		return
	}
	useRAG, _ := strconv.ParseBool(c.Request.FormValue("use_rag"))
	chatId := c.Request.FormValue("chat_id")

	files := form.File["files"]
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

	// every file failed: hand the unsent message back instead of
	// silently sending without attachments
	if len(files) > 0 && len(attachments) == 0 {
		c.JSON(http.StatusUnprocessableEntity, types.DataResponse{
			Status:  false,
			Message: combineFailures(failures),
			Data:    types.ChatRequest{ChatId: chatId, Messages: []types.Message{{Role: "user", Content: message}}},
		})
		return
	}

	h.respond(c, chatId, message, nil, attachments, useRAG, failures)
}

func (h *ChatHandler) respond(c *gin.Context, chatId, message string, history []types.Message, attachments []types.Attachment, useRAG bool, failures []string) {
	contextText := ""
	if useRAG && h.store != nil {
		docs := h.store.SearchDocuments(message)
		contextText = h.store.GenerateContext(docs)
	}
	prompt := service.BuildPrompt(contextText, message, attachments)

	answer, err := h.ai.Chat(c.Request.Context(), prompt, history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "AI request failed: " + err.Error(),
		})
		return
	}

	resp := types.ChatResponse{
		ChatId:  chatId,
		Message: &types.Message{Role: "assistant", Content: answer},
	}
	if len(failures) > 0 {
		resp.Warnings = []string{combineFailures(failures)}
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}

// combineFailures renders one message for a single failure and an
// itemized list for several
func combineFailures(failures []string) string {
	if len(failures) == 1 {
		return failures[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d files failed to process:", len(failures))
	for _, failure := range failures {
		b.WriteString("\n- ")
		b.WriteString(failure)
	}
	return b.String()
}
