package types

import "context"

// Message represents a single message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	ChatId   string    `json:"chat_id"`
	Messages []Message `json:"messages"`
	UseRAG   bool      `json:"use_rag"`
}

type ChatResponse struct {
	ChatId   string   `json:"chat_id"`
	Message  *Message `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// FunctionHandler is a type for handling AI function calls
type FunctionHandler func(ctx context.Context, args []byte) (any, error)

// StreamHandler handles streamed response fragments
type StreamHandler func(response string)
