package service

import (
	"context"

	"github.com/tranvd/ragchat-be/types"
)

type AIService interface {
	Chat(ctx context.Context, prompt string, messages []types.Message) (string, error)
}
