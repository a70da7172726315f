package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/tranvd/ragchat-be/types"
)

var SystemMessageAssistant = openai.ChatCompletionMessage{
	Role:    openai.ChatMessageRoleSystem,
	Content: "You are a helpful assistant. When the user's message includes context documents or attached files, ground your answer in them. If you do not know the answer, you can search the knowledge base before responding.",
}

type OpenAIService struct {
	client        *openai.Client
	functionsCall map[string]types.FunctionHandler
	tools         []openai.Tool
	model         string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client:        client,
		functionsCall: make(map[string]types.FunctionHandler),
		tools:         make([]openai.Tool, 0),
		model:         model,
	}
}

// Chat sends the prompt with the prior conversation and returns the
// assistant's reply, resolving tool calls along the way
func (s *OpenAIService) Chat(ctx context.Context, prompt string, messages []types.Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+2)
	openaiMessages = append(openaiMessages, SystemMessageAssistant)
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: openaiMessages,
			Tools:    s.tools,
			Model:    s.model,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	if resp.Choices[0].FinishReason == openai.FinishReasonToolCalls {
		resp, err = s.handleFunctionCall(ctx, openaiMessages, resp)
		if err != nil {
			return "", err
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatStream streams response fragments to the handler
func (s *OpenAIService) ChatStream(ctx context.Context, prompt string, messages []types.Message, streamHandler types.StreamHandler) error {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+2)
	openaiMessages = append(openaiMessages, SystemMessageAssistant)
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	stream, err := s.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Messages: openaiMessages,
			Tools:    s.tools,
			Model:    s.model,
		},
	)
	if err != nil {
		return err
	}
	defer stream.Close()
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if len(resp.Choices) > 0 {
			streamHandler(resp.Choices[0].Delta.Content)
		}
	}
}

func (s *OpenAIService) RegisterFunctionCall(name, description string, params jsonschema.Definition, handler types.FunctionHandler) {
	if s.functionsCall == nil {
		s.functionsCall = make(map[string]types.FunctionHandler)
	}
	f := openai.FunctionDefinition{
		Name:        name,
		Description: description,
		Parameters:  params,
	}
	t := openai.Tool{
		Type:     openai.ToolTypeFunction,
		Function: &f,
	}
	s.functionsCall[name] = handler
	s.tools = append(s.tools, t)
}

// RegisterDocumentSearch exposes the document store to the model as a
// search_documents tool
func (s *OpenAIService) RegisterDocumentSearch(store *RAGStore) {
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "Keywords to search the knowledge base for",
			},
		},
		Required: []string{"query"},
	}
	s.RegisterFunctionCall(
		"search_documents",
		"Search the knowledge base for documents relevant to a query and return them as a context block",
		params,
		func(ctx context.Context, args []byte) (any, error) {
			var req types.SearchRequest
			if err := json.Unmarshal(args, &req); err != nil {
				return nil, err
			}
			docs := store.SearchDocuments(req.Query)
			if len(docs) == 0 {
				return "No relevant documents found.", nil
			}
			return store.GenerateContext(docs), nil
		},
	)
}

// RegisterWebSearch exposes Google Custom Search to the model as a
// web_search tool
func (s *OpenAIService) RegisterWebSearch(search *SearchService) {
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "The search query",
			},
		},
		Required: []string{"query"},
	}
	s.RegisterFunctionCall(
		"web_search",
		"Search the web and return the top results as JSON",
		params,
		func(ctx context.Context, args []byte) (any, error) {
			var req types.SearchRequest
			if err := json.Unmarshal(args, &req); err != nil {
				return nil, err
			}
			return search.SearchJSON(ctx, req.Query)
		},
	)
}

func (s *OpenAIService) handleFunctionCall(ctx context.Context, openaiMessages []openai.ChatCompletionMessage, resp openai.ChatCompletionResponse) (openai.ChatCompletionResponse, error) {
	openaiMessages = append(openaiMessages, resp.Choices[0].Message)
	for _, toolCall := range resp.Choices[0].Message.ToolCalls {
		if toolCall.Type != openai.ToolTypeFunction {
			continue
		}
		handler := s.functionsCall[toolCall.Function.Name]
		if handler == nil {
			return openai.ChatCompletionResponse{}, errors.New("no handler found for function call")
		}
		result, err := handler(ctx, []byte(toolCall.Function.Arguments))
		if err != nil {
			return openai.ChatCompletionResponse{}, err
		}
		content, ok := result.(string)
		if !ok {
			encoded, err := json.Marshal(result)
			if err != nil {
				return openai.ChatCompletionResponse{}, err
			}
			content = string(encoded)
		}
		log.Printf("Function %s returned %d bytes", toolCall.Function.Name, len(content))
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    content,
			Name:       toolCall.Function.Name,
			ToolCallID: toolCall.ID,
		})
	}
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: openaiMessages,
			Tools:    s.tools,
			Model:    s.model,
		},
	)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no response generated")
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonToolCalls {
		return s.handleFunctionCall(ctx, openaiMessages, resp)
	}
	return resp, nil
}
