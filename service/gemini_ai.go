package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/tranvd/ragchat-be/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiService is an AIService backed by the Gemini API. It rotates
// between the configured API keys when a request fails.
type GeminiService struct {
	apiKeys       []string
	currentKey    int
	client        *genai.Client
	model         *genai.GenerativeModel
	functionsCall map[string]types.FunctionHandler
	mu            sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:       apiKeys,
		currentKey:    0,
		functionsCall: make(map[string]types.FunctionHandler),
	}

	if err := service.initClient(); err != nil {
		return nil, err
	}

	service.model = service.client.GenerativeModel(modelName)
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

// RegisterFunctionCall declares a tool on the model and stores its handler
func (s *GeminiService) RegisterFunctionCall(name, description string, schema *genai.Schema, handler types.FunctionHandler) {
	s.functionsCall[name] = handler
	s.model.Tools = append(s.model.Tools, &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        name,
			Description: description,
			Parameters:  schema,
		}},
	})
}

// RegisterDocumentSearch exposes the document store to the model as a
// search_documents tool
func (s *GeminiService) RegisterDocumentSearch(store *RAGStore) {
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"query": {
				Type:        genai.TypeString,
				Description: "Keywords to search the knowledge base for",
			},
		},
		Required: []string{"query"},
	}
	s.RegisterFunctionCall(
		"search_documents",
		"Search the knowledge base for documents relevant to a query and return them as a context block",
		schema,
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

func (s *GeminiService) Chat(ctx context.Context, prompt string, messages []types.Message) (string, error) {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}
	chat := s.model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		// retry once on the next API key
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		chat = s.model.StartChat()
		chat.History = history
		resp, err = chat.SendMessage(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	candidate := resp.Candidates[0]
	if funcs := candidate.FunctionCalls(); len(funcs) > 0 {
		resp, err = s.handleFunctionCall(ctx, chat, funcs)
		if err != nil {
			return "", err
		}
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content, nil
}

func (s *GeminiService) handleFunctionCall(ctx context.Context, chat *genai.ChatSession, functions []genai.FunctionCall) (*genai.GenerateContentResponse, error) {
	funcResults := []genai.Part{}
	for _, function := range functions {
		handler, exists := s.functionsCall[function.Name]
		if !exists {
			return nil, fmt.Errorf("unknown function: %s", function.Name)
		}

		argsBytes, err := json.Marshal(function.Args)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal function args: %v", err)
		}
		result, err := handler(ctx, argsBytes)
		if err != nil {
			return nil, fmt.Errorf("function execution failed: %v", err)
		}
		funcResults = append(funcResults, genai.FunctionResponse{
			Name:     function.Name,
			Response: map[string]any{"result": result},
		})
	}
	resp, err := chat.SendMessage(ctx, funcResults...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}
	candidate := resp.Candidates[0]
	if funcs := candidate.FunctionCalls(); len(funcs) > 0 {
		return s.handleFunctionCall(ctx, chat, funcs)
	}
	return resp, nil
}

// ChatStream streams generated fragments to the handler
func (s *GeminiService) ChatStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	if handler == nil {
		return errors.New("no stream handler provided")
	}
	iter := s.model.GenerateContentStream(ctx, genai.Text(prompt))

	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if err := s.rotateAPIKey(); err != nil {
				return err
			}
			iter = s.model.GenerateContentStream(ctx, genai.Text(prompt))
			resp, err = iter.Next()
			if err != nil {
				return err
			}
		}

		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
	return nil
}
