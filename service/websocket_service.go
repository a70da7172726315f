package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tranvd/ragchat-be/types"
)

// WebSocketService runs the websocket chat loop. Chat frames optionally
// go through the document store for retrieval context before reaching
// the AI service.
type WebSocketService struct {
	ai       AIService
	store    *RAGStore
	upgrader websocket.Upgrader
}

func NewWebSocketService(ai AIService, store *RAGStore) *WebSocketService {
	return &WebSocketService{
		ai:    ai,
		store: store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, messageType, "Error processing message")
			log.Println("Unmarshal error:", err)
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			s.writeError(conn, messageType, "Error processing message")
			log.Println("Marshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketChat:
			var payload types.WebSocketChatPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, messageType, "Error processing message")
				continue
			}
			reply, err := s.chat(ctx, payload)
			if err != nil {
				log.Println("AI error:", err)
				s.writeError(conn, messageType, "Error processing message")
				continue
			}
			botMessage := types.WebSocketResponse{
				Type:    types.TypeWebsocketChat,
				Payload: types.WebSocketChatResponse{Message: reply},
			}
			if err := conn.WriteJSON(botMessage); err != nil {
				log.Println("Write error:", err)
				continue
			}
		case types.TypeWebsocketPing:
			pongRes := types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pongRes); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

// chat runs the last user message through retrieval (when requested) and
// the AI service
func (s *WebSocketService) chat(ctx context.Context, payload types.WebSocketChatPayload) (string, error) {
	if len(payload.Messages) == 0 {
		return "", nil
	}
	last := payload.Messages[len(payload.Messages)-1]
	history := payload.Messages[:len(payload.Messages)-1]

	contextText := ""
	if payload.UseRAG && s.store != nil {
		docs := s.store.SearchDocuments(last.Content)
		contextText = s.store.GenerateContext(docs)
	}
	prompt := BuildPrompt(contextText, last.Content, nil)
	return s.ai.Chat(ctx, prompt, history)
}

func (s *WebSocketService) writeError(conn *websocket.Conn, messageType int, message string) {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorResponse{Message: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
		conn.WriteMessage(messageType, []byte(message))
	}
}

func (s *WebSocketService) Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
