package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"learner-activity-service/internal/app"
	"learner-activity-service/internal/domain"
)

type WSHandler struct {
	service  *app.ActivityService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ActivityService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// quizPayload uses pointers so a missing score or time is told apart from zero.
type quizPayload struct {
	Type      string   `json:"type"`
	Score     *float64 `json:"score"`
	TimeSpent *float64 `json:"timeSpent"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ServeWS upgrades the request and records the learner events sent over it.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	if _, err := h.service.Activity(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("ws lookup failed for %s: %v", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// Keep draining so the reader never blocks on a dead connection.
				for range send {
				}
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		send <- h.handle(r, userID, inbound)
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) handle(r *http.Request, userID string, inbound inboundMessage) outboundMessage[any] {
	ctx := r.Context()
	switch inbound.Type {
	case "login":
		entry, err := h.service.RecordLogin(ctx, userID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "loginRecorded", Payload: entry}
	case "logout":
		entry, err := h.service.RecordLogout(ctx, userID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "logoutRecorded", Payload: entry}
	case "quiz":
		var payload quizPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Kind: "invalid_input", Message: "invalid quiz payload"}}
		}
		if payload.Score == nil || payload.TimeSpent == nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Kind: "invalid_input", Message: "score and timeSpent are required"}}
		}
		outcome, err := h.service.RecordQuizAttempt(ctx, userID, domain.QuizAttempt{
			QuizType:  payload.Type,
			Score:     *payload.Score,
			TimeSpent: *payload.TimeSpent,
		})
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "quizRecorded", Payload: outcome}
	case "activity":
		logs, err := h.service.Activity(ctx, userID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[any]{Type: "activity", Payload: logs}
	default:
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Kind: "invalid_input", Message: "unsupported message type"}}
	}
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Kind: errorKind(err), Message: err.Error()}}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownQuizType):
		return "invalid_input"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		log.Printf("activity error: %v", err)
		return "internal"
	}
}
