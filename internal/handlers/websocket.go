package handlers

import (
	"net/http"

	"job-board-backend/internal/middleware"
	"job-board-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles notification sockets
type WebSocketHandler struct {
	hub          *services.NotificationHub
	tokenService *services.TokenService
	cookieName   string
	upgrader     websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocket handler. Browsers are only
// accepted from allowedOrigins.
func NewWebSocketHandler(hub *services.NotificationHub, tokenService *services.TokenService, cookieName string, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &WebSocketHandler{
		hub:          hub,
		tokenService: tokenService,
		cookieName:   cookieName,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var err error
		if token, err = middleware.TokenFromRequest(r, h.cookieName); err != nil {
			respondFailure(w, r, err)
			return
		}
	}

	claims, err := h.tokenService.Verify(r.Context(), token)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	// Clients only listen; reading keeps control frames flowing and
	// detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", userID).Msg("WebSocket closed")
			}
			return
		}
	}
}
