package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rinkside/league-api/internal/api/handler/v1/response"
	"github.com/rinkside/league-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type draftClient struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID uint
}

// DraftFeedHandler pushes roster changes to draft boards watching a session.
// The feed is one-way; clients never write, they only receive events while an
// admin drags players between teams.
type DraftFeedHandler struct {
	clients      map[*draftClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan domain.DraftEvent
	register     chan *draftClient
	unregister   chan *draftClient
}

func NewDraftFeedHandler() *DraftFeedHandler {
	return &DraftFeedHandler{
		clients:    make(map[*draftClient]struct{}),
		broadcast:  make(chan domain.DraftEvent, 64),
		register:   make(chan *draftClient),
		unregister: make(chan *draftClient),
	}
}

// Publish queues an event for every board watching the event's session.
// Implements the publisher the team service writes to. Drops the event if
// the hub's buffer is full rather than stall a draft operation.
func (h *DraftFeedHandler) Publish(event domain.DraftEvent) {
	select {
	case h.broadcast <- event:
	default:
		zap.L().Warn("draft event dropped, feed buffer full",
			zap.Uint("sessionID", event.SessionID))
	}
}

func (h *DraftFeedHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				zap.L().Warn("draft event not serializable", zap.Error(err))
				continue
			}

			h.clientsMutex.Lock()
			for client := range h.clients {
				if client.sessionID != event.SessionID {
					continue
				}
				select {
				case client.send <- payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// HandleDraftFeed godoc
// @Summary      Subscribe to a session's draft feed
// @Description  Upgrades to a WebSocket and streams roster change events for the session while teams are being drafted.
// @Tags         admin
// @Produce      json
// @Param        sessionID path int true "session ID"
// @Success      101      {string}   string "Switching Protocols to WebSocket"
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/draft/feed [get]
// @Security BearerAuth
func (h *DraftFeedHandler) HandleDraftFeed(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("draft feed upgrade failed", zap.Error(err))
		return
	}

	client := &draftClient{
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *draftClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards anything the client sends; reading is still needed to
// notice the close handshake.
func (c *draftClient) readPump(h *DraftFeedHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("draft feed closed", zap.Error(err))
			}
			break
		}
	}
}
