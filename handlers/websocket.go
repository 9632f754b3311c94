package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/metrics"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

// SpriteSource yields a random sprite for socket clients.
type SpriteSource interface {
	GetRandomSprite(ctx context.Context) (models.Pokemon, error)
}

// Connection represents a socket connection and the user it belongs to.
type Connection struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	user *models.AuthInfo

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// ID returns the identifier assigned to the connection on accept.
func (c *Connection) ID() string {
	return c.id
}

// Close stops the connection. The writer sends a close frame and releases
// the socket. Safe to call more than once.
func (c *Connection) Close() {
	c.once.Do(func() {
		c.cancel()
		close(c.done)
	})
}

// emit queues an event frame. A client that cannot keep up is disconnected.
func (c *Connection) emit(event string, data interface{}) error {
	payload, err := json.Marshal(models.OutboundMessage{Event: event, Data: data})
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	default:
		c.Close()
		return websocket.ErrCloseSent
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// Gateway authenticates socket handshakes and serves sprite events.
type Gateway struct {
	sprites  SpriteSource
	tokens   auth.Verifier
	hub      *Hub
	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewGateway(sprites SpriteSource, tokens auth.Verifier, hub *Hub, origins []string, m *metrics.Metrics, logger *slog.Logger) *Gateway {
	return &Gateway{
		sprites: sprites,
		tokens:  tokens,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		metrics: m,
		logger:  utils.Component(logger, "gateway"),
	}
}

// originChecker allows requests without an Origin header and those whose
// origin is listed. With no origins configured gorilla's same-origin check
// applies.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowed[strings.TrimRight(origin, "/")]
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	claims, err := g.tokens.Verify(auth.TokenFromHandshake(r))
	if err != nil {
		g.logger.Warn("connection rejected", "client_id", id, "error", err)
		g.metrics.SocketRejected()
		utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Unauthorized"})
		return
	}
	info := claims.AuthInfo()

	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error response.
		g.logger.Warn("upgrade failed", "client_id", id, "error", err)
		g.metrics.SocketRejected()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		user:   &info,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	g.hub.Register(c)
	g.logger.Info("client connected", "client_id", c.id, "username", info.Username)

	go c.writePump()
	g.readPump(c)
}

func (g *Gateway) readPump(c *Connection) {
	defer func() {
		c.Close()
		g.hub.Unregister(c)
		g.logger.Info("client disconnected", "client_id", c.id)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				g.logger.Warn("read error", "client_id", c.id, "error", err)
			}
			return
		}
		g.handleMessage(c, message)
	}
}

func (g *Gateway) handleMessage(c *Connection, raw []byte) {
	var msg models.SocketMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Event == "" {
		g.reply(c, models.EventError, models.SocketError{Message: "Invalid message"})
		return
	}

	switch msg.Event {
	case models.EventRequestSprite:
		g.metrics.SocketEvent(msg.Event)
		g.handleRequestSprite(c)
	case models.EventDeleteSprite:
		g.metrics.SocketEvent(msg.Event)
		var payload models.DeleteSpritePayload
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				g.reply(c, models.EventError, models.SocketError{Message: "Invalid message"})
				return
			}
		}
		g.logger.Info("sprite deleted", "client_id", c.id, "sprite_id", payload.ID)
	default:
		g.metrics.SocketEvent("unknown")
		g.logger.Debug("unknown event", "client_id", c.id, "event", msg.Event)
	}
}

func (g *Gateway) handleRequestSprite(c *Connection) {
	g.logger.Info("sprite requested", "client_id", c.id, "username", c.user.Username)

	go func() {
		pokemon, err := g.sprites.GetRandomSprite(c.ctx)
		if err != nil {
			g.logger.Error("sprite fetch failed", "client_id", c.id, "error", err)
			g.reply(c, models.EventError, models.SocketError{Message: "Failed to fetch pokemon"})
			return
		}
		g.reply(c, models.EventNewSprite, pokemon)
	}()
}

func (g *Gateway) reply(c *Connection, event string, data interface{}) {
	if err := c.emit(event, data); err != nil {
		g.logger.Debug("emit dropped", "client_id", c.id, "event", event, "error", err)
	}
}
