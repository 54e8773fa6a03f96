package services

import (
	"sync"
	"time"

	"orghub-backend/models"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// FeedMessage is the frame pushed to connected dashboards.
type FeedMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// FeedClient is one connected dashboard.
type FeedClient struct {
	UserID      uint
	CompanyCode string
	Conn        *websocket.Conn
	Send        chan FeedMessage
	LastPing    time.Time
}

// FeedHub pushes freshly recorded activity-log entries to connected
// dashboards of the same organization.
type FeedHub struct {
	clients    map[*FeedClient]bool
	register   chan *FeedClient
	unregister chan *FeedClient
	broadcast  chan models.ActivityLog
	mutex      sync.RWMutex
	secret     string
}

// NewFeedHub creates the hub and wires it to the activity bus.
func NewFeedHub(activity *ActivityService, secret string) *FeedHub {
	h := &FeedHub{
		clients:    make(map[*FeedClient]bool),
		register:   make(chan *FeedClient),
		unregister: make(chan *FeedClient),
		broadcast:  make(chan models.ActivityLog, 64),
		secret:     secret,
	}
	if err := activity.Subscribe(h.onActivity); err != nil {
		zap.L().Error("failed to subscribe feed hub", zap.Error(err))
	}
	return h
}

func (h *FeedHub) onActivity(entry models.ActivityLog) {
	select {
	case h.broadcast <- entry:
	default:
		// Slow consumers must not block the audit path.
	}
}

// Run processes registrations and broadcasts. Call in its own goroutine.
func (h *FeedHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			zap.L().Info("feed client connected",
				zap.Uint("user_id", client.UserID),
				zap.String("company_code", client.CompanyCode))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()

		case entry := <-h.broadcast:
			msg := FeedMessage{Type: "activity", Payload: entry}
			h.mutex.Lock()
			for client := range h.clients {
				if client.CompanyCode != entry.CompanyCode {
					continue
				}
				select {
				case client.Send <- msg:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// HandleWebSocket authenticates the connection from its token query
// parameter and pumps feed messages until the peer goes away.
func (h *FeedHub) HandleWebSocket(conn *websocket.Conn) {
	userID, companyCode, err := h.parseToken(conn.Query("token"))
	if err != nil {
		conn.WriteJSON(FeedMessage{Type: "error", Payload: "unauthorized"})
		conn.Close()
		return
	}

	client := &FeedClient{
		UserID:      userID,
		CompanyCode: companyCode,
		Conn:        conn,
		Send:        make(chan FeedMessage, 16),
		LastPing:    time.Now(),
	}
	h.register <- client

	go h.writePump(client)
	h.readPump(client)
}

func (h *FeedHub) writePump(client *FeedClient) {
	for msg := range client.Send {
		if err := client.Conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (h *FeedHub) readPump(client *FeedClient) {
	defer func() {
		h.unregister <- client
		client.Conn.Close()
	}()

	for {
		// The feed is one-way; reads only keep the connection alive.
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
		client.LastPing = time.Now()
	}
}

func (h *FeedHub) parseToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.secret), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", jwt.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", jwt.ErrTokenMalformed
	}
	companyCode, ok := claims["company_code"].(string)
	if !ok {
		return 0, "", jwt.ErrTokenMalformed
	}

	return uint(userID), companyCode, nil
}
