package motion

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrClosed is returned once the hub or a link has been shut down
var ErrClosed = errors.New("motion: closed")

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Hub relays motion readings between all connected devices
type Hub struct {
	mu      sync.Mutex
	users   map[string]*User
	clients map[string]*hubClient
	closed  bool

	upgrader websocket.Upgrader
	logger   *log.Logger
}

type hubClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. A nil logger writes to stderr.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(os.Stderr, "motion: ", log.LstdFlags)
	}
	return &Hub{
		users:   make(map[string]*User),
		clients: make(map[string]*hubClient),
		// Allow any origin: phones load the page from the LAN address.
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &hubClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if err := h.register(c); err != nil {
		h.logger.Printf("rejecting %s: %v", r.RemoteAddr, err)
		conn.Close()
		return
	}
	h.logger.Printf("user %s joined from %s", c.id, r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

// Users returns the number of connected users
func (h *Hub) Users() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
		delete(h.users, id)
	}
}

func (h *Hub) register(c *hubClient) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}

	user := &User{}
	h.users[c.id] = user
	h.clients[c.id] = c

	init, err := Encode(TypeInit, InitPayload{ID: c.id, State: State{Users: h.usersCopyLocked()}})
	if err != nil {
		return err
	}
	c.send <- init

	joined, err := Encode(TypeUserJoined, JoinedPayload{ID: c.id, User: *user})
	if err != nil {
		return err
	}
	h.broadcastLocked(joined, c.id)
	return nil
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	delete(h.users, c.id)
	close(c.send)

	left, err := Encode(TypeUserLeft, c.id)
	if err != nil {
		h.logger.Printf("encode userLeft: %v", err)
		return
	}
	h.broadcastLocked(left, "")
	h.logger.Printf("user %s left", c.id)
}

func (h *Hub) moved(id string, data MotionData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	u, ok := h.users[id]
	if !ok {
		return
	}
	u.DeviceMoves = true
	u.MotionData = &data

	msg, err := Encode(TypeUserMoved, MovedPayload{ID: id, DeviceMoves: true, Motion: data})
	if err != nil {
		h.logger.Printf("encode userMoved: %v", err)
		return
	}
	h.broadcastLocked(msg, id)
}

// broadcastLocked queues msg for every client except skip. Clients whose
// buffer is full miss the message.
func (h *Hub) broadcastLocked(msg []byte, skip string) {
	for id, c := range h.clients {
		if id == skip {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.logger.Printf("dropping message for slow user %s", id)
		}
	}
}

func (h *Hub) usersCopyLocked() map[string]*User {
	out := make(map[string]*User, len(h.users))
	for id, u := range h.users {
		cp := *u
		if u.MotionData != nil {
			md := *u.MotionData
			cp.MotionData = &md
		}
		out[id] = &cp
	}
	return out
}

func (h *Hub) readPump(c *hubClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("read error from %s: %v", c.id, err)
			}
			return
		}
		env, err := Decode(data)
		if err != nil {
			h.logger.Printf("invalid message from %s: %v", c.id, err)
			continue
		}
		if env.Type != TypeMotionData {
			continue
		}
		var md MotionData
		if err := json.Unmarshal(env.Data, &md); err != nil {
			h.logger.Printf("invalid motion data from %s: %v", c.id, err)
			continue
		}
		h.moved(c.id, md)
	}
}

func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
