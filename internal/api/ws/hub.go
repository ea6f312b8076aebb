package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/infrastructure/logging"
	"github.com/filedeck/filedeck/internal/infrastructure/monitoring"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// Hub fans filesystem change events out to connected WebSocket clients.
// It satisfies the filesystem provider's Notifier interface.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// client wraps a connection with a write lock. gorilla/websocket allows
// only one concurrent writer per connection.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (cl *client) write(msg types.WSMessage) error {
	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	return cl.conn.WriteJSON(msg)
}

// NewHub creates a new event hub
func NewHub(logger *logging.Logger, metrics *monitoring.Metrics) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// NotifyChange broadcasts a filesystem mutation to all connected clients
func (h *Hub) NotifyChange(op string, path string) {
	if h.metrics != nil {
		h.metrics.RecordFileChange(op)
	}
	h.broadcast(types.WSMessage{
		Type: "fs.change",
		Data: map[string]interface{}{
			"op":        op,
			"path":      path,
			"timestamp": time.Now().Unix(),
		},
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg types.WSMessage) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		if err := cl.write(msg); err != nil {
			h.logger.Debug("WebSocket write failed, dropping client", zap.Error(err))
			h.remove(cl)
			continue
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("out", msg.Type)
		}
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	_, present := h.clients[cl]
	delete(h.clients, cl)
	h.mu.Unlock()
	if present {
		cl.conn.Close()
		if h.metrics != nil {
			h.metrics.DecWSConnections()
		}
	}
}
