package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"vistratv-be/internal/model"
	"vistratv-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries notification frames between API instances so a
// user connected to instance A still receives events handled on B.
const clusterChannel = "notif_cluster_events"

// Hub tracks live websocket connections per user and fans notification
// frames out to them, locally and via Redis pub/sub across instances.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// rdb may be nil when Redis is not configured; the hub then only
	// serves connections held by this instance.
	rdb *redis.Client

	// instanceID marks frames this hub published so the cluster consumer
	// can skip them; local clients already got the frame directly.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.consumeCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a notification to every connection the user holds, here
// and on sibling instances.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	frame := encodeFrame(notification)

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()
	h.deliverLocal(clients, frame)

	h.publishCluster(userID.String(), frame)
}

// Broadcast delivers a notification to every connected user.
func (h *Hub) Broadcast(notification model.Notification) {
	frame := encodeFrame(notification)

	h.mu.RLock()
	all := make([]*Client, 0, len(h.clients))
	for _, clients := range h.clients {
		all = append(all, clients...)
	}
	h.mu.RUnlock()
	h.deliverLocal(all, frame)

	h.publishCluster("*", frame)
}

func encodeFrame(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

// deliverLocal writes a frame to each client, evicting any whose send
// buffer is full rather than blocking the hub.
func (h *Hub) deliverLocal(clients []*Client, frame []byte) {
	for _, client := range clients {
		select {
		case client.Send <- frame:
		default:
			h.logger.Warn("Hub", "Send buffer full, evicting client", map[string]interface{}{"user_id": client.UserID})
			close(client.Send)
			h.unregister <- client
		}
	}
}

type clusterFrame struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) publishCluster(target string, frame []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterFrame{Origin: h.instanceID, TargetUserID: target, Message: frame})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// consumeCluster subscribes to the shared channel and replays frames to
// whichever of the targeted user's connections this instance holds.
func (h *Hub) consumeCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame clusterFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			h.logger.Warn("Hub", "Malformed cluster frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		if frame.Origin == h.instanceID {
			continue
		}

		if frame.TargetUserID == "*" {
			h.mu.RLock()
			all := make([]*Client, 0, len(h.clients))
			for _, clients := range h.clients {
				all = append(all, clients...)
			}
			h.mu.RUnlock()
			h.deliverLocal(all, frame.Message)
			continue
		}

		uid, err := uuid.Parse(frame.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()
		h.deliverLocal(clients, frame.Message)
	}
}
