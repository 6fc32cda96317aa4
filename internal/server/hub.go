package server

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/system"
	"github.com/zeusync/crowdsim/pkg/encoding"
)

// viewer is one connected websocket client. Frames are queued on send and
// written by the viewer's own goroutine.
type viewer struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() { close(v.send) })
}

// Hub fans committed frames out to every connected viewer, msgpack encoded
// by default. A viewer that falls behind loses frames instead of stalling the
// tick loop.
type Hub struct {
	mu      sync.Mutex
	viewers map[uuid.UUID]*viewer

	upgrader     websocket.Upgrader
	maxClients   int
	writeTimeout time.Duration
	queue        int
	codec        encoding.Codec
	messageType  int
	logger       log.Log

	latest  atomic.Pointer[[]byte]
	dropped atomic.Uint64
}

func NewHub(cfg Config, logger log.Log) *Hub {
	if logger == nil {
		logger = log.Nop()
	}
	queue := max(cfg.QueueSize, 1)
	codec, err := encoding.Lookup(cfg.Encoding)
	if err != nil {
		logger.Warn("falling back to msgpack frames", log.Error(err))
		codec = encoding.MsgPack
	}
	messageType := websocket.TextMessage
	if codec.Binary() {
		messageType = websocket.BinaryMessage
	}
	return &Hub{
		viewers: make(map[uuid.UUID]*viewer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		maxClients:   cfg.MaxClients,
		writeTimeout: cfg.WriteTimeout,
		queue:        queue,
		codec:        codec,
		messageType:  messageType,
		logger:       logger.With(log.String("component", "hub")),
	}
}

// Attach subscribes the hub to committed ticks on b.
func (h *Hub) Attach(b bus.EventBus) (bus.Subscription, error) {
	return b.Subscribe(system.EventTickCompleted, func(e bus.Event) error {
		frame, ok := e.Data().(*system.Frame)
		if !ok {
			return nil
		}
		return h.Broadcast(frame)
	})
}

// Broadcast encodes frame once and queues it for every viewer. It also
// becomes the frame sent to viewers that connect later.
func (h *Hub) Broadcast(frame *system.Frame) error {
	payload, err := h.codec.Marshal(frame)
	if err != nil {
		return err
	}
	h.latest.Store(&payload)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.viewers {
		select {
		case v.send <- payload:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Dropped returns how many queued frames were discarded for slow viewers.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// ServeHTTP upgrades the request and streams frames until the peer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.maxClients > 0 && h.Clients() >= h.maxClients {
		h.logger.Warn("Maximum clients reached, rejecting viewer",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	v := &viewer{id: uuid.New(), conn: conn, send: make(chan []byte, h.queue)}
	if latest := h.latest.Load(); latest != nil {
		v.send <- *latest
	}
	if err = h.add(v); err != nil {
		h.logger.Warn("Maximum clients reached, closing viewer",
			log.String("remote_addr", r.RemoteAddr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	defer h.remove(v)

	go h.writeLoop(v)

	// Viewers only listen; reading detects the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, v := range h.viewers {
		v.close()
		_ = v.conn.Close()
		delete(h.viewers, id)
	}
}

// add registers v unless the hub is already full. The limit is checked again
// here because concurrent upgrades all pass the check in ServeHTTP.
func (h *Hub) add(v *viewer) error {
	h.mu.Lock()
	if h.maxClients > 0 && len(h.viewers) >= h.maxClients {
		h.mu.Unlock()
		return ErrMaxClientsReached
	}
	h.viewers[v.id] = v
	total := len(h.viewers)
	h.mu.Unlock()

	h.logger.Info("Viewer connected",
		log.String("client_id", v.id.String()),
		log.String("remote_addr", v.conn.RemoteAddr().String()),
		log.Int("total_clients", total))
	return nil
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	delete(h.viewers, v.id)
	total := len(h.viewers)
	h.mu.Unlock()

	v.close()
	_ = v.conn.Close()
	h.logger.Info("Viewer disconnected",
		log.String("client_id", v.id.String()),
		log.Int("total_clients", total))
}

func (h *Hub) writeLoop(v *viewer) {
	for payload := range v.send {
		if h.writeTimeout > 0 {
			_ = v.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		if err := v.conn.WriteMessage(h.messageType, payload); err != nil {
			h.logger.Debug("viewer write failed",
				log.String("client_id", v.id.String()),
				log.Error(err))
			_ = v.conn.Close()
			return
		}
	}
}
