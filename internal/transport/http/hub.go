package http

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"live-quiz-service/internal/domain"
)

// client is one websocket connection. player is only read and written by
// the connection's reader goroutine; the queue is shared with the loop.
type client struct {
	id     string
	player string

	mu     sync.Mutex
	queue  []outboundMessage[any]
	limit  int
	closed bool
	ready  chan struct{}
}

func newClient(id string, limit int) *client {
	return &client{id: id, limit: limit, ready: make(chan struct{}, 1)}
}

// deliver queues msg without blocking and reports false if anything was
// discarded. A full queue first gives up a scoreUpdate that a newer one
// supersedes, then the oldest answerUpdate. Replies and question events
// are only dropped when nothing else is left to give up.
func (c *client) deliver(msg outboundMessage[any]) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	lossless := true
	if len(c.queue) >= c.limit {
		lossless = false
		switch i := c.evictable(msg); {
		case i >= 0:
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
		case msg.Type == TypeAnswerUpdate:
			c.mu.Unlock()
			return false
		default:
			c.queue = c.queue[1:]
		}
	}
	c.queue = append(c.queue, msg)
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
	return lossless
}

func (c *client) evictable(incoming outboundMessage[any]) int {
	first, scores := -1, 0
	for i, m := range c.queue {
		if m.Type == TypeScoreUpdate {
			if first < 0 {
				first = i
			}
			scores++
		}
	}
	if first >= 0 && (scores > 1 || incoming.Type == TypeScoreUpdate) {
		return first
	}
	for i, m := range c.queue {
		if m.Type == TypeAnswerUpdate {
			return i
		}
	}
	return -1
}

// next blocks until a message is queued. It returns false once the client
// is closed.
func (c *client) next() (outboundMessage[any], bool) {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return outboundMessage[any]{}, false
		}
		if len(c.queue) > 0 {
			msg := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return msg, true
		}
		c.mu.Unlock()
		<-c.ready
	}
}

func (c *client) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *client) close() {
	c.mu.Lock()
	c.closed = true
	c.queue = nil
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// Hub tracks connected clients and implements app.Notifier by broadcasting
// to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	buffer  int
	logger  *zap.Logger
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		buffer:  buffer,
		logger:  logger,
	}
}

func (h *Hub) register() *client {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := newClient(uuid.NewString(), h.buffer)
	h.clients[c] = struct{}{}
	return c
}

// unregister removes and closes c. Safe to call twice.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg outboundMessage[any]) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.deliver(msg) {
			h.logger.Warn("slow client lost queued messages", zap.String("client", c.id), zap.String("type", msg.Type))
		}
	}
}

func (h *Hub) QuestionStarted(q domain.PublicQuestion) {
	h.broadcast(message(TypeNewQuestion, q))
}

func (h *Hub) ScoresChanged(board domain.Scoreboard) {
	h.broadcast(message(TypeScoreUpdate, board))
}

func (h *Hub) AnswerReceived(update domain.AnswerUpdate) {
	h.broadcast(message(TypeAnswerUpdate, update))
}

func (h *Hub) QuestionEnded(ended domain.QuestionEnded) {
	h.broadcast(message(TypeQuestionEnded, ended))
}
