package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"live-quiz-service/internal/app"
	"live-quiz-service/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096 // inbound messages carry a name, an option or an index
)

type WSHandler struct {
	service  *app.QuizService
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWSHandler(service *app.QuizService, hub *Hub, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var c *client
	err = h.service.Attach(ctx, func(welcome app.Welcome) {
		c = h.hub.register()
		c.deliver(message(TypeQuestionsList, welcome.Questions))
		c.deliver(message(TypeScoreUpdate, welcome.Scores))
	})
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	log := h.logger.With(zap.String("client", c.id), zap.String("remote", r.RemoteAddr))
	log.Info("socket connected")
	conn.SetReadLimit(maxMessageSize)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			msg, ok := c.next()
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", zap.Error(err))
				// Unblock the reader; it unregisters the client.
				_ = conn.Close()
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				log.Warn("inbound message too large, closing")
			}
			break
		}
		if err := h.dispatch(ctx, c, inbound, log); err != nil {
			log.Warn("event loop unavailable", zap.Error(err))
			break
		}
	}

	h.hub.unregister(c)
	<-writerDone
	log.Info("socket disconnected", zap.String("player", c.player))
}

// dispatch handles one inbound message. Rejections are reported to the
// sender only; a non-nil return means the connection should be dropped.
func (h *WSHandler) dispatch(ctx context.Context, c *client, inbound inboundMessage, log *zap.Logger) error {
	switch inbound.Type {
	case TypeJoin:
		var name string
		if err := json.Unmarshal(inbound.Payload, &name); err != nil {
			c.deliver(errorMessage("invalid join payload"))
			return nil
		}
		if err := h.service.Join(ctx, name); err != nil {
			if errors.Is(err, domain.ErrNotJoined) {
				// Empty names are ignored.
				return nil
			}
			return err
		}
		c.player = name

	case TypeStartQuestion:
		var index int
		if err := json.Unmarshal(inbound.Payload, &index); err != nil {
			c.deliver(errorMessage(errorText(domain.ErrInvalidQuestionIndex)))
			return nil
		}
		if err := h.service.StartQuestion(ctx, index); err != nil {
			if errors.Is(err, domain.ErrInvalidQuestionIndex) {
				c.deliver(errorMessage(errorText(err)))
				return nil
			}
			return err
		}

	case TypeEndQuestion:
		return h.service.EndQuestion(ctx)

	case TypeSubmitAnswer:
		var option string
		if err := json.Unmarshal(inbound.Payload, &option); err != nil {
			c.deliver(errorMessage("invalid answer payload"))
			return nil
		}
		_, err := h.service.SubmitAnswer(ctx, c.player, option, func(points int) {
			c.deliver(message(TypeYourPoints, pointsPayload{Points: points}))
		})
		if err != nil {
			if !isRejection(err) {
				return err
			}
			log.Debug("answer rejected", zap.String("player", c.player), zap.Error(err))
			c.deliver(errorMessage(errorText(err)))
		}

	default:
		c.deliver(errorMessage("unsupported message type"))
	}
	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrNotJoined) ||
		errors.Is(err, domain.ErrNoActiveQuestion) ||
		errors.Is(err, domain.ErrDuplicateAnswer)
}
