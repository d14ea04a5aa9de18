package webhook

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

const websocketWriteWait = 10 * time.Second

// WebsocketSink writes one text frame per firing. A broken connection is
// dropped and redialed on the next firing.
type WebsocketSink struct {
	url string

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocketSink(ctx context.Context, url string) (*WebsocketSink, error) {
	s := &WebsocketSink{url: url}
	if err := s.dial(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *WebsocketSink) dial(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *WebsocketSink) Name() string {
	return SinkWebsocket
}

func (s *WebsocketSink) Forward(ctx context.Context, firing Firing) error {
	frame, err := json.Marshal(firing)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.dial(ctx); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(websocketWriteWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = s.conn.SetWriteDeadline(deadline)
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.conn.Close()
		s.conn = nil
		return err
	}

	log.SinkOp(SinkWebsocket, firing.TriggerID).Debug("Firing written")
	return nil
}

func (s *WebsocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	err := s.conn.Close()
	s.conn = nil
	return err
}
