package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection interface {
	Channel() (amqpChannel, error)
	IsClosed() bool
	Close() error
}

type amqpDialer func(url string) (amqpConnection, error)

type brokerConnection struct {
	*amqp.Connection
}

func (b brokerConnection) Channel() (amqpChannel, error) {
	ch, err := b.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return brokerConnection{conn}, nil
}

// AMQPSink publishes firings to a topic exchange keyed wwebjs.<event>.
// A dropped connection is redialed once on the next Forward.
type AMQPSink struct {
	mu       sync.Mutex
	url      string
	exchange string
	dial     amqpDialer
	conn     amqpConnection
}

func NewAMQPSink(url string, exchange string) (*AMQPSink, error) {
	return newAMQPSink(url, exchange, dialAMQP)
}

func newAMQPSink(url string, exchange string, dial amqpDialer) (*AMQPSink, error) {
	s := &AMQPSink{url: url, exchange: exchange, dial: dial}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

// connect dials and declares the exchange. Callers hold mu, except the
// constructor.
func (s *AMQPSink) connect() error {
	conn, err := s.dial(s.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(s.exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	s.conn = conn
	return nil
}

// channel opens a channel on the live connection, redialing once when the
// connection is gone or refuses a channel.
func (s *AMQPSink) channel() (amqpChannel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && !s.conn.IsClosed() {
		ch, err := s.conn.Channel()
		if err == nil {
			return ch, nil
		}
		log.SinkOp(SinkAMQP, "").WithError(err).Warn("Channel open failed, redialing")
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}

	if err := s.connect(); err != nil {
		return nil, err
	}
	log.SinkOp(SinkAMQP, "").Info("Reconnected")
	return s.conn.Channel()
}

func (s *AMQPSink) Name() string {
	return SinkAMQP
}

func RoutingKey(event string) string {
	if event == "" {
		event = "unknown"
	}
	return "wwebjs." + event
}

func (s *AMQPSink) Forward(ctx context.Context, firing Firing) error {
	ch, err := s.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	msgID := firing.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}

	key := RoutingKey(firing.Event)
	err = ch.PublishWithContext(ctx, s.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msgID,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"trigger_id": firing.TriggerID,
			"session_id": firing.SessionID,
		},
		Body: firing.Payload,
	})
	if err == nil {
		log.SinkOp(SinkAMQP, firing.TriggerID).WithField("key", key).Debug("Firing published")
	}
	return err
}

func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
