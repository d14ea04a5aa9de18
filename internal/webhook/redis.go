package webhook

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// RedisSink appends firings to a stream.
type RedisSink struct {
	rdb    *redis.Client
	stream string
}

func NewRedisSink(ctx context.Context, url string, stream string) (*RedisSink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &RedisSink{rdb: rdb, stream: stream}, nil
}

func (s *RedisSink) Name() string {
	return SinkRedis
}

func (s *RedisSink) Forward(ctx context.Context, firing Firing) error {
	id, err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":          firing.ID,
			"trigger_id":  firing.TriggerID,
			"event":       firing.Event,
			"session_id":  firing.SessionID,
			"received_at": firing.ReceivedAt.Format(time.RFC3339Nano),
			"payload":     string(firing.Payload),
		},
	}).Result()
	if err != nil {
		return err
	}
	log.SinkOp(SinkRedis, firing.TriggerID).WithField("entry", id).Debug("Firing appended")
	return nil
}

func (s *RedisSink) Close() error {
	return s.rdb.Close()
}
