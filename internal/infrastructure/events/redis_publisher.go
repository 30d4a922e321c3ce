package events

import (
	"context"
	"encoding/json"

	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/pkg/redis"
)

// DefaultChannel is the pub/sub channel the live event feed fans out on.
const DefaultChannel = "transfer-events"

var redisPublish = redis.Publish

// RedisPublisher fans events out over Redis pub/sub. The durable copy lives
// in the transfer_events table; subscribers that miss a message re-read it
// from there.
type RedisPublisher struct {
	channel string
}

// NewRedisPublisher creates a publisher on the given channel, or
// DefaultChannel when empty.
func NewRedisPublisher(channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event *entities.TransferEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return redisPublish(ctx, p.channel, payload)
}
