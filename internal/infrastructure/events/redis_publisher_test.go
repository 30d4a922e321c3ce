package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"stable-route.backend/internal/domain/entities"
)

func TestRedisPublisherSerializesEvent(t *testing.T) {
	var gotChannel string
	var gotPayload []byte

	orig := redisPublish
	redisPublish = func(ctx context.Context, channel string, payload interface{}) error {
		gotChannel = channel
		gotPayload = payload.([]byte)
		return nil
	}
	defer func() { redisPublish = orig }()

	p := NewRedisPublisher("")
	event := &entities.TransferEvent{
		TransferID: null.StringFrom("0xabc"),
		EventType:  entities.TransferEventTypeInitiated,
		Protocol:   entities.ProtocolCCTP,
		Token:      "0x2222222222222222222222222222222222222222",
		Amount:     "1000",
	}

	require.NoError(t, p.Publish(context.Background(), event))
	assert.Equal(t, DefaultChannel, gotChannel)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(gotPayload, &decoded))
	assert.Equal(t, "TRANSFER_INITIATED", decoded["eventType"])
	assert.Equal(t, "1000", decoded["amount"])
}

func TestRedisPublisherCustomChannel(t *testing.T) {
	var gotChannel string

	orig := redisPublish
	redisPublish = func(ctx context.Context, channel string, payload interface{}) error {
		gotChannel = channel
		return nil
	}
	defer func() { redisPublish = orig }()

	p := NewRedisPublisher("settlements")
	require.NoError(t, p.Publish(context.Background(), &entities.TransferEvent{}))
	assert.Equal(t, "settlements", gotChannel)
}
