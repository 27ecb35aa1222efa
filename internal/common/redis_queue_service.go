package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueueService provides queue functionality using Redis Streams
type RedisQueueService struct {
	client *redis.Client
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client) *RedisQueueService {
	return &RedisQueueService{
		client: client,
	}
}

// ReconcileItem marks a dirty ledger range awaiting a rebuild sweep.
// FromDate is "YYYY-MM-DD"; empty means the whole scope.
type ReconcileItem struct {
	OrganizationID string `json:"organization_id"`
	AircraftID     string `json:"aircraft_id"`
	FromDate       string `json:"from_date,omitempty"`
	Reason         string `json:"reason,omitempty"`
	EnqueuedAt     string `json:"enqueued_at"`
}

// EnqueueReconcile adds a dirty range to the reconcile stream.
func (s *RedisQueueService) EnqueueReconcile(ctx context.Context, streamName string, item *ReconcileItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal reconcile item: %w", err)
	}

	// XADD stream_name * data <json>
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// DequeueReconcile reads one dirty range using a consumer group.
// Returns (item, messageID, error); a nil item means timeout with no work.
func (s *RedisQueueService) DequeueReconcile(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*ReconcileItem, string, error) {
	// XREADGROUP GROUP group consumer BLOCK milliseconds COUNT 1 STREAMS stream >
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			// No messages available (timeout)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, msg.ID, fmt.Errorf("message %s has no data field", msg.ID)
	}

	var item ReconcileItem
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, msg.ID, fmt.Errorf("failed to unmarshal reconcile item: %w", err)
	}

	return &item, msg.ID, nil
}

// AckMessage acknowledges a processed message in the consumer group.
func (s *RedisQueueService) AckMessage(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup ensures the consumer group exists for a stream.
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

// QueueDepth returns the number of entries currently in a stream.
func (s *RedisQueueService) QueueDepth(ctx context.Context, streamName string) (int64, error) {
	return s.client.XLen(ctx, streamName).Result()
}

// ClaimStale reassigns messages idle longer than minIdle to the given
// consumer so an interrupted sweep is retried rather than lost.
func (s *RedisQueueService) ClaimStale(ctx context.Context, streamName, groupName, consumerName string, minIdle time.Duration) ([]*ReconcileItem, []string, error) {
	msgs, _, err := s.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   streamName,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdle,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	var items []*ReconcileItem
	var ids []string
	for _, msg := range msgs {
		dataStr, ok := msg.Values["data"].(string)
		if !ok {
			log.Printf("[RedisQueue] Warning: claimed message %s has no data field", msg.ID)
			continue
		}
		var item ReconcileItem
		if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
			log.Printf("[RedisQueue] Warning: failed to unmarshal claimed message %s: %v", msg.ID, err)
			continue
		}
		items = append(items, &item)
		ids = append(ids, msg.ID)
	}

	return items, ids, nil
}
