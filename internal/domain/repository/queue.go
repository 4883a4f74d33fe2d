package repository

import (
	"context"

	"github.com/google/uuid"
)

// ReclaimTask asks the worker to delete remote assets no record points at.
type ReclaimTask struct {
	AssetIDs   []string  `json:"asset_ids"`
	Reason     string    `json:"reason"`
	VideoID    uuid.UUID `json:"video_id,omitempty"`
	RetryCount int       `json:"retry_count"`
}

// MessageQueue defines the interface for message queue operations.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type MessageQueue interface {
	// PublishReclaimTask sends a reclaim task to the queue.
	// Used by the API server after a publish left orphaned assets.
	PublishReclaimTask(ctx context.Context, task ReclaimTask) error

	// ConsumeReclaimTasks blocks, calling handler for each received task until ctx is done.
	// Used by the worker service.
	ConsumeReclaimTasks(ctx context.Context, handler func(task ReclaimTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
