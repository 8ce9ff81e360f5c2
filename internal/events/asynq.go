package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// TaskDeliver is the asynq task type carrying one domain event delivery.
const TaskDeliver = "events:deliver"

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DeliverPayload is the body of an events:deliver task.
type DeliverPayload struct {
	EventID string `json:"event_id"`
	Topic   string `json:"topic"`
}

// AsynqScheduler enqueues one delivery task per event. The event id doubles as
// the task id so a re-emitted event is not delivered twice.
type AsynqScheduler struct {
	Client   Enqueuer
	Queue    string
	MaxRetry int
}

// Schedule implements DeliveryScheduler.
func (s AsynqScheduler) Schedule(ctx context.Context, event dbgen.DomainEvent) error {
	if s.Client == nil {
		return errors.New("events: asynq client not configured")
	}
	id := common.UUIDString(event.ID)
	if id == "" {
		return errors.New("events: event id is required")
	}
	body, err := json.Marshal(DeliverPayload{EventID: id, Topic: event.Topic})
	if err != nil {
		return err
	}
	opts := []asynq.Option{asynq.TaskID(id)}
	if s.Queue != "" {
		opts = append(opts, asynq.Queue(s.Queue))
	}
	if s.MaxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(s.MaxRetry))
	}
	if _, err := s.Client.EnqueueContext(ctx, asynq.NewTask(TaskDeliver, body), opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue %s: %w", TaskDeliver, err)
	}
	return nil
}
