package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/obs"
	"github.com/noah-isme/backend-food/internal/resilience"
)

// EventReader loads events and marks them delivered.
type EventReader interface {
	GetDomainEvent(ctx context.Context, id pgtype.UUID) (dbgen.DomainEvent, error)
	MarkDomainEventDelivered(ctx context.Context, id pgtype.UUID) error
}

// Envelope is the JSON document posted to the webhook.
type Envelope struct {
	ID          string          `json:"id"`
	Topic       string          `json:"topic"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// DeliveryHandler processes events:deliver tasks. With no URL configured the
// event is logged and marked delivered.
type DeliveryHandler struct {
	Q      EventReader
	HTTP   *resilience.HTTPClient
	URL    string
	Logger zerolog.Logger
}

// ProcessTask implements asynq.Handler.
func (h *DeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		obs.EventDeliveriesTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("decode task payload: %v: %w", err, asynq.SkipRetry)
	}
	id, err := common.ParseUUID(payload.EventID)
	if err != nil {
		obs.EventDeliveriesTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("event id: %v: %w", err, asynq.SkipRetry)
	}
	event, err := h.Q.GetDomainEvent(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			obs.EventDeliveriesTotal.WithLabelValues("missing").Inc()
			return fmt.Errorf("event %s: %w", payload.EventID, asynq.SkipRetry)
		}
		return err
	}
	if event.DeliveredAt.Valid {
		obs.EventDeliveriesTotal.WithLabelValues("duplicate").Inc()
		return nil
	}
	logger := h.Logger.With().Str("event_id", payload.EventID).Str("topic", event.Topic).Logger()

	if h.URL == "" || h.HTTP == nil {
		logger.Info().RawJSON("payload", event.Payload).Msg("event_logged")
		obs.EventDeliveriesTotal.WithLabelValues("logged").Inc()
		return h.Q.MarkDomainEventDelivered(ctx, event.ID)
	}

	if err := h.post(ctx, event); err != nil {
		obs.EventDeliveriesTotal.WithLabelValues("failed").Inc()
		logger.Warn().Err(err).Msg("event_delivery_failed")
		return err
	}
	obs.EventDeliveriesTotal.WithLabelValues("delivered").Inc()
	logger.Debug().Msg("event_delivered")
	return h.Q.MarkDomainEventDelivered(ctx, event.ID)
}

func (h *DeliveryHandler) post(ctx context.Context, event dbgen.DomainEvent) error {
	body, err := json.Marshal(Envelope{
		ID:          common.UUIDString(event.ID),
		Topic:       event.Topic,
		AggregateID: common.UUIDString(event.AggregateID),
		OccurredAt:  event.OccurredAt.Time.UTC(),
		Payload:     json.RawMessage(event.Payload),
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %v: %w", err, asynq.SkipRetry)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %v: %w", err, asynq.SkipRetry)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", common.UUIDString(event.ID))
	req.Header.Set("X-Event-Topic", event.Topic)

	resp, err := h.HTTP.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	statusErr := &resilience.StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return errors.Join(statusErr, asynq.SkipRetry)
	}
	return statusErr
}

// LogNotifier writes every emitted event to the logger at debug level.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event dbgen.DomainEvent) error {
	n.Logger.Debug().
		Str("event_id", common.UUIDString(event.ID)).
		Str("topic", event.Topic).
		Str("aggregate_id", common.UUIDString(event.AggregateID)).
		Msg("event_emitted")
	return nil
}
