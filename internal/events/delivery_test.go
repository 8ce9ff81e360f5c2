package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/db/dbtest"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/resilience"
)

func deliverTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(events.DeliverPayload{EventID: id})
	require.NoError(t, err)
	return asynq.NewTask(events.TaskDeliver, body)
}

func TestDeliveryHandlerPostsEnvelope(t *testing.T) {
	store := dbtest.New()
	bus := events.Bus{Store: store}
	event, err := bus.Emit(context.Background(), events.TopicOrderCreated, toUUID(uuid.New()), map[string]string{"status": "awaiting_confirmation"})
	require.NoError(t, err)

	var received events.Envelope
	var topicHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topicHeader = r.Header.Get("X-Event-Topic")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	h := &events.DeliveryHandler{
		Q:      store,
		HTTP:   &resilience.HTTPClient{Client: srv.Client(), Timeout: time.Second},
		URL:    srv.URL,
		Logger: zerolog.Nop(),
	}
	require.NoError(t, h.ProcessTask(context.Background(), deliverTask(t, uuid.UUID(event.ID.Bytes).String())))
	require.Equal(t, events.TopicOrderCreated, topicHeader)
	require.Equal(t, events.TopicOrderCreated, received.Topic)
	require.JSONEq(t, `{"status":"awaiting_confirmation"}`, string(received.Payload))
	require.True(t, store.Events()[0].DeliveredAt.Valid)

	// already delivered events are acknowledged without a second post
	topicHeader = ""
	require.NoError(t, h.ProcessTask(context.Background(), deliverTask(t, uuid.UUID(event.ID.Bytes).String())))
	require.Empty(t, topicHeader)
}

func TestDeliveryHandlerClientErrorSkipsRetry(t *testing.T) {
	store := dbtest.New()
	bus := events.Bus{Store: store}
	event, err := bus.Emit(context.Background(), events.TopicOrderCanceled, toUUID(uuid.New()), nil)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	h := &events.DeliveryHandler{Q: store, HTTP: &resilience.HTTPClient{Client: srv.Client()}, URL: srv.URL, Logger: zerolog.Nop()}
	err = h.ProcessTask(context.Background(), deliverTask(t, uuid.UUID(event.ID.Bytes).String()))
	require.Error(t, err)
	require.True(t, errors.Is(err, asynq.SkipRetry))
	require.False(t, store.Events()[0].DeliveredAt.Valid)
}

func TestDeliveryHandlerLogsWithoutURL(t *testing.T) {
	store := dbtest.New()
	bus := events.Bus{Store: store}
	event, err := bus.Emit(context.Background(), events.TopicCheckoutCompleted, toUUID(uuid.New()), nil)
	require.NoError(t, err)

	h := &events.DeliveryHandler{Q: store, Logger: zerolog.Nop()}
	require.NoError(t, h.ProcessTask(context.Background(), deliverTask(t, uuid.UUID(event.ID.Bytes).String())))
	require.True(t, store.Events()[0].DeliveredAt.Valid)
}

func TestDeliveryHandlerMissingEvent(t *testing.T) {
	h := &events.DeliveryHandler{Q: dbtest.New(), Logger: zerolog.Nop()}
	err := h.ProcessTask(context.Background(), deliverTask(t, uuid.NewString()))
	require.True(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), asynq.NewTask(events.TaskDeliver, []byte("{")))
	require.True(t, errors.Is(err, asynq.SkipRetry))
}
