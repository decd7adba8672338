package events

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnexus/news-api/internal/domain"
)

// mockWriter captures written messages for assertions.
type mockWriter struct {
	messages []kafka.Message
	writeErr error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func newTestEvent(t *testing.T) *domain.Event {
	t.Helper()
	event, err := domain.NewEvent(
		domain.EventTypeArticleCreated,
		domain.AggregateTypeArticle,
		7,
		domain.ArticleCreatedPayload{
			ArticleID: 7,
			Title:     "Running a Node App",
			Topic:     "coding",
			Author:    "jessjelly",
		},
	)
	require.NoError(t, err)
	return event
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaPublisher{writer: writer, logger: zerolog.Nop()}

	event := newTestEvent(t)
	err := publisher.Publish(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.JSONEq(t, `{
		"article_id": 7,
		"title": "Running a Node App",
		"topic": "coding",
		"author": "jessjelly"
	}`, string(msg.Value))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.EventID, headers["event_id"])
	assert.Equal(t, domain.EventTypeArticleCreated, headers["event_type"])
	assert.Equal(t, domain.AggregateTypeArticle, headers["aggregate_type"])
}

func TestKafkaPublisher_Publish_WriteError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	writer := &mockWriter{writeErr: writeErr}
	publisher := &KafkaPublisher{writer: writer, logger: zerolog.Nop()}

	err := publisher.Publish(context.Background(), newTestEvent(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), domain.EventTypeArticleCreated)
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaPublisher{writer: writer, logger: zerolog.Nop()}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestNopPublisher(t *testing.T) {
	publisher := NewNopPublisher()

	assert.NoError(t, publisher.Publish(context.Background(), newTestEvent(t)))
	assert.NoError(t, publisher.Close())
}
