package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"salespoint/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type mockMessagePublisher struct {
	mock.Mock
}

func (m *mockMessagePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestEventSubjectMapper_MapEventToSubject(t *testing.T) {
	mapper := NewEventSubjectMapper()

	assert.Equal(t, "salespoint.entries.recorded", mapper.MapEventToSubject(events.EntryRecordedEvent{}))
	assert.Equal(t, "salespoint.entries.deleted", mapper.MapEventToSubject(events.EntryDeletedEvent{}))
	assert.Equal(t, "salespoint.entries.day_reset", mapper.MapEventToSubject(events.DayResetEvent{}))
	assert.Equal(t, "salespoint.settings.saved", mapper.MapEventToSubject(events.SettingsSavedEvent{}))
	assert.Equal(t, "salespoint.monthly.override_saved", mapper.MapEventToSubject(events.MonthlyOverrideSavedEvent{}))
	assert.Equal(t, "salespoint.monthly.override_cleared", mapper.MapEventToSubject(events.MonthlyOverrideClearedEvent{}))
	assert.Equal(t, []string{"salespoint.>"}, mapper.StreamSubjects())
}

func TestNATSEventPublisher_Publish_WrapsEnvelope(t *testing.T) {
	ctx := context.Background()
	client := new(mockMessagePublisher)
	publisher := NewNATSEventPublisher(client, NewEventSubjectMapper())
	publisher.now = func() time.Time { return time.Date(2025, time.October, 15, 2, 0, 0, 0, time.UTC) }

	var captured []byte
	client.On("Publish", ctx, "salespoint.entries.recorded", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).([]byte) }).
		Return(nil)

	err := publisher.Publish(ctx, events.EntryRecordedEvent{Team: "team1", Date: "2025-10-15", Checkpoint: 11, Calls: 40})
	require.NoError(t, err)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(captured, &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "entry_recorded", envelope.EventType)
	assert.Equal(t, "salespoint", envelope.SourceService)
	assert.Equal(t, 2, envelope.Timestamp.Hour())

	var payload events.EntryRecordedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, 40, payload.Calls)
	client.AssertExpectations(t)
}

func TestNATSEventPublisher_Publish_Errors(t *testing.T) {
	ctx := context.Background()

	noStream := new(mockMessagePublisher)
	noStream.On("Publish", ctx, mock.Anything, mock.Anything).Return(errors.New("nats: no response from stream"))
	assert.NoError(t, NewNATSEventPublisher(noStream, NewEventSubjectMapper()).Publish(ctx, events.DayResetEvent{}))

	failing := new(mockMessagePublisher)
	failing.On("Publish", ctx, mock.Anything, mock.Anything).Return(errors.New("connection closed"))
	err := NewNATSEventPublisher(failing, NewEventSubjectMapper()).Publish(ctx, events.DayResetEvent{})
	assert.ErrorContains(t, err, "failed to publish event to NATS")
}

func TestNATSEventPublisher_Forward(t *testing.T) {
	client := new(mockMessagePublisher)
	done := make(chan struct{})
	client.On("Publish", mock.Anything, "salespoint.settings.saved", mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil)

	bus := events.NewBus()
	NewNATSEventPublisher(client, NewEventSubjectMapper()).Forward(bus)
	bus.Emit(context.Background(), events.SettingsSavedEvent{Team: "team1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded")
	}
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "```json\n{\"calls\": 3}"},
				{Text: "\n```"},
			}},
		}},
	}
	assert.Equal(t, "```json\n{\"calls\": 3}\n```", responseText(resp))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)
}
