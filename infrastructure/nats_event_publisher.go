package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"salespoint/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// messagePublisher is the slice of NATSClient the event publisher needs
type messagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventEnvelope wraps every event forwarded to NATS
type EventEnvelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards domain events to NATS subjects
type NATSEventPublisher struct {
	client        messagePublisher
	subjectMapper *EventSubjectMapper
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(client messagePublisher, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		client:        client,
		subjectMapper: subjectMapper,
		now:           time.Now,
	}
}

// Publish wraps event in an envelope and publishes it to its subject
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: clientName,
		Payload:       payload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.client.Publish(ctx, subject, envelopeData); err != nil {
		// No stream captures the subject; nothing downstream is listening
		if strings.Contains(err.Error(), "no response from stream") {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// Forward subscribes the publisher to every event on bus
func (p *NATSEventPublisher) Forward(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := p.Publish(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to forward event to NATS")
		}
	})
	log.WithField("eventTypes", len(events.AllEventTypes)).Info("Forwarding domain events to NATS")
}
