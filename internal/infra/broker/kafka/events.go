package kafka

import (
	"context"
	"encoding/json"
	"time"

	"villastay/internal/domain/enquiry"
)

const enquiryEventsTopic = "enquiry-events"

// EventPublisher ships enquiry lifecycle events to the notification
// pipeline, keyed by villa so per-villa ordering holds within a
// partition.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
}

type eventEnvelope struct {
	Event      string    `json:"event"`
	EnquiryID  string    `json:"enquiry_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (p *EventPublisher) Publish(ctx context.Context, event enquiry.Event) error {
	envelope := eventEnvelope{
		Event:      event.EventName(),
		EnquiryID:  event.AggregateID(),
		OccurredAt: event.OccurredAt(),
		Payload:    event,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, p.TopicPrefix+enquiryEventsTopic, villaKey(event), payload, map[string]string{
		"event": event.EventName(),
	})
}

func villaKey(event enquiry.Event) string {
	switch e := event.(type) {
	case enquiry.Submitted:
		return e.VillaID
	case enquiry.Contacted:
		return e.VillaID
	case enquiry.Confirmed:
		return e.VillaID
	case enquiry.Cancelled:
		return e.VillaID
	case enquiry.DatesUnavailable:
		return e.VillaID
	case enquiry.ManualBlockCreated:
		return e.VillaID
	}
	return event.AggregateID()
}
