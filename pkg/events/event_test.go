package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "credit-123"
	tenantID := "tenant-456"

	before := time.Now().UTC()
	event := NewBaseEvent("credit.schedule.recomputed", aggregateID, "Credit", tenantID)
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "credit.schedule.recomputed" {
		t.Errorf("expected event type %q, got %q", "credit.schedule.recomputed", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "Credit" {
		t.Errorf("expected aggregate type %q, got %q", "Credit", event.AggregateType())
	}
	if event.TenantID() != tenantID {
		t.Errorf("expected tenant ID %q, got %q", tenantID, event.TenantID())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

type sampleEvent struct {
	BaseEvent
	Created int `json:"created"`
}

func TestMarshalEnvelope(t *testing.T) {
	evt := sampleEvent{
		BaseEvent: NewBaseEvent("credit.schedule.payments_bulk_created", "credit-1", "Credit", "tenant-1"),
		Created:   3,
	}

	data, err := Marshal(evt)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.EventID != evt.EventID() {
		t.Errorf("expected event ID %q, got %q", evt.EventID(), env.EventID)
	}
	if env.TenantID != "tenant-1" {
		t.Errorf("expected tenant tenant-1, got %q", env.TenantID)
	}

	var payload map[string]any
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["created"] != float64(3) {
		t.Errorf("expected payload created=3, got %v", payload["created"])
	}
	if len(payload) != 1 {
		t.Errorf("expected only the event's own fields in payload, got %v", payload)
	}
}
