package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is the outbound notification for integrations.
type WebhookPayload struct {
	IncidentID     uuid.UUID      `json:"incidentId"`
	PreviousStatus IncidentStatus `json:"previousStatus"`
	NewStatus      IncidentStatus `json:"newStatus"`
	Version        int64          `json:"version"`
	Incident       *Incident      `json:"incident"`
	SentAt         time.Time      `json:"sentAt"`
}

func WebhookFromEvent(ev IncidentChangeEvent) WebhookPayload {
	return WebhookPayload{
		IncidentID:     ev.IncidentID,
		PreviousStatus: ev.PreviousStatus,
		NewStatus:      ev.NewStatus,
		Version:        ev.Version,
		Incident:       ev.IncidentSnapshot,
		SentAt:         time.Now().UTC(),
	}
}
