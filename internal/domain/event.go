package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a lifecycle trigger.
type Event string

const (
	EventSubmit           Event = "submit"
	EventDispatcherAssign Event = "dispatcherAssign"
	EventDriverAccept     Event = "driverAccept"
	EventDriverComplete   Event = "driverComplete"
	EventCancel           Event = "cancel"
)

type IncidentChangeEvent struct {
	IncidentID       uuid.UUID      `json:"incidentId"`
	PreviousStatus   IncidentStatus `json:"previousStatus"`
	NewStatus        IncidentStatus `json:"newStatus"`
	Version          int64          `json:"version"`
	IncidentSnapshot *Incident      `json:"incidentSnapshot"`
	OccurredAt       time.Time      `json:"occurredAt"`
	// Replayed marks current state re-sent after a relay reconnect rather
	// than a change observed live.
	Replayed bool `json:"replayed,omitempty"`
}

func NewChangeEvent(prev IncidentStatus, inc *Incident) IncidentChangeEvent {
	return IncidentChangeEvent{
		IncidentID:       inc.ID,
		PreviousStatus:   prev,
		NewStatus:        inc.Status,
		Version:          inc.Version,
		IncidentSnapshot: inc.Clone(),
		OccurredAt:       inc.Timestamps.UpdatedAt,
	}
}

// SubscriptionFilter selects which incidents a portal may observe.
type SubscriptionFilter struct {
	Role        Role   `json:"role"`
	OwnerID     string `json:"ownerId,omitempty"`
	AmbulanceID string `json:"ambulanceId,omitempty"`
	HospitalID  string `json:"hospitalId,omitempty"`
}

// FilterFor derives the only filter an actor is allowed to subscribe with.
func FilterFor(a Actor) SubscriptionFilter {
	switch a.Role {
	case RoleCitizen:
		return SubscriptionFilter{Role: RoleCitizen, OwnerID: a.UserID}
	case RoleDriver:
		return SubscriptionFilter{Role: RoleDriver, AmbulanceID: a.AmbulanceID}
	case RoleHospital:
		return SubscriptionFilter{Role: RoleHospital, HospitalID: a.HospitalID}
	default:
		return SubscriptionFilter{Role: a.Role}
	}
}

// Matches reports whether inc is visible under the filter. prev is the
// status before the change, so a dispatcher still sees the final move into
// a terminal state.
func (f SubscriptionFilter) Matches(prev IncidentStatus, inc *Incident) bool {
	if inc == nil {
		return false
	}
	switch f.Role {
	case RoleCitizen:
		return f.OwnerID != "" && inc.OwnerID == f.OwnerID
	case RoleDispatcher:
		return !inc.Status.Terminal() || (prev != "" && !prev.Terminal())
	case RoleDriver:
		return f.AmbulanceID != "" && (sameID(inc.AssignedAmbulanceID, f.AmbulanceID) || sameID(inc.ReleasedAmbulanceID, f.AmbulanceID))
	case RoleHospital:
		return f.HospitalID != "" && sameID(inc.AssignedHospitalID, f.HospitalID)
	}
	return false
}

// Accepts is Matches for a change event. A replayed terminal incident still
// reaches dispatchers, who may have missed the live move into that state.
func (f SubscriptionFilter) Accepts(ev IncidentChangeEvent) bool {
	if ev.Replayed && f.Role == RoleDispatcher && ev.IncidentSnapshot != nil {
		return true
	}
	return f.Matches(ev.PreviousStatus, ev.IncidentSnapshot)
}

func sameID(p *string, id string) bool {
	return p != nil && *p == id
}

// CanView applies the subscription visibility rule to point reads.
func (a Actor) CanView(inc *Incident) bool {
	if a.Role == RoleDispatcher {
		return true
	}
	return FilterFor(a).Matches(inc.Status, inc)
}
