package domain

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentPending    IncidentStatus = "pending"
	IncidentActive     IncidentStatus = "active"
	IncidentAssigned   IncidentStatus = "assigned"
	IncidentDispatched IncidentStatus = "dispatched"
	IncidentCompleted  IncidentStatus = "completed"
	IncidentCancelled  IncidentStatus = "cancelled"
)

// Terminal reports whether no further transition can leave the status.
func (s IncidentStatus) Terminal() bool {
	return s == IncidentCompleted || s == IncidentCancelled
}

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentPending, IncidentActive, IncidentAssigned,
		IncidentDispatched, IncidentCompleted, IncidentCancelled:
		return true
	}
	return false
}

type EmergencyType string

const (
	EmergencyCardiac  EmergencyType = "Cardiac"
	EmergencyAccident EmergencyType = "Accident"
	EmergencyFire     EmergencyType = "Fire"
	EmergencyOther    EmergencyType = "Other"
)

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

type Caller struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	AltPhone    *string `json:"altPhone,omitempty"`
	Description string  `json:"description"`
}

// Location holds the caller position. Lat/Lng are nil only when the
// position was explicitly marked unavailable.
type Location struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Address     *string  `json:"address"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

func (l Location) Known() bool {
	return l.Lat != nil && l.Lng != nil
}

type Timestamps struct {
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	AcceptedAt  *time.Time `json:"acceptedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

type Incident struct {
	ID                  uuid.UUID      `json:"id"`
	EmergencyType       EmergencyType  `json:"emergencyType"`
	Priority            Priority       `json:"priority"`
	Status              IncidentStatus `json:"status"`
	Caller              Caller         `json:"caller"`
	Location            Location       `json:"location"`
	OwnerID             string         `json:"ownerId"`
	AssignedAmbulanceID *string        `json:"assignedAmbulanceId"`
	AssignedHospitalID  *string        `json:"assignedHospitalId"`
	// ReleasedAmbulanceID is the ambulance freed by a cancel; it keeps the
	// driver's view of the incident after AssignedAmbulanceID is cleared.
	ReleasedAmbulanceID *string        `json:"releasedAmbulanceId,omitempty"`
	Timestamps          Timestamps     `json:"timestamps"`
	Version             int64          `json:"version"`
}

// Clone returns a deep copy so callers never share pointers with the store.
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	c := *i
	c.Caller.AltPhone = cloneString(i.Caller.AltPhone)
	c.Location.Lat = cloneFloat(i.Location.Lat)
	c.Location.Lng = cloneFloat(i.Location.Lng)
	c.Location.Address = cloneString(i.Location.Address)
	c.AssignedAmbulanceID = cloneString(i.AssignedAmbulanceID)
	c.AssignedHospitalID = cloneString(i.AssignedHospitalID)
	c.ReleasedAmbulanceID = cloneString(i.ReleasedAmbulanceID)
	c.Timestamps.AcceptedAt = cloneTime(i.Timestamps.AcceptedAt)
	c.Timestamps.CompletedAt = cloneTime(i.Timestamps.CompletedAt)
	c.Timestamps.CancelledAt = cloneTime(i.Timestamps.CancelledAt)
	return &c
}

// IncidentPatch is a field delta for non-status fields. Nil means untouched.
type IncidentPatch struct {
	Address            *string   `json:"address,omitempty" validate:"omitempty,max=512"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	AltPhone           *string   `json:"altPhone,omitempty" validate:"omitempty,phone10"`
	Priority           *Priority `json:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	AssignedHospitalID *string   `json:"assignedHospitalId,omitempty" validate:"omitempty,min=1,max=64"`
}

func (p IncidentPatch) Empty() bool {
	return p.Address == nil && p.Description == nil && p.AltPhone == nil &&
		p.Priority == nil && p.AssignedHospitalID == nil
}

// Apply writes the delta onto inc.
func (p IncidentPatch) Apply(inc *Incident) {
	if p.Address != nil {
		inc.Location.Address = cloneString(p.Address)
	}
	if p.Description != nil {
		inc.Caller.Description = *p.Description
	}
	if p.AltPhone != nil {
		inc.Caller.AltPhone = cloneString(p.AltPhone)
	}
	if p.Priority != nil {
		inc.Priority = *p.Priority
	}
	if p.AssignedHospitalID != nil {
		inc.AssignedHospitalID = cloneString(p.AssignedHospitalID)
	}
}

// StatusChange is a conditional status write: it only commits while the
// stored status still equals From.
type StatusChange struct {
	IncidentID uuid.UUID
	From       IncidentStatus
	To         IncidentStatus
	At         time.Time
	// AmbulanceStatus moves the incident's ambulance along with the incident.
	AmbulanceStatus AmbulanceStatus
	// ReleaseAmbulance frees the incident's ambulance in the same transaction.
	ReleaseAmbulance bool
}

// ApplyTo sets status and the timestamps owned by the target status. A
// cancel clears the assignment, so assignedAmbulanceId is only ever set on
// assigned, dispatched or completed incidents.
func (c StatusChange) ApplyTo(inc *Incident) {
	at := c.At
	inc.Status = c.To
	inc.Timestamps.UpdatedAt = at
	switch c.To {
	case IncidentDispatched:
		inc.Timestamps.AcceptedAt = &at
	case IncidentCompleted:
		inc.Timestamps.CompletedAt = &at
	case IncidentCancelled:
		inc.Timestamps.CancelledAt = &at
		if inc.AssignedAmbulanceID != nil {
			inc.ReleasedAmbulanceID = inc.AssignedAmbulanceID
			inc.AssignedAmbulanceID = nil
		}
	}
	inc.Version++
}

// AssignmentCommit claims an ambulance for an incident in one transaction.
type AssignmentCommit struct {
	IncidentID  uuid.UUID
	From        IncidentStatus
	AmbulanceID string
	At          time.Time
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
