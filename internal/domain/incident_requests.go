package domain

import "github.com/google/uuid"

type CreateIncidentRequest struct {
	EmergencyType EmergencyType `json:"emergencyType" validate:"required,oneof=Cardiac Accident Fire Other"`
	Priority      *Priority     `json:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	Caller        CallerInput   `json:"caller"`
	Location      LocationInput `json:"location"`
}

type CallerInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Phone       string  `json:"phone" validate:"required,phone10"`
	AltPhone    *string `json:"altPhone,omitempty" validate:"omitempty,phone10"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
}

type LocationInput struct {
	Lat         *float64 `json:"lat" validate:"omitempty,lat"`
	Lng         *float64 `json:"lng" validate:"omitempty,lng"`
	Address     *string  `json:"address,omitempty" validate:"omitempty,max=512"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

type PatchIncidentRequest struct {
	ExpectedStatus *IncidentStatus `json:"expectedStatus,omitempty"`
	IncidentPatch
}

type AssignRequest struct {
	WithHospital bool `json:"withHospital"`
}

type AssignmentResult struct {
	IncidentID  uuid.UUID `json:"incidentId"`
	AmbulanceID string    `json:"ambulanceId"`
	HospitalID  *string   `json:"hospitalId,omitempty"`
	DistanceKM  *float64  `json:"distanceKm,omitempty"`
	Incident    *Incident `json:"incident,omitempty"`
}

type TransitionRequest struct {
	Event Event `json:"event" validate:"required,oneof=submit dispatcherAssign driverAccept driverComplete cancel"`
}
