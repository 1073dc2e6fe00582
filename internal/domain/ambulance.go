package domain

import (
	"time"

	"github.com/google/uuid"
)

type AmbulanceStatus string

const (
	AmbulanceAvailable AmbulanceStatus = "available"
	AmbulanceOnDuty    AmbulanceStatus = "on-duty"
	AmbulanceOnRoute   AmbulanceStatus = "on-route"
)

type Ambulance struct {
	ID                string          `json:"id"`
	CurrentStatus     AmbulanceStatus `json:"currentStatus"`
	CurrentIncidentID *uuid.UUID      `json:"currentIncidentId"`
	DriverID          string          `json:"driverId"`
	Lat               *float64        `json:"lat"`
	Lng               *float64        `json:"lng"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (a *Ambulance) Clone() *Ambulance {
	if a == nil {
		return nil
	}
	c := *a
	if a.CurrentIncidentID != nil {
		id := *a.CurrentIncidentID
		c.CurrentIncidentID = &id
	}
	c.Lat = cloneFloat(a.Lat)
	c.Lng = cloneFloat(a.Lng)
	return &c
}

type CreateAmbulanceRequest struct {
	ID       string   `json:"id" validate:"required,min=1,max=64"`
	DriverID string   `json:"driverId" validate:"required,min=1,max=128"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,lat"`
	Lng      *float64 `json:"lng,omitempty" validate:"omitempty,lng"`
}

type PositionRequest struct {
	Lat float64 `json:"lat" validate:"lat"`
	Lng float64 `json:"lng" validate:"lng"`
}
