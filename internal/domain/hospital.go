package domain

import "time"

type BedType string

const (
	BedGeneral    BedType = "general"
	BedICU        BedType = "icu"
	BedVentilator BedType = "ventilator"
	BedHDU        BedType = "hdu"
	BedIsolation  BedType = "isolation"
)

var BedTypes = []BedType{BedGeneral, BedICU, BedVentilator, BedHDU, BedIsolation}

func (b BedType) Valid() bool {
	for _, t := range BedTypes {
		if t == b {
			return true
		}
	}
	return false
}

type BloodType string

var BloodTypes = []BloodType{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func (b BloodType) Valid() bool {
	for _, t := range BloodTypes {
		if t == b {
			return true
		}
	}
	return false
}

type BedCounter struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

// Adjust applies a relative delta clamped to [0, Total].
func (c BedCounter) Adjust(delta int) BedCounter {
	c.Available = clamp(c.Available+delta, 0, c.Total)
	return c
}

type Hospital struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Lat            *float64               `json:"lat"`
	Lng            *float64               `json:"lng"`
	Beds           map[BedType]BedCounter `json:"beds"`
	BloodInventory map[BloodType]int      `json:"bloodInventory"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// AvailableBeds is the general-ward availability used for assignment.
func (h *Hospital) AvailableBeds() int {
	return h.Beds[BedGeneral].Available
}

func (h *Hospital) Clone() *Hospital {
	if h == nil {
		return nil
	}
	c := *h
	c.Lat = cloneFloat(h.Lat)
	c.Lng = cloneFloat(h.Lng)
	c.Beds = make(map[BedType]BedCounter, len(h.Beds))
	for k, v := range h.Beds {
		c.Beds[k] = v
	}
	c.BloodInventory = make(map[BloodType]int, len(h.BloodInventory))
	for k, v := range h.BloodInventory {
		c.BloodInventory[k] = v
	}
	return &c
}

type CreateHospitalRequest struct {
	ID             string                 `json:"id" validate:"required,min=1,max=64"`
	Name           string                 `json:"name" validate:"required,max=200"`
	Lat            *float64               `json:"lat,omitempty" validate:"omitempty,lat"`
	Lng            *float64               `json:"lng,omitempty" validate:"omitempty,lng"`
	Beds           map[BedType]BedCounter `json:"beds"`
	BloodInventory map[BloodType]int      `json:"bloodInventory"`
}

type BedDeltaRequest struct {
	Type  BedType `json:"type" validate:"required,oneof=general icu ventilator hdu isolation"`
	Delta int     `json:"delta" validate:"ne=0"`
}

type BloodDeltaRequest struct {
	Type  BloodType `json:"type" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Delta int       `json:"delta" validate:"ne=0"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampNonNegative is used for counters without an upper bound.
func ClampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
