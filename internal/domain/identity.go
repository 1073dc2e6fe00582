package domain

type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleDispatcher Role = "dispatcher"
	RoleDriver     Role = "driver"
	RoleHospital   Role = "hospital"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleDispatcher, RoleDriver, RoleHospital:
		return true
	}
	return false
}

// Actor is the resolved caller identity. AmbulanceID is set for drivers,
// HospitalID for hospital staff.
type Actor struct {
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
	AmbulanceID string `json:"ambulanceId,omitempty"`
	HospitalID  string `json:"hospitalId,omitempty"`
}

// DrivesAssigned reports whether the actor drives the ambulance assigned to inc.
func (a Actor) DrivesAssigned(inc *Incident) bool {
	return a.Role == RoleDriver && a.AmbulanceID != "" &&
		inc.AssignedAmbulanceID != nil && *inc.AssignedAmbulanceID == a.AmbulanceID
}

// Owns reports whether the actor is the citizen who raised inc.
func (a Actor) Owns(inc *Incident) bool {
	return a.Role == RoleCitizen && a.UserID != "" && inc.OwnerID == a.UserID
}
