package parking

import (
	"time"

	"gorm.io/datatypes"
)

// Role determines what a caller may do. Admin and staff carry identical
// permissions except for flagging sessions, which is admin only. An empty
// role grants no elevated privilege.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// IsStaff reports whether the role clears the staff gate.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

type VehicleStatus string

const (
	VehicleRegistered VehicleStatus = "registered"
	VehiclePending    VehicleStatus = "pending"
	VehicleBlocked    VehicleStatus = "blocked"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleRegistered, VehiclePending, VehicleBlocked:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	// SessionViolation is only ever set by direct administrative action;
	// nothing sets it automatically.
	SessionViolation SessionStatus = "violation"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionCompleted, SessionViolation:
		return true
	}
	return false
}

type User struct {
	ID         string    `json:"id"`
	Subject    string    `json:"-"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       Role      `json:"role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vehicle struct {
	ID           string        `json:"id"`
	LicensePlate string        `json:"license_plate"`
	OwnerName    string        `json:"owner_name"`
	OwnerEmail   string        `json:"owner_email"`
	OwnerPhone   string        `json:"owner_phone"`
	Model        string        `json:"model"`
	Color        string        `json:"color"`
	Status       VehicleStatus `json:"status"`
	RegisteredBy string        `json:"registered_by"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

type ParkingSession struct {
	ID           string        `json:"id"`
	VehicleID    string        `json:"vehicle_id"`
	LicensePlate string        `json:"license_plate"`
	EntryTime    time.Time     `json:"entry_time"`
	ExitTime     *time.Time    `json:"exit_time,omitempty"`
	Status       SessionStatus `json:"status"`
	Location     string        `json:"location"`
	StaffID      string        `json:"staff_id,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

type Violation struct {
	ID            string         `json:"id"`
	VehicleID     *string        `json:"vehicle_id,omitempty"`
	LicensePlate  string         `json:"license_plate"`
	ViolationType string         `json:"violation_type"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	ReportedBy    string         `json:"reported_by"`
	Resolved      bool           `json:"resolved"`
	ResolvedBy    *string        `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time     `json:"resolved_at,omitempty"`
	Evidence      datatypes.JSON `json:"evidence,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type RegisterVehiclePayload struct {
	LicensePlate string `json:"license_plate"`
	OwnerName    string `json:"owner_name"`
	OwnerEmail   string `json:"owner_email"`
	OwnerPhone   string `json:"owner_phone"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Notes        string `json:"notes,omitempty"`
}

type StartSessionPayload struct {
	LicensePlate string `json:"license_plate"`
	Location     string `json:"location"`
	Notes        string `json:"notes,omitempty"`
}

type ReportViolationPayload struct {
	LicensePlate  string         `json:"license_plate"`
	ViolationType string         `json:"violation_type"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Evidence      datatypes.JSON `json:"evidence,omitempty"`
}
