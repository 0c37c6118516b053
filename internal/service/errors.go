package service

import (
	"errors"

	"parking-service/internal/domain/parking"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDuplicatePlate       = errors.New("vehicle with this license plate already registered")
	ErrVehicleNotRegistered = errors.New("vehicle not registered in system")
	ErrVehicleBlocked       = errors.New("vehicle is blocked from parking")
	ErrSessionAlreadyActive = errors.New("vehicle already has an active parking session")
)

// requireStaff is the single access-control gate. It runs before any read
// or write in every staff-restricted operation.
func requireStaff(caller *parking.User) error {
	if caller == nil || !caller.Role.IsStaff() {
		return ErrUnauthorized
	}
	return nil
}

func requireAdmin(caller *parking.User) error {
	if caller == nil || caller.Role != parking.RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

func requireAuthenticated(caller *parking.User) error {
	if caller == nil {
		return ErrUnauthorized
	}
	return nil
}
