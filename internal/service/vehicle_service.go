package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"parking-service/internal/domain/parking"
	"parking-service/internal/utils"
)

type VehicleService struct {
	vehicles VehicleStore
	log      zerolog.Logger
}

func NewVehicleService(vehicles VehicleStore, log zerolog.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, log: log}
}

// Register creates a vehicle with status "registered" and the caller as
// registrar. The plate is the business key; a second registration for the
// same plate fails with ErrDuplicatePlate and writes nothing.
func (s *VehicleService) Register(ctx context.Context, caller *parking.User, payload parking.RegisterVehiclePayload) (*parking.Vehicle, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	plate := utils.NormalizePlate(payload.LicensePlate)
	if plate == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrInvalidInput)
	}
	if payload.OwnerName == "" {
		return nil, fmt.Errorf("%w: owner_name is required", ErrInvalidInput)
	}
	if payload.OwnerEmail == "" {
		return nil, fmt.Errorf("%w: owner_email is required", ErrInvalidInput)
	}

	existing, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up plate: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicatePlate
	}

	vehicle := &parking.Vehicle{
		LicensePlate: plate,
		OwnerName:    payload.OwnerName,
		OwnerEmail:   payload.OwnerEmail,
		OwnerPhone:   payload.OwnerPhone,
		Model:        payload.Model,
		Color:        payload.Color,
		Status:       parking.VehicleRegistered,
		RegisteredBy: caller.ID,
		Notes:        payload.Notes,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		s.log.Error().Err(err).Str("plate", plate).Msg("failed to register vehicle")
		return nil, fmt.Errorf("failed to register vehicle: %w", err)
	}

	s.log.Info().
		Str("vehicle_id", vehicle.ID).
		Str("plate", plate).
		Str("registered_by", caller.ID).
		Msg("registered vehicle")

	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, caller *parking.User, statusFilter *string) ([]parking.Vehicle, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	var status *parking.VehicleStatus
	if statusFilter != nil && *statusFilter != "" {
		st := parking.VehicleStatus(*statusFilter)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle status %q", ErrInvalidInput, *statusFilter)
		}
		status = &st
	}

	vehicles, err := s.vehicles.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// FindByPlate returns at most one vehicle; nil means no match.
func (s *VehicleService) FindByPlate(ctx context.Context, caller *parking.User, plate string) (*parking.Vehicle, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	normalized := utils.NormalizePlate(plate)
	if normalized == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrInvalidInput)
	}

	vehicle, err := s.vehicles.FindByPlate(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return vehicle, nil
}

// SetStatus overwrites status and notes unconditionally. Any status may
// move to any other; there is no transition graph.
func (s *VehicleService) SetStatus(ctx context.Context, caller *parking.User, vehicleID string, status string, notes string) error {
	if err := requireStaff(caller); err != nil {
		return err
	}

	st := parking.VehicleStatus(status)
	if !st.Valid() {
		return fmt.Errorf("%w: unknown vehicle status %q", ErrInvalidInput, status)
	}

	affected, err := s.vehicles.UpdateStatus(ctx, vehicleID, st, notes)
	if err != nil {
		s.log.Error().Err(err).Str("vehicle_id", vehicleID).Msg("failed to update vehicle status")
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: vehicle %s", ErrNotFound, vehicleID)
	}

	s.log.Info().
		Str("vehicle_id", vehicleID).
		Str("status", status).
		Str("updated_by", caller.ID).
		Msg("updated vehicle status")

	return nil
}

// ListOwnedBy is the user-facing read path: the ownership filter runs in
// the query, not in the client.
func (s *VehicleService) ListOwnedBy(ctx context.Context, caller *parking.User) ([]parking.Vehicle, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if caller.Email == "" {
		return []parking.Vehicle{}, nil
	}

	vehicles, err := s.vehicles.ListByOwnerEmail(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned vehicles: %w", err)
	}
	return vehicles, nil
}
