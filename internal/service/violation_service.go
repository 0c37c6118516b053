package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"parking-service/internal/domain/parking"
	"parking-service/internal/utils"
)

type ViolationService struct {
	violations ViolationStore
	vehicles   VehicleStore
	log        zerolog.Logger
	now        func() time.Time
}

func NewViolationService(violations ViolationStore, vehicles VehicleStore, log zerolog.Logger) *ViolationService {
	return &ViolationService{
		violations: violations,
		vehicles:   vehicles,
		log:        log,
		now:        time.Now,
	}
}

// Report files a violation. The vehicle match is best effort: a report
// against a plate with no registered vehicle still succeeds, it just
// carries no vehicle reference.
func (s *ViolationService) Report(ctx context.Context, caller *parking.User, payload parking.ReportViolationPayload) (*parking.Violation, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	plate := utils.NormalizePlate(payload.LicensePlate)
	if plate == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrInvalidInput)
	}
	if payload.ViolationType == "" {
		return nil, fmt.Errorf("%w: violation_type is required", ErrInvalidInput)
	}
	if payload.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if payload.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	var vehicleID *string
	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle != nil {
		vehicleID = &vehicle.ID
	}

	violation := &parking.Violation{
		VehicleID:     vehicleID,
		LicensePlate:  plate,
		ViolationType: payload.ViolationType,
		Description:   payload.Description,
		Location:      payload.Location,
		ReportedBy:    caller.ID,
		Resolved:      false,
		Evidence:      payload.Evidence,
	}
	if err := s.violations.Create(ctx, violation); err != nil {
		s.log.Error().Err(err).Str("plate", plate).Msg("failed to report violation")
		return nil, fmt.Errorf("failed to report violation: %w", err)
	}

	s.log.Info().
		Str("violation_id", violation.ID).
		Str("plate", plate).
		Str("type", payload.ViolationType).
		Str("reported_by", caller.ID).
		Bool("vehicle_matched", vehicleID != nil).
		Msg("reported violation")

	return violation, nil
}

func (s *ViolationService) List(ctx context.Context, caller *parking.User, resolved *bool) ([]parking.Violation, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	violations, err := s.violations.List(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	return violations, nil
}

// Resolve sets resolved unconditionally. Resolving an already-resolved
// violation is an accepted idempotent overwrite.
func (s *ViolationService) Resolve(ctx context.Context, caller *parking.User, violationID string) error {
	if err := requireStaff(caller); err != nil {
		return err
	}

	affected, err := s.violations.Resolve(ctx, violationID, caller.ID, s.now())
	if err != nil {
		s.log.Error().Err(err).Str("violation_id", violationID).Msg("failed to resolve violation")
		return fmt.Errorf("failed to resolve violation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: violation %s", ErrNotFound, violationID)
	}

	s.log.Info().
		Str("violation_id", violationID).
		Str("resolved_by", caller.ID).
		Msg("resolved violation")

	return nil
}
