package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"parking-service/internal/domain/parking"
	"parking-service/internal/utils"
)

// historyLimit caps history reads at the 50 most recent sessions.
const historyLimit = 50

type SessionService struct {
	sessions SessionStore
	vehicles VehicleStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, vehicles VehicleStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		vehicles: vehicles,
		log:      log,
		now:      time.Now,
	}
}

// Start opens an active session for a plate. The checks run in order and
// each maps to its own failure: unknown plate, blocked vehicle, session
// already open. All checks precede the single insert; atomicity across
// concurrent writers for the same plate is delegated to the store.
func (s *SessionService) Start(ctx context.Context, caller *parking.User, payload parking.StartSessionPayload) (*parking.ParkingSession, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	plate := utils.NormalizePlate(payload.LicensePlate)
	if plate == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrInvalidInput)
	}
	if payload.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotRegistered
	}
	if vehicle.Status == parking.VehicleBlocked {
		return nil, ErrVehicleBlocked
	}

	active, err := s.sessions.FindActiveByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	if active != nil {
		return nil, ErrSessionAlreadyActive
	}

	session := &parking.ParkingSession{
		VehicleID:    vehicle.ID,
		LicensePlate: plate,
		EntryTime:    s.now(),
		Status:       parking.SessionActive,
		Location:     payload.Location,
		StaffID:      caller.ID,
		Notes:        payload.Notes,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Error().Err(err).Str("plate", plate).Msg("failed to start parking session")
		return nil, fmt.Errorf("failed to start parking session: %w", err)
	}

	s.log.Info().
		Str("session_id", session.ID).
		Str("plate", plate).
		Str("location", payload.Location).
		Str("staff_id", caller.ID).
		Msg("started parking session")

	return session, nil
}

// End patches the session unconditionally: exit time now, status
// completed, notes overwritten. Ending an already-completed session is an
// accepted idempotent overwrite.
func (s *SessionService) End(ctx context.Context, caller *parking.User, sessionID, notes string) error {
	if err := requireStaff(caller); err != nil {
		return err
	}

	affected, err := s.sessions.End(ctx, sessionID, s.now(), notes)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to end parking session")
		return fmt.Errorf("failed to end parking session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("staff_id", caller.ID).
		Msg("ended parking session")

	return nil
}

// Flag marks a session as a violation. This is the only path that sets
// the status and it requires the admin role.
func (s *SessionService) Flag(ctx context.Context, caller *parking.User, sessionID, notes string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	affected, err := s.sessions.SetStatus(ctx, sessionID, parking.SessionViolation, notes)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to flag parking session")
		return fmt.Errorf("failed to flag parking session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("admin_id", caller.ID).
		Msg("flagged parking session as violation")

	return nil
}

func (s *SessionService) ListActive(ctx context.Context, caller *parking.User) ([]parking.ParkingSession, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	return sessions, nil
}

// History returns the most recent sessions, newest first, optionally
// narrowed to one plate.
func (s *SessionService) History(ctx context.Context, caller *parking.User, plateFilter *string) ([]parking.ParkingSession, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	var plate *string
	if plateFilter != nil && *plateFilter != "" {
		normalized := utils.NormalizePlate(*plateFilter)
		if normalized == "" {
			return nil, fmt.Errorf("%w: invalid plate filter", ErrInvalidInput)
		}
		plate = &normalized
	}

	sessions, err := s.sessions.History(ctx, plate, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read parking history: %w", err)
	}
	return sessions, nil
}

// HistoryOwnedBy is the user-facing read path, filtered by the caller's
// own email inside the query.
func (s *SessionService) HistoryOwnedBy(ctx context.Context, caller *parking.User) ([]parking.ParkingSession, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if caller.Email == "" {
		return []parking.ParkingSession{}, nil
	}

	sessions, err := s.sessions.HistoryByOwnerEmail(ctx, caller.Email, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read owned parking history: %w", err)
	}
	return sessions, nil
}
