package service

import (
	"context"
	"time"

	"parking-service/internal/domain/parking"
)

// Store contracts consumed by the services. The gorm repositories
// implement them in production; tests swap in in-memory doubles.
// Lookup methods return (nil, nil) when no record matches.

type UserStore interface {
	FindBySubject(ctx context.Context, subject string) (*parking.User, error)
	FindByID(ctx context.Context, id string) (*parking.User, error)
	Create(ctx context.Context, u *parking.User) error
}

type VehicleStore interface {
	Create(ctx context.Context, v *parking.Vehicle) error
	FindByPlate(ctx context.Context, plate string) (*parking.Vehicle, error)
	FindByID(ctx context.Context, id string) (*parking.Vehicle, error)
	List(ctx context.Context, status *parking.VehicleStatus) ([]parking.Vehicle, error)
	ListByOwnerEmail(ctx context.Context, email string) ([]parking.Vehicle, error)
	UpdateStatus(ctx context.Context, id string, status parking.VehicleStatus, notes string) (int64, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *parking.ParkingSession) error
	FindActiveByPlate(ctx context.Context, plate string) (*parking.ParkingSession, error)
	End(ctx context.Context, id string, exitTime time.Time, notes string) (int64, error)
	SetStatus(ctx context.Context, id string, status parking.SessionStatus, notes string) (int64, error)
	ListActive(ctx context.Context) ([]parking.ParkingSession, error)
	History(ctx context.Context, plate *string, limit int) ([]parking.ParkingSession, error)
	HistoryByOwnerEmail(ctx context.Context, email string, limit int) ([]parking.ParkingSession, error)
}

type ViolationStore interface {
	Create(ctx context.Context, v *parking.Violation) error
	List(ctx context.Context, resolved *bool) ([]parking.Violation, error)
	Resolve(ctx context.Context, id, resolvedBy string, resolvedAt time.Time) (int64, error)
}
