package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parking-service/internal/domain/parking"
)

// In-memory doubles for the store contracts, used by every service test.

type memUserStore struct {
	users []parking.User
	seq   int
}

func (m *memUserStore) FindBySubject(ctx context.Context, subject string) (*parking.User, error) {
	for i := range m.users {
		if m.users[i].Subject == subject {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) FindByID(ctx context.Context, id string) (*parking.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) Create(ctx context.Context, u *parking.User) error {
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	m.users = append(m.users, *u)
	return nil
}

type memVehicleStore struct {
	vehicles []parking.Vehicle
	seq      int
}

func (m *memVehicleStore) Create(ctx context.Context, v *parking.Vehicle) error {
	m.seq++
	v.ID = fmt.Sprintf("vehicle-%d", m.seq)
	v.CreatedAt = time.Now()
	m.vehicles = append(m.vehicles, *v)
	return nil
}

func (m *memVehicleStore) FindByPlate(ctx context.Context, plate string) (*parking.Vehicle, error) {
	for i := range m.vehicles {
		if m.vehicles[i].LicensePlate == plate {
			v := m.vehicles[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (m *memVehicleStore) FindByID(ctx context.Context, id string) (*parking.Vehicle, error) {
	for i := range m.vehicles {
		if m.vehicles[i].ID == id {
			v := m.vehicles[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (m *memVehicleStore) List(ctx context.Context, status *parking.VehicleStatus) ([]parking.Vehicle, error) {
	out := make([]parking.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		if status != nil && v.Status != *status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memVehicleStore) ListByOwnerEmail(ctx context.Context, email string) ([]parking.Vehicle, error) {
	out := make([]parking.Vehicle, 0)
	for _, v := range m.vehicles {
		if v.OwnerEmail == email {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVehicleStore) UpdateStatus(ctx context.Context, id string, status parking.VehicleStatus, notes string) (int64, error) {
	for i := range m.vehicles {
		if m.vehicles[i].ID == id {
			m.vehicles[i].Status = status
			m.vehicles[i].Notes = notes
			return 1, nil
		}
	}
	return 0, nil
}

type memSessionStore struct {
	sessions []parking.ParkingSession
	seq      int
	vehicles *memVehicleStore
}

func (m *memSessionStore) Create(ctx context.Context, s *parking.ParkingSession) error {
	m.seq++
	s.ID = fmt.Sprintf("session-%d", m.seq)
	s.CreatedAt = time.Now()
	m.sessions = append(m.sessions, *s)
	return nil
}

func (m *memSessionStore) FindActiveByPlate(ctx context.Context, plate string) (*parking.ParkingSession, error) {
	for i := range m.sessions {
		if m.sessions[i].LicensePlate == plate && m.sessions[i].Status == parking.SessionActive {
			s := m.sessions[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memSessionStore) End(ctx context.Context, id string, exitTime time.Time, notes string) (int64, error) {
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			t := exitTime
			m.sessions[i].ExitTime = &t
			m.sessions[i].Status = parking.SessionCompleted
			m.sessions[i].Notes = notes
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memSessionStore) SetStatus(ctx context.Context, id string, status parking.SessionStatus, notes string) (int64, error) {
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].Status = status
			m.sessions[i].Notes = notes
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memSessionStore) ListActive(ctx context.Context) ([]parking.ParkingSession, error) {
	out := make([]parking.ParkingSession, 0)
	for _, s := range m.sessions {
		if s.Status == parking.SessionActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSessionStore) History(ctx context.Context, plate *string, limit int) ([]parking.ParkingSession, error) {
	out := make([]parking.ParkingSession, 0)
	for _, s := range m.sessions {
		if plate != nil && s.LicensePlate != *plate {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSessionStore) HistoryByOwnerEmail(ctx context.Context, email string, limit int) ([]parking.ParkingSession, error) {
	owned := map[string]bool{}
	if m.vehicles != nil {
		for _, v := range m.vehicles.vehicles {
			if v.OwnerEmail == email {
				owned[v.ID] = true
			}
		}
	}
	out := make([]parking.ParkingSession, 0)
	for _, s := range m.sessions {
		if owned[s.VehicleID] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memViolationStore struct {
	violations []parking.Violation
	seq        int
}

func (m *memViolationStore) Create(ctx context.Context, v *parking.Violation) error {
	m.seq++
	v.ID = fmt.Sprintf("violation-%d", m.seq)
	v.CreatedAt = time.Now()
	m.violations = append(m.violations, *v)
	return nil
}

func (m *memViolationStore) List(ctx context.Context, resolved *bool) ([]parking.Violation, error) {
	out := make([]parking.Violation, 0)
	for i := len(m.violations) - 1; i >= 0; i-- {
		v := m.violations[i]
		if resolved != nil && v.Resolved != *resolved {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memViolationStore) Resolve(ctx context.Context, id, resolvedBy string, resolvedAt time.Time) (int64, error) {
	for i := range m.violations {
		if m.violations[i].ID == id {
			m.violations[i].Resolved = true
			by := resolvedBy
			at := resolvedAt
			m.violations[i].ResolvedBy = &by
			m.violations[i].ResolvedAt = &at
			return 1, nil
		}
	}
	return 0, nil
}

func staffCaller() *parking.User {
	return &parking.User{ID: "staff-1", Email: "staff@example.com", Role: parking.RoleStaff}
}

func adminCaller() *parking.User {
	return &parking.User{ID: "admin-1", Email: "admin@example.com", Role: parking.RoleAdmin}
}

func plainCaller() *parking.User {
	return &parking.User{ID: "user-1", Email: "driver@example.com", Role: parking.RoleUser}
}
