package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parking-service/internal/domain/parking"
)

type ParkingSession struct {
	ID           string    `gorm:"primaryKey"`
	VehicleID    string    `gorm:"not null;index"`
	LicensePlate string    `gorm:"not null;index"`
	EntryTime    time.Time `gorm:"not null"`
	ExitTime     *time.Time
	Status       string `gorm:"not null;index"`
	Location     string `gorm:"not null"`
	StaffID      string
	Notes        string
	CreatedAt    time.Time
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *parking.ParkingSession) error {
	row := ParkingSession{
		ID:           uuid.NewString(),
		VehicleID:    s.VehicleID,
		LicensePlate: s.LicensePlate,
		EntryTime:    s.EntryTime,
		Status:       string(s.Status),
		Location:     s.Location,
		StaffID:      s.StaffID,
		Notes:        s.Notes,
		CreatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	s.ID = row.ID
	s.CreatedAt = row.CreatedAt
	return nil
}

func (r *SessionRepository) FindActiveByPlate(ctx context.Context, plate string) (*parking.ParkingSession, error) {
	var row ParkingSession
	err := r.db.WithContext(ctx).
		Where("license_plate = ? AND status = ?", plate, string(parking.SessionActive)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := toDomainSession(row)
	return &s, nil
}

func (r *SessionRepository) End(ctx context.Context, id string, exitTime time.Time, notes string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ParkingSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"exit_time": exitTime,
			"status":    string(parking.SessionCompleted),
			"notes":     notes,
		})
	return result.RowsAffected, result.Error
}

func (r *SessionRepository) SetStatus(ctx context.Context, id string, status parking.SessionStatus, notes string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ParkingSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": string(status),
			"notes":  notes,
		})
	return result.RowsAffected, result.Error
}

func (r *SessionRepository) ListActive(ctx context.Context) ([]parking.ParkingSession, error) {
	var rows []ParkingSession
	err := r.db.WithContext(ctx).
		Where("status = ?", string(parking.SessionActive)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSessions(rows), nil
}

func (r *SessionRepository) History(ctx context.Context, plate *string, limit int) ([]parking.ParkingSession, error) {
	query := r.db.WithContext(ctx).Model(&ParkingSession{})
	if plate != nil {
		query = query.Where("license_plate = ?", *plate)
	}

	var rows []ParkingSession
	err := query.Order("entry_time DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSessions(rows), nil
}

// HistoryByOwnerEmail returns sessions for vehicles owned by the given
// email, newest first. Backs the user-facing dashboard read.
func (r *SessionRepository) HistoryByOwnerEmail(ctx context.Context, email string, limit int) ([]parking.ParkingSession, error) {
	var rows []ParkingSession
	err := r.db.WithContext(ctx).
		Table("parking_sessions").
		Select("parking_sessions.*").
		Joins("JOIN vehicles ON vehicles.id = parking_sessions.vehicle_id").
		Where("vehicles.owner_email = ?", email).
		Order("parking_sessions.entry_time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSessions(rows), nil
}

func toDomainSession(row ParkingSession) parking.ParkingSession {
	return parking.ParkingSession{
		ID:           row.ID,
		VehicleID:    row.VehicleID,
		LicensePlate: row.LicensePlate,
		EntryTime:    row.EntryTime,
		ExitTime:     row.ExitTime,
		Status:       parking.SessionStatus(row.Status),
		Location:     row.Location,
		StaffID:      row.StaffID,
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt,
	}
}

func toDomainSessions(rows []ParkingSession) []parking.ParkingSession {
	out := make([]parking.ParkingSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainSession(row))
	}
	return out
}
