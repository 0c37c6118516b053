package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parking-service/internal/domain/parking"
)

type Vehicle struct {
	ID           string `gorm:"primaryKey"`
	LicensePlate string `gorm:"not null;uniqueIndex"`
	OwnerName    string `gorm:"not null"`
	OwnerEmail   string `gorm:"not null;index"`
	OwnerPhone   string `gorm:"not null"`
	Model        string `gorm:"not null"`
	Color        string `gorm:"not null"`
	Status       string `gorm:"not null;index"`
	RegisteredBy string
	Notes        string
	CreatedAt    time.Time
}

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *parking.Vehicle) error {
	row := Vehicle{
		ID:           uuid.NewString(),
		LicensePlate: v.LicensePlate,
		OwnerName:    v.OwnerName,
		OwnerEmail:   v.OwnerEmail,
		OwnerPhone:   v.OwnerPhone,
		Model:        v.Model,
		Color:        v.Color,
		Status:       string(v.Status),
		RegisteredBy: v.RegisteredBy,
		Notes:        v.Notes,
		CreatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	v.ID = row.ID
	v.CreatedAt = row.CreatedAt
	return nil
}

func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string) (*parking.Vehicle, error) {
	var row Vehicle
	err := r.db.WithContext(ctx).Where("license_plate = ?", plate).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v := toDomainVehicle(row)
	return &v, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*parking.Vehicle, error) {
	var row Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v := toDomainVehicle(row)
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, status *parking.VehicleStatus) ([]parking.Vehicle, error) {
	query := r.db.WithContext(ctx).Model(&Vehicle{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var rows []Vehicle
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainVehicles(rows), nil
}

func (r *VehicleRepository) ListByOwnerEmail(ctx context.Context, email string) ([]parking.Vehicle, error) {
	var rows []Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_email = ?", email).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainVehicles(rows), nil
}

// UpdateStatus overwrites status and notes and reports how many rows
// matched, so callers can tell an unknown id apart from a clean write.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status parking.VehicleStatus, notes string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": string(status),
			"notes":  notes,
		})
	return result.RowsAffected, result.Error
}

func toDomainVehicle(row Vehicle) parking.Vehicle {
	return parking.Vehicle{
		ID:           row.ID,
		LicensePlate: row.LicensePlate,
		OwnerName:    row.OwnerName,
		OwnerEmail:   row.OwnerEmail,
		OwnerPhone:   row.OwnerPhone,
		Model:        row.Model,
		Color:        row.Color,
		Status:       parking.VehicleStatus(row.Status),
		RegisteredBy: row.RegisteredBy,
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt,
	}
}

func toDomainVehicles(rows []Vehicle) []parking.Vehicle {
	out := make([]parking.Vehicle, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainVehicle(row))
	}
	return out
}
