package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"parking-service/internal/domain/parking"
)

type Violation struct {
	ID            string  `gorm:"primaryKey"`
	VehicleID     *string `gorm:"index"`
	LicensePlate  string  `gorm:"not null;index"`
	ViolationType string  `gorm:"not null"`
	Description   string  `gorm:"not null"`
	Location      string  `gorm:"not null"`
	ReportedBy    string
	Resolved      bool `gorm:"not null;index"`
	ResolvedBy    *string
	ResolvedAt    *time.Time
	Evidence      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time
}

type ViolationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

func (r *ViolationRepository) Create(ctx context.Context, v *parking.Violation) error {
	row := Violation{
		ID:            uuid.NewString(),
		VehicleID:     v.VehicleID,
		LicensePlate:  v.LicensePlate,
		ViolationType: v.ViolationType,
		Description:   v.Description,
		Location:      v.Location,
		ReportedBy:    v.ReportedBy,
		Resolved:      v.Resolved,
		CreatedAt:     time.Now(),
	}
	if len(v.Evidence) > 0 {
		row.Evidence = v.Evidence
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	v.ID = row.ID
	v.CreatedAt = row.CreatedAt
	return nil
}

func (r *ViolationRepository) List(ctx context.Context, resolved *bool) ([]parking.Violation, error) {
	query := r.db.WithContext(ctx).Model(&Violation{})
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}

	var rows []Violation
	err := query.Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]parking.Violation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainViolation(row))
	}
	return out, nil
}

func (r *ViolationRepository) Resolve(ctx context.Context, id, resolvedBy string, resolvedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Violation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_by": resolvedBy,
			"resolved_at": resolvedAt,
		})
	return result.RowsAffected, result.Error
}

func toDomainViolation(row Violation) parking.Violation {
	return parking.Violation{
		ID:            row.ID,
		VehicleID:     row.VehicleID,
		LicensePlate:  row.LicensePlate,
		ViolationType: row.ViolationType,
		Description:   row.Description,
		Location:      row.Location,
		ReportedBy:    row.ReportedBy,
		Resolved:      row.Resolved,
		ResolvedBy:    row.ResolvedBy,
		ResolvedAt:    row.ResolvedAt,
		Evidence:      row.Evidence,
		CreatedAt:     row.CreatedAt,
	}
}
