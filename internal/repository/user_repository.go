package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parking-service/internal/domain/parking"
)

type User struct {
	ID         string `gorm:"primaryKey"`
	Subject    string `gorm:"not null;uniqueIndex"`
	Name       string
	Email      string `gorm:"index"`
	Phone      string
	Department string
	Role       string
	CreatedAt  time.Time
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (*parking.User, error) {
	var row User
	err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := toDomainUser(row)
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*parking.User, error) {
	var row User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := toDomainUser(row)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *parking.User) error {
	row := User{
		ID:         uuid.NewString(),
		Subject:    u.Subject,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Department: u.Department,
		Role:       string(u.Role),
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	return nil
}

func toDomainUser(row User) parking.User {
	return parking.User{
		ID:         row.ID,
		Subject:    row.Subject,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		Department: row.Department,
		Role:       parking.Role(row.Role),
		CreatedAt:  row.CreatedAt,
	}
}
