package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRegistrationNotFound = errors.New("registration not found")

// SessionRegistration has no unique (user_id, session_id) constraint. The
// duplicate guard is an existence check before insert, so two concurrent
// registrations for the same pair can both land. That race is inherited
// behavior; see the concurrency notes in DESIGN.md.
type SessionRegistration struct {
	ID uint `gorm:"primaryKey"`

	SessionID uint     `gorm:"not null;index"`
	Session   *Session `gorm:"foreignKey:SessionID"`
	UserID    *uint    `gorm:"index"` // nil for admin-entered manual registrations

	FirstName   string
	LastName    string
	Email       string `gorm:"not null"`
	Phone       string
	Address     string
	DateOfBirth *time.Time
	Position    string

	AmountPaid    float64 `gorm:"not null;default:0"`
	PaymentStatus string  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration SessionRegistration) (SessionRegistration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		return SessionRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (SessionRegistration, error) {
	var registration SessionRegistration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SessionRegistration{}, ErrRegistrationNotFound
		}

		return SessionRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindBySessionID(ctx context.Context, sessionID uint) ([]SessionRegistration, error) {
	var registrations []SessionRegistration

	result := d.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByUserAndSession(ctx context.Context, userID, sessionID uint) (SessionRegistration, error) {
	var registration SessionRegistration

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&registration)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SessionRegistration{}, ErrRegistrationNotFound
		}

		return SessionRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) ExistsForUserAndSession(ctx context.Context, userID, sessionID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&SessionRegistration{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *RegistrationDAO) CountBySessionID(ctx context.Context, sessionID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&SessionRegistration{}).
		Where("session_id = ?", sessionID).
		Count(&count)

	return count, result.Error
}

func (d *RegistrationDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).Model(&SessionRegistration{}).Count(&count)

	return count, result.Error
}

func (d *RegistrationDAO) Update(ctx context.Context, registration SessionRegistration) (SessionRegistration, error) {
	result := d.db.WithContext(ctx).Model(&SessionRegistration{ID: registration.ID}).Updates(map[string]any{
		"first_name":     registration.FirstName,
		"last_name":      registration.LastName,
		"email":          registration.Email,
		"phone":          registration.Phone,
		"address":        registration.Address,
		"date_of_birth":  registration.DateOfBirth,
		"position":       registration.Position,
		"amount_paid":    registration.AmountPaid,
		"payment_status": registration.PaymentStatus,
	})
	if result.Error != nil {
		return SessionRegistration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return SessionRegistration{}, ErrRegistrationNotFound
	}

	return d.FindByID(ctx, registration.ID)
}

func (d *RegistrationDAO) UpdatePaymentStatus(ctx context.Context, id uint, status string, amountPaid float64) error {
	result := d.db.WithContext(ctx).Model(&SessionRegistration{}).Where("id = ?", id).Updates(map[string]any{
		"payment_status": status,
		"amount_paid":    amountPaid,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// Delete removes the registration along with its payments and any roster
// slot it occupies.
func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registration_id = ?", id).Delete(&Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("registration_id = ?", id).Delete(&Player{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&SessionRegistration{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRegistrationNotFound
		}

		return nil
	})
}
