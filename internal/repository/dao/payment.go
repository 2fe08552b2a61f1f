package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	RegistrationID uint                 `gorm:"not null;index"`
	Registration   *SessionRegistration `gorm:"foreignKey:RegistrationID"`

	Amount        float64 `gorm:"not null"`
	TransactionID string  `gorm:"not null"`
	Status        string  `gorm:"not null"` // "Success" or a gateway failure code

	CreatedAt time.Time
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByRegistrationID(ctx context.Context, registrationID uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("id").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

// TotalPaid sums successful payments only. The figure is computed on demand
// because correction and refund flows can leave several rows per
// registration.
func (d *PaymentDAO) TotalPaid(ctx context.Context, registrationID uint) (float64, error) {
	var total float64

	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("registration_id = ? AND status = ?", registrationID, "Success").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)

	return total, result.Error
}

func (d *PaymentDAO) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64

	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ?", "Success").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)

	return total, result.Error
}
