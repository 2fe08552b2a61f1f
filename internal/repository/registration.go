package repository

import (
	"context"
	"fmt"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository/dao"
)

var ErrRegistrationNotFound = dao.ErrRegistrationNotFound

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.SessionRegistration) (dao.SessionRegistration, error)
	FindByID(ctx context.Context, id uint) (dao.SessionRegistration, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]dao.SessionRegistration, error)
	FindByUserAndSession(ctx context.Context, userID, sessionID uint) (dao.SessionRegistration, error)
	ExistsForUserAndSession(ctx context.Context, userID, sessionID uint) (bool, error)
	CountBySessionID(ctx context.Context, sessionID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, registration dao.SessionRegistration) (dao.SessionRegistration, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string, amountPaid float64) error
	Delete(ctx context.Context, id uint) error
}

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByRegistrationID(ctx context.Context, registrationID uint) ([]dao.Payment, error)
	TotalPaid(ctx context.Context, registrationID uint) (float64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type RegistrationRepository struct {
	dao        RegistrationDAO
	paymentDAO PaymentDAO
}

func NewRegistrationRepository(dao RegistrationDAO, paymentDAO PaymentDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao:        dao,
		paymentDAO: paymentDAO,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(registration))
	if err != nil {
		return domain.SessionRegistration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.SessionRegistration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SessionRegistration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]domain.SessionRegistration, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	registrations := make([]domain.SessionRegistration, 0, len(found))
	for _, reg := range found {
		registrations = append(registrations, r.daoToDomain(reg))
	}

	return registrations, nil
}

func (r *RegistrationRepository) FindByUserAndSession(ctx context.Context, userID, sessionID uint) (domain.SessionRegistration, error) {
	found, err := r.dao.FindByUserAndSession(ctx, userID, sessionID)
	if err != nil {
		return domain.SessionRegistration{}, fmt.Errorf("r.dao.FindByUserAndSession -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) ExistsForUserAndSession(ctx context.Context, userID, sessionID uint) (bool, error) {
	exists, err := r.dao.ExistsForUserAndSession(ctx, userID, sessionID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsForUserAndSession -> %w", err)
	}

	return exists, nil
}

func (r *RegistrationRepository) CountBySessionID(ctx context.Context, sessionID uint) (int64, error) {
	count, err := r.dao.CountBySessionID(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySessionID -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(registration))
	if err != nil {
		return domain.SessionRegistration{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id uint, status string, amountPaid float64) error {
	if err := r.dao.UpdatePaymentStatus(ctx, id, status, amountPaid); err != nil {
		return fmt.Errorf("r.dao.UpdatePaymentStatus -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.paymentDAO.Insert(ctx, dao.Payment{
		RegistrationID: payment.RegistrationID,
		Amount:         payment.Amount,
		TransactionID:  payment.TransactionID,
		Status:         payment.Status,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.paymentDAO.Insert -> %w", err)
	}

	return r.paymentDAOToDomain(created), nil
}

func (r *RegistrationRepository) FindPayments(ctx context.Context, registrationID uint) ([]domain.Payment, error) {
	found, err := r.paymentDAO.FindByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("r.paymentDAO.FindByRegistrationID -> %w", err)
	}

	payments := make([]domain.Payment, 0, len(found))
	for _, p := range found {
		payments = append(payments, r.paymentDAOToDomain(p))
	}

	return payments, nil
}

func (r *RegistrationRepository) TotalPaid(ctx context.Context, registrationID uint) (float64, error) {
	total, err := r.paymentDAO.TotalPaid(ctx, registrationID)
	if err != nil {
		return 0, fmt.Errorf("r.paymentDAO.TotalPaid -> %w", err)
	}

	return total, nil
}

func (r *RegistrationRepository) TotalRevenue(ctx context.Context) (float64, error) {
	total, err := r.paymentDAO.TotalRevenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.paymentDAO.TotalRevenue -> %w", err)
	}

	return total, nil
}

func (r *RegistrationRepository) domainToDAO(reg domain.SessionRegistration) dao.SessionRegistration {
	return dao.SessionRegistration{
		ID:            reg.ID,
		SessionID:     reg.SessionID,
		UserID:        reg.UserID,
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Address:       reg.Address,
		DateOfBirth:   reg.DateOfBirth,
		Position:      reg.Position,
		AmountPaid:    reg.AmountPaid,
		PaymentStatus: reg.PaymentStatus,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.SessionRegistration) domain.SessionRegistration {
	return domain.SessionRegistration{
		ID:            reg.ID,
		SessionID:     reg.SessionID,
		UserID:        reg.UserID,
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Address:       reg.Address,
		DateOfBirth:   reg.DateOfBirth,
		Position:      reg.Position,
		AmountPaid:    reg.AmountPaid,
		PaymentStatus: reg.PaymentStatus,
		CreatedAt:     reg.CreatedAt,
		UpdatedAt:     reg.UpdatedAt,
	}
}

func (r *RegistrationRepository) paymentDAOToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:             p.ID,
		RegistrationID: p.RegistrationID,
		Amount:         p.Amount,
		TransactionID:  p.TransactionID,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}
