package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/league-api/internal/domain"
)

type fakeRegistrationRepo struct {
	registrations map[uint]domain.SessionRegistration
	nextID        uint
	payments      []domain.Payment

	statusUpdates map[uint]string
	deletedIDs    []uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: make(map[uint]domain.SessionRegistration),
		statusUpdates: make(map[uint]string),
	}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	r.nextID++
	registration.ID = r.nextID
	r.registrations[registration.ID] = registration

	return registration, nil
}

func (r *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.SessionRegistration, error) {
	registration, ok := r.registrations[id]
	if !ok {
		return domain.SessionRegistration{}, ErrRegistrationNotFound
	}

	return registration, nil
}

func (r *fakeRegistrationRepo) FindBySessionID(_ context.Context, sessionID uint) ([]domain.SessionRegistration, error) {
	var out []domain.SessionRegistration
	for _, registration := range r.registrations {
		if registration.SessionID == sessionID {
			out = append(out, registration)
		}
	}

	return out, nil
}

func (r *fakeRegistrationRepo) FindByUserAndSession(_ context.Context, userID, sessionID uint) (domain.SessionRegistration, error) {
	for _, registration := range r.registrations {
		if registration.SessionID == sessionID && registration.UserID != nil && *registration.UserID == userID {
			return registration, nil
		}
	}

	return domain.SessionRegistration{}, ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ExistsForUserAndSession(ctx context.Context, userID, sessionID uint) (bool, error) {
	_, err := r.FindByUserAndSession(ctx, userID, sessionID)
	if errors.Is(err, ErrRegistrationNotFound) {
		return false, nil
	}

	return err == nil, err
}

func (r *fakeRegistrationRepo) CountBySessionID(ctx context.Context, sessionID uint) (int64, error) {
	registrations, _ := r.FindBySessionID(ctx, sessionID)

	return int64(len(registrations)), nil
}

func (r *fakeRegistrationRepo) Update(_ context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	r.registrations[registration.ID] = registration

	return registration, nil
}

func (r *fakeRegistrationRepo) UpdatePaymentStatus(_ context.Context, id uint, status string, amountPaid float64) error {
	registration := r.registrations[id]
	registration.PaymentStatus = status
	registration.AmountPaid = amountPaid
	r.registrations[id] = registration
	r.statusUpdates[id] = status

	return nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.registrations[id]; !ok {
		return ErrRegistrationNotFound
	}
	delete(r.registrations, id)
	r.deletedIDs = append(r.deletedIDs, id)

	return nil
}

func (r *fakeRegistrationRepo) CreatePayment(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	payment.ID = uint(len(r.payments) + 1)
	r.payments = append(r.payments, payment)

	return payment, nil
}

func (r *fakeRegistrationRepo) FindPayments(_ context.Context, registrationID uint) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, payment := range r.payments {
		if payment.RegistrationID == registrationID {
			out = append(out, payment)
		}
	}

	return out, nil
}

func (r *fakeRegistrationRepo) TotalPaid(_ context.Context, registrationID uint) (float64, error) {
	var total float64
	for _, payment := range r.payments {
		if payment.RegistrationID == registrationID && payment.Status == domain.PaymentSuccess {
			total += payment.Amount
		}
	}

	return total, nil
}

type fakeSessionFinder struct {
	sessions map[uint]domain.Session
}

func (f *fakeSessionFinder) FindByID(_ context.Context, id uint) (domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	return session, nil
}

type fakeGateway struct {
	err     error
	charged []float64
}

func (g *fakeGateway) Charge(_ context.Context, amount float64) (PaymentResult, error) {
	if g.err != nil {
		return PaymentResult{}, g.err
	}
	g.charged = append(g.charged, amount)

	return PaymentResult{TransactionID: "txn-1", Amount: amount, Status: domain.PaymentSuccess}, nil
}

type fakeNotifier struct {
	messages map[uint][]string
}

func (n *fakeNotifier) Notify(_ context.Context, userID uint, message string) {
	if n.messages == nil {
		n.messages = make(map[uint][]string)
	}
	n.messages[userID] = append(n.messages[userID], message)
}

func openSession(id uint) domain.Session {
	open := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	return domain.Session{
		ID:                   id,
		Name:                 "Spring Draft League",
		IsActive:             true,
		EndDate:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		RegistrationOpenDate: &open,
		RegularPrice:         floatPtr(40),
		MaxPlayers:           2,
	}
}

func newRegistrationFixture(session domain.Session) (*RegistrationService, *fakeRegistrationRepo, *fakeGateway, *fakeNotifier) {
	repo := newFakeRegistrationRepo()
	sessions := &fakeSessionFinder{sessions: map[uint]domain.Session{session.ID: session}}
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	svc := NewRegistrationService(repo, sessions, gateway, notifier, clock)

	return svc, repo, gateway, notifier
}

func TestRegisterHappyPath(t *testing.T) {
	svc, repo, gateway, notifier := newRegistrationFixture(openSession(1))

	created, err := svc.Register(context.Background(), 10, domain.SessionRegistration{
		SessionID: 1,
		FirstName: "Sam",
		LastName:  "Trottier",
		Email:     "sam@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, created.PaymentStatus)
	assert.Equal(t, 40.0, created.AmountPaid)
	require.NotNil(t, created.UserID)
	assert.Equal(t, uint(10), *created.UserID)

	assert.Equal(t, []float64{40}, gateway.charged)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, created.ID, repo.payments[0].RegistrationID)
	assert.Equal(t, domain.PaymentSuccess, repo.payments[0].Status)
	assert.Len(t, notifier.messages[10], 1)
}

func TestRegisterRejectsSequentialDuplicate(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(openSession(1))

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterRejectsInactiveSession(t *testing.T) {
	session := openSession(1)
	session.IsActive = false
	session.RegistrationOpenDate = nil
	svc, _, _, _ := newRegistrationFixture(session)

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestRegisterReconcilesStaleActiveFlag(t *testing.T) {
	// The stored flag says active but the close date has passed. The
	// evaluator runs before the flag is trusted, so the window stays shut.
	session := openSession(1)
	closed := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	session.RegistrationCloseDate = &closed
	svc, _, _, _ := newRegistrationFixture(session)

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestRegisterRejectsFullSession(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(openSession(1))

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), 11, domain.SessionRegistration{SessionID: 1})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), 12, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestRegisterRejectsSessionWithoutPrice(t *testing.T) {
	session := openSession(1)
	session.RegularPrice = nil
	svc, _, _, _ := newRegistrationFixture(session)

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestRegisterChargeFailureLeavesPendingRow(t *testing.T) {
	svc, repo, gateway, notifier := newRegistrationFixture(openSession(1))
	gateway.err = errors.New("card declined")

	created, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})

	assert.ErrorIs(t, err, ErrPaymentFailed)

	// The Pending row survives the failed charge with no payment attached.
	stored, findErr := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, findErr)
	assert.Equal(t, domain.PaymentStatusPending, stored.PaymentStatus)
	assert.Zero(t, stored.AmountPaid)
	assert.Empty(t, repo.payments)
	assert.Empty(t, notifier.messages)
}

func TestRegisterUnknownSession(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(openSession(1))

	_, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 99})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegisterManualSkipsChecksAndClearsUserID(t *testing.T) {
	session := openSession(1)
	session.IsActive = false
	session.RegistrationOpenDate = nil
	session.MaxPlayers = 0
	svc, _, gateway, _ := newRegistrationFixture(session)

	created, err := svc.RegisterManual(context.Background(), domain.SessionRegistration{
		SessionID:     1,
		FirstName:     "Walk",
		LastName:      "In",
		AmountPaid:    40,
		PaymentStatus: domain.PaymentStatusPaid,
	})

	require.NoError(t, err)
	assert.Nil(t, created.UserID)
	assert.Equal(t, domain.PaymentStatusPaid, created.PaymentStatus)
	assert.Empty(t, gateway.charged, "manual entries never hit the gateway")
}

func TestRegisterManualDefaultsToPending(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(openSession(1))

	created, err := svc.RegisterManual(context.Background(), domain.SessionRegistration{SessionID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, created.PaymentStatus)
}

func TestCancelOwn(t *testing.T) {
	svc, repo, _, _ := newRegistrationFixture(openSession(1))

	created, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOwn(context.Background(), 10, 1))
	assert.Equal(t, []uint{created.ID}, repo.deletedIDs)

	err = svc.CancelOwn(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestPaymentsSumsSuccessfulCharges(t *testing.T) {
	svc, repo, _, _ := newRegistrationFixture(openSession(1))

	created, err := svc.Register(context.Background(), 10, domain.SessionRegistration{SessionID: 1})
	require.NoError(t, err)

	// A second manual charge against the same registration.
	_, err = repo.CreatePayment(context.Background(), domain.Payment{
		RegistrationID: created.ID,
		Amount:         10,
		Status:         domain.PaymentSuccess,
	})
	require.NoError(t, err)

	payments, total, err := svc.Payments(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, 50.0, total)
}
