package services_test

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock ViolationRepository ---
type MockViolationRepository struct {
	mock.Mock
}

func (m *MockViolationRepository) FindViolationByID(ctx context.Context, id string) (*domain.ViolationRecord, error) {
	args := m.Called(ctx, id)
	var rec *domain.ViolationRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ViolationRecord)
	}
	return rec, args.Error(1)
}

func (m *MockViolationRepository) FindLatestViolation(ctx context.Context) (*domain.ViolationRecord, error) {
	args := m.Called(ctx)
	var rec *domain.ViolationRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ViolationRecord)
	}
	return rec, args.Error(1)
}

func (m *MockViolationRepository) ListViolations(ctx context.Context, filter domain.ListFilter) ([]domain.ViolationRecord, error) {
	args := m.Called(ctx, filter)
	var recs []domain.ViolationRecord
	if args.Get(0) != nil {
		recs = args.Get(0).([]domain.ViolationRecord)
	}
	return recs, args.Error(1)
}

func (m *MockViolationRepository) SaveViolation(ctx context.Context, rec domain.ViolationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockViolationRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockViolationRepository) DeleteViolation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock PrinterBridge ---
type MockPrinterBridge struct {
	mock.Mock
}

func (m *MockPrinterBridge) Dispatch(document string, returnURL string) domain.PrintDispatch {
	args := m.Called(document, returnURL)
	return args.Get(0).(domain.PrintDispatch)
}

// --- Mock PasswordAuthenticator ---
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) AuthenticatePassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	args := m.Called(ctx, email, password)
	var identity *domain.Identity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.Identity)
	}
	return identity, args.Error(1)
}

// --- Mock GoogleOAuthHandler ---
type MockGoogleOAuthHandler struct {
	mock.Mock
}

func (m *MockGoogleOAuthHandler) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	var token *oauth2.Token
	if args.Get(0) != nil {
		token = args.Get(0).(*oauth2.Token)
	}
	return token, args.Error(1)
}

func (m *MockGoogleOAuthHandler) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	var payload *idtoken.Payload
	if args.Get(0) != nil {
		payload = args.Get(0).(*idtoken.Payload)
	}
	return payload, args.Error(1)
}
