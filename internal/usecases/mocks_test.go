package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"franquicias-latam.backend/internal/domain/entities"
	"franquicias-latam.backend/internal/usecases"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock OtpRepository
type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Create(ctx context.Context, v *entities.OtpVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockOtpRepository) LatestActive(ctx context.Context, phone string, now time.Time) (*entities.OtpVerification, error) {
	args := m.Called(ctx, phone, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OtpVerification), args.Error(1)
}

func (m *MockOtpRepository) LatestCreatedAt(ctx context.Context, phone string) (time.Time, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockOtpRepository) CountSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	args := m.Called(ctx, phone, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOtpRepository) DeleteUnverified(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockOtpRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockOtpRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOtpRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOtpRepository) HasVerified(ctx context.Context, phone string, now time.Time) (bool, error) {
	args := m.Called(ctx, phone, now)
	return args.Bool(0), args.Error(1)
}

// Mock LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entities.Lead, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, limit, offset int) ([]*entities.Lead, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entities.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) SetViewed(ctx context.Context, id uuid.UUID, viewed bool) error {
	args := m.Called(ctx, id, viewed)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) Stats(ctx context.Context, startOfMonth time.Time) (*entities.LeadStats, error) {
	args := m.Called(ctx, startOfMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LeadStats), args.Error(1)
}

func (m *MockLeadRepository) CreateMatches(ctx context.Context, matches []*entities.Match) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteMatchesByLead(ctx context.Context, leadID uuid.UUID) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) SetMatchContacted(ctx context.Context, matchID uuid.UUID, contacted bool) error {
	args := m.Called(ctx, matchID, contacted)
	return args.Error(0)
}

// Mock FranchiseRepository
type MockFranchiseRepository struct {
	mock.Mock
}

func (m *MockFranchiseRepository) Create(ctx context.Context, franchise *entities.Franchise) error {
	args := m.Called(ctx, franchise)
	return args.Error(0)
}

func (m *MockFranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Franchise), args.Error(1)
}

func (m *MockFranchiseRepository) ListActive(ctx context.Context) ([]*entities.Franchise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Franchise), args.Error(1)
}

func (m *MockFranchiseRepository) List(ctx context.Context) ([]*entities.Franchise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Franchise), args.Error(1)
}

func (m *MockFranchiseRepository) Update(ctx context.Context, franchise *entities.Franchise) error {
	args := m.Called(ctx, franchise)
	return args.Error(0)
}

func (m *MockFranchiseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListSectors(ctx context.Context) ([]*entities.Sector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Sector), args.Error(1)
}

func (m *MockCatalogRepository) ListCountries(ctx context.Context) ([]*entities.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Country), args.Error(1)
}

func (m *MockCatalogRepository) CountryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) SectorsExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CountriesExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

// Mock AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *entities.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock SmsSender
type MockSmsSender struct {
	mock.Mock
}

func (m *MockSmsSender) Send(ctx context.Context, phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}

// Mock LeadNotifier
type MockLeadNotifier struct {
	mock.Mock

	notified chan usecases.LeadSummary
}

func NewMockLeadNotifier() *MockLeadNotifier {
	return &MockLeadNotifier{notified: make(chan usecases.LeadSummary, 1)}
}

func (m *MockLeadNotifier) NotifyLeadCreated(ctx context.Context, summary usecases.LeadSummary) {
	m.Called(ctx, summary)
	m.notified <- summary
}
