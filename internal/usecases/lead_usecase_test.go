package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/usecases"
)

type leadTestDeps struct {
	leadRepo      *MockLeadRepository
	franchiseRepo *MockFranchiseRepository
	catalogRepo   *MockCatalogRepository
	otpRepo       *MockOtpRepository
	uow           *MockUnitOfWork
	notifier      *MockLeadNotifier
	uc            *usecases.LeadUsecase
}

func newLeadTestDeps(t *testing.T) *leadTestDeps {
	t.Helper()
	d := &leadTestDeps{
		leadRepo:      new(MockLeadRepository),
		franchiseRepo: new(MockFranchiseRepository),
		catalogRepo:   new(MockCatalogRepository),
		otpRepo:       new(MockOtpRepository),
		uow:           new(MockUnitOfWork),
		notifier:      NewMockLeadNotifier(),
	}
	otpUC := usecases.NewOtpUsecase(d.otpRepo, new(MockSmsSender), testOtpPolicy(), false)
	d.uc = usecases.NewLeadUsecase(d.leadRepo, d.franchiseRepo, d.catalogRepo, otpUC, d.uow, d.notifier)
	return d
}

func validLeadInput(sectorID, countryID uuid.UUID) *entities.CreateLeadInput {
	return &entities.CreateLeadInput{
		Name:            "Maria Gomez",
		Email:           "maria@example.com",
		Phone:           testPhone,
		Sectors:         []uuid.UUID{sectorID},
		InvestmentRange: entities.Range50K100K,
		CountryID:       countryID,
		ExperienceLevel: entities.ExperienceInversor,
	}
}

func (d *leadTestDeps) expectValidCatalog(input *entities.CreateLeadInput) {
	d.catalogRepo.On("CountryExists", mock.Anything, input.CountryID).Return(true, nil)
	d.catalogRepo.On("SectorsExist", mock.Anything, input.Sectors).Return(true, nil)
}

func (d *leadTestDeps) expectNotification() {
	d.notifier.On("NotifyLeadCreated", mock.Anything, mock.Anything).Return()
}

func (d *leadTestDeps) waitForNotification(t *testing.T) usecases.LeadSummary {
	t.Helper()
	select {
	case s := <-d.notifier.notified:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("notification never fired")
		return usecases.LeadSummary{}
	}
}

func TestSubmitLeadPhoneNotVerified(t *testing.T) {
	d := newLeadTestDeps(t)
	input := validLeadInput(uuid.New(), uuid.New())
	d.expectValidCatalog(input)
	d.otpRepo.On("HasVerified", mock.Anything, input.Phone, mock.Anything).Return(false, nil)

	_, err := d.uc.SubmitLead(context.Background(), input)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodePhoneNotVerified, appErr.Code)
	assert.Equal(t, 403, appErr.Status)
	d.leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitLeadValidation(t *testing.T) {
	d := newLeadTestDeps(t)

	cases := map[string]func(*entities.CreateLeadInput){
		"empty name":     func(i *entities.CreateLeadInput) { i.Name = "  " },
		"bad email":      func(i *entities.CreateLeadInput) { i.Email = "not-an-email" },
		"bad phone":      func(i *entities.CreateLeadInput) { i.Phone = "12ab" },
		"no sectors":     func(i *entities.CreateLeadInput) { i.Sectors = nil },
		"bad range":      func(i *entities.CreateLeadInput) { i.InvestmentRange = "RANGE_1_2" },
		"bad experience": func(i *entities.CreateLeadInput) { i.ExperienceLevel = "GURU" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validLeadInput(uuid.New(), uuid.New())
			mutate(input)

			_, err := d.uc.SubmitLead(context.Background(), input)
			var appErr *domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.CodeValidationError, appErr.Code)
		})
	}
}

func TestSubmitLeadUnknownCountry(t *testing.T) {
	d := newLeadTestDeps(t)
	input := validLeadInput(uuid.New(), uuid.New())
	d.catalogRepo.On("CountryExists", mock.Anything, input.CountryID).Return(false, nil)

	_, err := d.uc.SubmitLead(context.Background(), input)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidationError, appErr.Code)
}

func TestSubmitLeadCreatesNewLead(t *testing.T) {
	d := newLeadTestDeps(t)
	sectorID := uuid.New()
	countryID := uuid.New()
	input := validLeadInput(sectorID, countryID)

	franchise := newFranchise(sectorID, 50000, 120000, countryID)

	d.expectValidCatalog(input)
	d.expectNotification()
	d.otpRepo.On("HasVerified", mock.Anything, input.Phone, mock.Anything).Return(true, nil)
	d.franchiseRepo.On("ListActive", mock.Anything).Return([]*entities.Franchise{franchise}, nil)
	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	d.leadRepo.On("FindByEmailOrPhone", mock.Anything, input.Email, input.Phone).Return(nil, domainerrors.ErrNotFound)
	d.leadRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.Lead) bool {
		return l.Email == input.Email && l.PhoneVerified && !l.Viewed
	})).Return(nil)
	d.leadRepo.On("CreateMatches", mock.Anything, mock.MatchedBy(func(ms []*entities.Match) bool {
		return len(ms) == 1 && ms[0].FranchiseID == franchise.ID && ms[0].Score == 100
	})).Return(nil)

	out, err := d.uc.SubmitLead(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, out.Updated)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, 100, out.Matches[0].Score)

	summary := d.waitForNotification(t)
	assert.Equal(t, input.Email, summary.Email)
	assert.Equal(t, 1, summary.MatchCount)

	d.leadRepo.AssertExpectations(t)
}

func TestSubmitLeadUpdatesExistingAndReplacesMatches(t *testing.T) {
	d := newLeadTestDeps(t)
	oldSector := uuid.New()
	newSector := uuid.New()
	countryID := uuid.New()

	input := validLeadInput(newSector, countryID)
	existing := &entities.Lead{
		ID:              uuid.New(),
		Name:            "Old Name",
		Email:           input.Email,
		Phone:           "+573009998877",
		SectorIDs:       []uuid.UUID{oldSector},
		CountryID:       uuid.New(),
		InvestmentRange: entities.Range200KPlus,
		ExperienceLevel: entities.ExperienceOtro,
		Viewed:          true,
	}
	franchise := newFranchise(newSector, 50000, 120000, countryID)

	d.expectValidCatalog(input)
	d.expectNotification()
	d.otpRepo.On("HasVerified", mock.Anything, input.Phone, mock.Anything).Return(true, nil)
	d.franchiseRepo.On("ListActive", mock.Anything).Return([]*entities.Franchise{franchise}, nil)
	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	d.leadRepo.On("FindByEmailOrPhone", mock.Anything, input.Email, input.Phone).Return(existing, nil)
	d.leadRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *entities.Lead) bool {
		// Profile replaced wholesale, viewed reset.
		return l.ID == existing.ID &&
			l.Name == input.Name &&
			l.Phone == input.Phone &&
			len(l.SectorIDs) == 1 && l.SectorIDs[0] == newSector &&
			!l.Viewed
	})).Return(nil)
	d.leadRepo.On("DeleteMatchesByLead", mock.Anything, existing.ID).Return(nil)
	d.leadRepo.On("CreateMatches", mock.Anything, mock.Anything).Return(nil)

	out, err := d.uc.SubmitLead(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, out.Updated)
	assert.Equal(t, existing.ID, out.LeadID)

	d.waitForNotification(t)
	d.leadRepo.AssertExpectations(t)
	d.leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitLeadNoActiveFranchises(t *testing.T) {
	d := newLeadTestDeps(t)
	input := validLeadInput(uuid.New(), uuid.New())

	d.expectValidCatalog(input)
	d.expectNotification()
	d.otpRepo.On("HasVerified", mock.Anything, input.Phone, mock.Anything).Return(true, nil)
	d.franchiseRepo.On("ListActive", mock.Anything).Return([]*entities.Franchise{}, nil)
	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	d.leadRepo.On("FindByEmailOrPhone", mock.Anything, input.Email, input.Phone).Return(nil, domainerrors.ErrNotFound)
	d.leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := d.uc.SubmitLead(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, out.Matches)
	d.leadRepo.AssertNotCalled(t, "CreateMatches", mock.Anything, mock.Anything)
}

func TestSubmitLeadRollsBackOnMatchFailure(t *testing.T) {
	d := newLeadTestDeps(t)
	sectorID := uuid.New()
	countryID := uuid.New()
	input := validLeadInput(sectorID, countryID)
	franchise := newFranchise(sectorID, 50000, 120000, countryID)

	d.expectValidCatalog(input)
	d.otpRepo.On("HasVerified", mock.Anything, input.Phone, mock.Anything).Return(true, nil)
	d.franchiseRepo.On("ListActive", mock.Anything).Return([]*entities.Franchise{franchise}, nil)
	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	d.leadRepo.On("FindByEmailOrPhone", mock.Anything, input.Email, input.Phone).Return(nil, domainerrors.ErrNotFound)
	d.leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.leadRepo.On("CreateMatches", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := d.uc.SubmitLead(context.Background(), input)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeInternalError, appErr.Code)
}

func TestStatsUsesStartOfMonth(t *testing.T) {
	d := newLeadTestDeps(t)

	expected := &entities.LeadStats{TotalLeads: 12, LeadsThisMonth: 3, UnviewedLeads: 5}
	d.leadRepo.On("Stats", mock.Anything, mock.MatchedBy(func(ts time.Time) bool {
		return ts.Day() == 1 && ts.Hour() == 0 && ts.Minute() == 0
	})).Return(expected, nil)

	stats, err := d.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}

func TestSetViewedNotFound(t *testing.T) {
	d := newLeadTestDeps(t)
	id := uuid.New()
	d.leadRepo.On("SetViewed", mock.Anything, id, true).Return(domainerrors.ErrNotFound)

	err := d.uc.SetViewed(context.Background(), id, true)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
