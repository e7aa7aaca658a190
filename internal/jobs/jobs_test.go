package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/jobs"
)

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) EnsureDefaults(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockRateService) Get(ctx context.Context, key string) (*domain.RateConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateConfig), args.Error(1)
}
func (m *MockRateService) List(ctx context.Context) ([]domain.RateConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateConfig), args.Error(1)
}
func (m *MockRateService) Set(ctx context.Context, key string, value decimal.Decimal, actingUser string) (*domain.RateConfig, error) {
	args := m.Called(ctx, key, value, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateConfig), args.Error(1)
}
func (m *MockRateService) DailyRentalRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateService) DailyFineRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateService) RepairCharge(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) Update(ctx context.Context, id int32, name, phone, email string) (*domain.Client, error) {
	args := m.Called(ctx, id, name, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) SetState(ctx context.Context, id int32, state domain.ClientState) (*domain.Client, error) {
	args := m.Called(ctx, id, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) RecomputeState(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockClientService) RecomputeAllStates(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestJobRunner_MarkOverdueLoans(t *testing.T) {
	db, dbmock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	rateSvc := new(MockRateService)
	clientSvc := new(MockClientService)
	runner := jobs.NewJobRunner(db, rateSvc, clientSvc)

	fineRate := decimal.NewFromInt(2000)
	rateSvc.On("DailyFineRate", mock.Anything).Return(fineRate, nil)

	dbmock.ExpectQuery("UPDATE loans").
		WithArgs(fineRate).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "tool_id", "due_date"}).
			AddRow(7, 1, 2, time.Now().AddDate(0, 0, -2).Format("2006-01-02")).
			AddRow(8, 3, 4, time.Now().AddDate(0, 0, -1).Format("2006-01-02")))

	runner.MarkOverdueLoans()

	assert.NoError(t, dbmock.ExpectationsWereMet())
	rateSvc.AssertExpectations(t)
}

func TestJobRunner_RefreshClientStates(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	rateSvc := new(MockRateService)
	clientSvc := new(MockClientService)
	runner := jobs.NewJobRunner(db, rateSvc, clientSvc)

	clientSvc.On("RecomputeAllStates", mock.Anything).Return(nil)

	runner.RefreshClientStates()

	clientSvc.AssertExpectations(t)
}

func TestJobRunner_RecoversFromPanic(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	rateSvc := new(MockRateService)
	clientSvc := new(MockClientService)
	runner := jobs.NewJobRunner(db, rateSvc, clientSvc)

	clientSvc.On("RecomputeAllStates", mock.Anything).Panic("boom")

	// must not propagate
	assert.NotPanics(t, func() { runner.RefreshClientStates() })
}
