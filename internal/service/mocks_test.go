package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

// stubTransactor runs the unit of work directly against the mock
// repositories, with no transaction semantics.
type stubTransactor struct {
	repos repository.Repositories
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	return fn(s.repos)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) UpdateState(ctx context.Context, id int32, state domain.ClientState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}
func (m *MockClientRepo) ExistsByRut(ctx context.Context, rut string) (bool, error) {
	args := m.Called(ctx, rut)
	return args.Bool(0), args.Error(1)
}
func (m *MockClientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockClientRepo) ListWithOverdues(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) List(ctx context.Context) ([]domain.Tool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tool), args.Error(1)
}
func (m *MockToolRepo) Update(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
func (m *MockToolRepo) MostLoaned(ctx context.Context, limit int32, start, end *time.Time) ([]domain.ToolRanking, error) {
	args := m.Called(ctx, limit, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolRanking), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) List(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListUnreturned(ctx context.Context, start, end *time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) CountUnreturnedByClient(ctx context.Context, clientID int32) (int32, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLoanRepo) HasUnreturnedForTool(ctx context.Context, clientID, toolID int32) (bool, error) {
	args := m.Called(ctx, clientID, toolID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) HasUnreturnedByTool(ctx context.Context, toolID int32) (bool, error) {
	args := m.Called(ctx, toolID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) HasOverdueUnreturned(ctx context.Context, clientID int32, asOf time.Time) (bool, error) {
	args := m.Called(ctx, clientID, asOf)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) HasOverduesOrFines(ctx context.Context, clientID int32) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

// MockKardexRepo
type MockKardexRepo struct {
	mock.Mock
}

func (m *MockKardexRepo) Create(ctx context.Context, entry *domain.KardexEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockKardexRepo) ListByTool(ctx context.Context, toolID int32) ([]domain.KardexEntry, error) {
	args := m.Called(ctx, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexEntry), args.Error(1)
}
func (m *MockKardexRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexEntry), args.Error(1)
}
func (m *MockKardexRepo) ListByType(ctx context.Context, movementType domain.MovementType) ([]domain.KardexEntry, error) {
	args := m.Called(ctx, movementType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexEntry), args.Error(1)
}
func (m *MockKardexRepo) ListAll(ctx context.Context) ([]domain.KardexEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexEntry), args.Error(1)
}

// MockRateRepo
type MockRateRepo struct {
	mock.Mock
}

func (m *MockRateRepo) Create(ctx context.Context, rate *domain.RateConfig) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}
func (m *MockRateRepo) GetByKey(ctx context.Context, key string) (*domain.RateConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateConfig), args.Error(1)
}
func (m *MockRateRepo) ExistsByKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
func (m *MockRateRepo) Update(ctx context.Context, rate *domain.RateConfig) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}
func (m *MockRateRepo) List(ctx context.Context) ([]domain.RateConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateConfig), args.Error(1)
}

// repoFixture bundles fresh mocks with the Repositories value and a
// pass-through transactor, the common setup for every service test.
type repoFixture struct {
	clients *MockClientRepo
	tools   *MockToolRepo
	loans   *MockLoanRepo
	kardex  *MockKardexRepo
	rates   *MockRateRepo
	repos   repository.Repositories
	tx      *stubTransactor
}

func newRepoFixture() *repoFixture {
	f := &repoFixture{
		clients: new(MockClientRepo),
		tools:   new(MockToolRepo),
		loans:   new(MockLoanRepo),
		kardex:  new(MockKardexRepo),
		rates:   new(MockRateRepo),
	}
	f.repos = repository.Repositories{
		Clients: f.clients,
		Tools:   f.tools,
		Loans:   f.loans,
		Kardex:  f.kardex,
		Rates:   f.rates,
	}
	f.tx = &stubTransactor{repos: f.repos}
	return f
}
