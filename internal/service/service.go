package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"toolrent-backend/internal/domain"
)

// ActingUserSystem is the audit username recorded when no caller identity
// can be resolved.
const ActingUserSystem = "SYSTEM"

type LoanService interface {
	CreateLoan(ctx context.Context, clientID, toolID int32, dueDate time.Time, actingUser string) (*domain.Loan, error)
	ReturnTool(ctx context.Context, loanID int32, isDamaged, isIrreparable bool, actingUser string) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]domain.Loan, error)
}

type ToolService interface {
	Register(ctx context.Context, tool *domain.Tool, actingUser string) (*domain.Tool, error)
	Get(ctx context.Context, id int32) (*domain.Tool, error)
	List(ctx context.Context) ([]domain.Tool, error)
	Decommission(ctx context.Context, id int32, actingUser string) (*domain.Tool, error)
}

type ClientService interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Get(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, id int32, name, phone, email string) (*domain.Client, error)
	// SetState is the administrative override; the recomputation sweep will
	// revisit it on its next run.
	SetState(ctx context.Context, id int32, state domain.ClientState) (*domain.Client, error)
	RecomputeState(ctx context.Context, id int32) (bool, error)
	RecomputeAllStates(ctx context.Context) error
}

type KardexService interface {
	RegisterMovement(ctx context.Context, toolID int32, movementType domain.MovementType, quantity int32, username, note string, loanID *int32) (*domain.KardexEntry, error)
	GetByTool(ctx context.Context, toolID int32) ([]domain.KardexEntry, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error)
	GetByType(ctx context.Context, movementType domain.MovementType) ([]domain.KardexEntry, error)
	GetAll(ctx context.Context) ([]domain.KardexEntry, error)
}

type RateService interface {
	EnsureDefaults(ctx context.Context) error
	Get(ctx context.Context, key string) (*domain.RateConfig, error)
	List(ctx context.Context) ([]domain.RateConfig, error)
	Set(ctx context.Context, key string, value decimal.Decimal, actingUser string) (*domain.RateConfig, error)
	DailyRentalRate(ctx context.Context) (decimal.Decimal, error)
	DailyFineRate(ctx context.Context) (decimal.Decimal, error)
	RepairCharge(ctx context.Context) (decimal.Decimal, error)
}

type ReportService interface {
	ActiveLoans(ctx context.Context, start, end *time.Time) ([]domain.Loan, error)
	ClientsWithOverdues(ctx context.Context) ([]domain.Client, error)
	MostLoanedTools(ctx context.Context, limit int32, start, end *time.Time) ([]domain.ToolRanking, error)
}
