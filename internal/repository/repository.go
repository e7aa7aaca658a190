package repository

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	UpdateState(ctx context.Context, id int32, state domain.ClientState) error
	ExistsByRut(ctx context.Context, rut string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListWithOverdues(ctx context.Context) ([]domain.Client, error)
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	// GetByIDForUpdate locks the tool row for the rest of the enclosing
	// transaction. Concurrent loan creation serializes on this lock so the
	// stock check and decrement cannot race.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Tool, error)
	List(ctx context.Context) ([]domain.Tool, error)
	Update(ctx context.Context, tool *domain.Tool) error
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	MostLoaned(ctx context.Context, limit int32, start, end *time.Time) ([]domain.ToolRanking, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	List(ctx context.Context) ([]domain.Loan, error)
	ListUnreturned(ctx context.Context, start, end *time.Time) ([]domain.Loan, error)
	CountUnreturnedByClient(ctx context.Context, clientID int32) (int32, error)
	HasUnreturnedForTool(ctx context.Context, clientID, toolID int32) (bool, error)
	HasUnreturnedByTool(ctx context.Context, toolID int32) (bool, error)
	// HasOverdueUnreturned reports whether the client holds an unreturned
	// loan whose due date is before asOf.
	HasOverdueUnreturned(ctx context.Context, clientID int32, asOf time.Time) (bool, error)
	// HasOverduesOrFines reports whether the client has an unreturned loan
	// past its due date or a loan stuck in OVERDUE with an unpaid fine.
	HasOverduesOrFines(ctx context.Context, clientID int32) (bool, error)
}

type KardexRepository interface {
	Create(ctx context.Context, entry *domain.KardexEntry) error
	ListByTool(ctx context.Context, toolID int32) ([]domain.KardexEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error)
	ListByType(ctx context.Context, movementType domain.MovementType) ([]domain.KardexEntry, error)
	ListAll(ctx context.Context) ([]domain.KardexEntry, error)
}

type RateRepository interface {
	Create(ctx context.Context, rate *domain.RateConfig) error
	GetByKey(ctx context.Context, key string) (*domain.RateConfig, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, rate *domain.RateConfig) error
	List(ctx context.Context) ([]domain.RateConfig, error)
}

// Repositories bundles every repository over one database handle, which may
// be the plain connection pool or an open transaction.
type Repositories struct {
	Clients ClientRepository
	Tools   ToolRepository
	Loans   LoanRepository
	Kardex  KardexRepository
	Rates   RateRepository
}

// Transactor runs fn against transaction-scoped repositories. fn returning
// an error rolls the whole unit back; otherwise it commits.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
