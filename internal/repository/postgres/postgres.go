package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolrent-backend/internal/repository"

	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository code
// serves plain queries and transactional units of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Clients: NewClientRepository(db),
		Tools:   NewToolRepository(db),
		Loans:   NewLoanRepository(db),
		Kardex:  NewKardexRepository(db),
		Rates:   NewRateRepository(db),
	}
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
