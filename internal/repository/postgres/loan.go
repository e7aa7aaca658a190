package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type loanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, client_id, tool_id, start_date, due_date, return_date, status, fine, rental_cost, damaged, irreparable`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (client_id, tool_id, start_date, due_date, return_date, status, fine, rental_cost, damaged, irreparable)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		l.ClientID, l.ToolID, l.StartDate, l.DueDate, l.ReturnDate,
		l.Status, l.Fine, l.RentalCost, l.Damaged, l.Irreparable).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	l := &domain.Loan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.ClientID, &l.ToolID, &l.StartDate, &l.DueDate, &l.ReturnDate,
		&l.Status, &l.Fine, &l.RentalCost, &l.Damaged, &l.Irreparable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("loan", id)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET return_date=$1, status=$2, fine=$3, damaged=$4, irreparable=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, l.ReturnDate, l.Status, l.Fine, l.Damaged, l.Irreparable, l.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("loan", l.ID)
	}
	return nil
}

func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY id`
	return r.queryLoans(ctx, query)
}

func (r *loanRepository) ListUnreturned(ctx context.Context, start, end *time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE return_date IS NULL`
	args := []any{}
	if start != nil && end != nil {
		query += ` AND start_date >= $1 AND start_date <= $2`
		args = append(args, *start, *end)
	}
	query += ` ORDER BY due_date`
	return r.queryLoans(ctx, query, args...)
}

func (r *loanRepository) CountUnreturnedByClient(ctx context.Context, clientID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM loans WHERE client_id = $1 AND return_date IS NULL`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&count)
	return count, err
}

func (r *loanRepository) HasUnreturnedForTool(ctx context.Context, clientID, toolID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE client_id = $1 AND tool_id = $2 AND return_date IS NULL)`
	err := r.db.QueryRowContext(ctx, query, clientID, toolID).Scan(&exists)
	return exists, err
}

func (r *loanRepository) HasUnreturnedByTool(ctx context.Context, toolID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE tool_id = $1 AND return_date IS NULL)`
	err := r.db.QueryRowContext(ctx, query, toolID).Scan(&exists)
	return exists, err
}

func (r *loanRepository) HasOverdueUnreturned(ctx context.Context, clientID int32, asOf time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE client_id = $1 AND return_date IS NULL AND due_date < $2)`
	err := r.db.QueryRowContext(ctx, query, clientID, asOf).Scan(&exists)
	return exists, err
}

func (r *loanRepository) HasOverduesOrFines(ctx context.Context, clientID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
	            SELECT 1 FROM loans
	            WHERE client_id = $1
	              AND ((return_date IS NULL AND due_date < CURRENT_DATE)
	                OR (status = 'OVERDUE' AND fine > 0)))`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&exists)
	return exists, err
}

func (r *loanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.ClientID, &l.ToolID, &l.StartDate, &l.DueDate, &l.ReturnDate,
			&l.Status, &l.Fine, &l.RentalCost, &l.Damaged, &l.Irreparable); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
