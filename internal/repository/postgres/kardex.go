package postgres

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type kardexRepository struct {
	db DBTX
}

func NewKardexRepository(db DBTX) repository.KardexRepository {
	return &kardexRepository{db: db}
}

const kardexColumns = `id, tool_id, movement_type, quantity, username, note, movement_date, loan_id`

// Create appends a movement. There is deliberately no update or delete on
// this table.
func (r *kardexRepository) Create(ctx context.Context, e *domain.KardexEntry) error {
	query := `INSERT INTO kardex_movements (tool_id, movement_type, quantity, username, note, movement_date, loan_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if e.MovementDate.IsZero() {
		e.MovementDate = time.Now()
	}
	return r.db.QueryRowContext(ctx, query,
		e.ToolID, e.MovementType, e.Quantity, e.Username, e.Note, e.MovementDate, e.LoanID).Scan(&e.ID)
}

func (r *kardexRepository) ListByTool(ctx context.Context, toolID int32) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements WHERE tool_id = $1 ORDER BY movement_date DESC, id DESC`
	return r.queryEntries(ctx, query, toolID)
}

func (r *kardexRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements
	          WHERE movement_date >= $1 AND movement_date <= $2
	          ORDER BY movement_date DESC, id DESC`
	return r.queryEntries(ctx, query, start, end)
}

func (r *kardexRepository) ListByType(ctx context.Context, movementType domain.MovementType) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements WHERE movement_type = $1 ORDER BY movement_date DESC, id DESC`
	return r.queryEntries(ctx, query, movementType)
}

func (r *kardexRepository) ListAll(ctx context.Context) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements ORDER BY movement_date DESC, id DESC`
	return r.queryEntries(ctx, query)
}

func (r *kardexRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.KardexEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.KardexEntry
	for rows.Next() {
		var e domain.KardexEntry
		if err := rows.Scan(&e.ID, &e.ToolID, &e.MovementType, &e.Quantity, &e.Username, &e.Note, &e.MovementDate, &e.LoanID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
