package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type toolRepository struct {
	db DBTX
}

func NewToolRepository(db DBTX) repository.ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `id, name, category, status, stock, replacement_value`

func (r *toolRepository) Create(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (name, category, status, stock, replacement_value)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, t.Name, t.Category, t.Status, t.Stock, t.ReplacementValue).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("tool name %q already exists", t.Name)
		}
		return err
	}
	return nil
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	return r.getByID(ctx, id, false)
}

func (r *toolRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Tool, error) {
	return r.getByID(ctx, id, true)
}

func (r *toolRepository) getByID(ctx context.Context, id int32, forUpdate bool) (*domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t := &domain.Tool{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Category, &t.Status, &t.Stock, &t.ReplacementValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("tool", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var t domain.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Status, &t.Stock, &t.ReplacementValue); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (r *toolRepository) Update(ctx context.Context, t *domain.Tool) error {
	query := `UPDATE tools SET name=$1, category=$2, status=$3, stock=$4, replacement_value=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Category, t.Status, t.Stock, t.ReplacementValue, t.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("tool", t.ID)
	}
	return nil
}

func (r *toolRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tools WHERE lower(name) = lower($1))`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	return exists, err
}

func (r *toolRepository) MostLoaned(ctx context.Context, limit int32, start, end *time.Time) ([]domain.ToolRanking, error) {
	query := `SELECT t.id, t.name, count(l.id) AS loan_count
	          FROM tools t JOIN loans l ON l.tool_id = t.id`
	args := []any{}
	if start != nil && end != nil {
		query += ` WHERE l.start_date >= $1 AND l.start_date <= $2`
		args = append(args, *start, *end)
	}
	query += ` GROUP BY t.id, t.name ORDER BY loan_count DESC, t.id`
	if start != nil && end != nil {
		query += ` LIMIT $3`
	} else {
		query += ` LIMIT $1`
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranking []domain.ToolRanking
	for rows.Next() {
		var tr domain.ToolRanking
		if err := rows.Scan(&tr.ToolID, &tr.ToolName, &tr.LoanCount); err != nil {
			return nil, err
		}
		ranking = append(ranking, tr)
	}
	return ranking, rows.Err()
}
