package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type clientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, rut, phone, email, state`

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, rut, phone, email, state)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Rut, c.Phone, c.Email, c.State).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("client with the same rut or email already exists")
		}
		return err
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Rut, &c.Phone, &c.Email, &c.State)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("client", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
	return r.queryClients(ctx, query)
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, phone=$2, email=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("client email already exists")
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("client", c.ID)
	}
	return nil
}

func (r *clientRepository) UpdateState(ctx context.Context, id int32, state domain.ClientState) error {
	res, err := r.db.ExecContext(ctx, `UPDATE clients SET state=$1 WHERE id=$2`, state, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("client", id)
	}
	return nil
}

func (r *clientRepository) ExistsByRut(ctx context.Context, rut string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE rut = $1)`, rut).Scan(&exists)
	return exists, err
}

func (r *clientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *clientRepository) ListWithOverdues(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT DISTINCT c.id, c.name, c.rut, c.phone, c.email, c.state
	          FROM clients c JOIN loans l ON l.client_id = c.id
	          WHERE l.return_date IS NULL AND l.due_date < CURRENT_DATE
	          ORDER BY c.id`
	return r.queryClients(ctx, query)
}

func (r *clientRepository) queryClients(ctx context.Context, query string, args ...any) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Rut, &c.Phone, &c.Email, &c.State); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
