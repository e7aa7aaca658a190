package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type rateRepository struct {
	db DBTX
}

func NewRateRepository(db DBTX) repository.RateRepository {
	return &rateRepository{db: db}
}

const rateColumns = `id, config_key, config_value, description, modified_by, last_modified`

func (r *rateRepository) Create(ctx context.Context, rc *domain.RateConfig) error {
	query := `INSERT INTO rate_configs (config_key, config_value, description, modified_by, last_modified)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rc.Key, rc.Value, rc.Description, rc.ModifiedBy, rc.LastModified).Scan(&rc.ID)
	if err != nil && isUniqueViolation(err) {
		return domain.Conflict("config %q already exists", rc.Key)
	}
	return err
}

func (r *rateRepository) GetByKey(ctx context.Context, key string) (*domain.RateConfig, error) {
	rc := &domain.RateConfig{}
	query := `SELECT ` + rateColumns + ` FROM rate_configs WHERE config_key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&rc.ID, &rc.Key, &rc.Value, &rc.Description, &rc.ModifiedBy, &rc.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("config", key)
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *rateRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rate_configs WHERE config_key = $1)`, key).Scan(&exists)
	return exists, err
}

func (r *rateRepository) Update(ctx context.Context, rc *domain.RateConfig) error {
	query := `UPDATE rate_configs SET config_value=$1, modified_by=$2, last_modified=$3 WHERE config_key=$4`
	res, err := r.db.ExecContext(ctx, query, rc.Value, rc.ModifiedBy, rc.LastModified, rc.Key)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("config", rc.Key)
	}
	return nil
}

func (r *rateRepository) List(ctx context.Context) ([]domain.RateConfig, error) {
	query := `SELECT ` + rateColumns + ` FROM rate_configs ORDER BY config_key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []domain.RateConfig
	for rows.Next() {
		var rc domain.RateConfig
		if err := rows.Scan(&rc.ID, &rc.Key, &rc.Value, &rc.Description, &rc.ModifiedBy, &rc.LastModified); err != nil {
			return nil, err
		}
		configs = append(configs, rc)
	}
	return configs, rows.Err()
}
