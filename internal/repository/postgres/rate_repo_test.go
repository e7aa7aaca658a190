package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository/postgres"
)

func TestRateRepository_GetByKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRateRepository(db)
	ctx := context.Background()

	cols := []string{"id", "config_key", "config_value", "description", "modified_by", "last_modified"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rate_configs WHERE config_key").
			WithArgs(domain.RateKeyDailyRental).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, domain.RateKeyDailyRental, "5000", "daily rental rate per tool", "SYSTEM", time.Now()))

		rc, err := repo.GetByKey(ctx, domain.RateKeyDailyRental)
		assert.NoError(t, err)
		assert.True(t, rc.Value.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rate_configs WHERE config_key").
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(cols))

		rc, err := repo.GetByKey(ctx, "NOPE")
		assert.Nil(t, rc)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestRateRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRateRepository(db)
	ctx := context.Background()

	rc := &domain.RateConfig{
		Key:          domain.RateKeyDailyFine,
		Value:        decimal.NewFromInt(2500),
		ModifiedBy:   "paula",
		LastModified: time.Now(),
	}

	t.Run("Missing Key", func(t *testing.T) {
		mock.ExpectExec("UPDATE rate_configs SET").
			WithArgs(rc.Value, rc.ModifiedBy, rc.LastModified, rc.Key).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, rc)
		assert.True(t, domain.IsNotFound(err))
	})
}
