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

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := &domain.Loan{
			ClientID:   1,
			ToolID:     2,
			StartDate:  time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			DueDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Status:     domain.LoanStatusActive,
			Fine:       decimal.Zero,
			RentalCost: decimal.NewFromInt(15000),
		}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.ClientID, loan.ToolID, loan.StartDate, loan.DueDate, loan.ReturnDate,
				loan.Status, loan.Fine, loan.RentalCost, loan.Damaged, loan.Irreparable).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), loan.ID)
	})
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	cols := []string{"id", "client_id", "tool_id", "start_date", "due_date", "return_date", "status", "fine", "rental_cost", "damaged", "irreparable"}

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(cols))

		loan, err := repo.GetByID(ctx, 99)
		assert.Nil(t, loan)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestLoanRepository_EligibilityChecks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()
	clientID := int32(1)

	t.Run("CountUnreturnedByClient", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM loans WHERE client_id").
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountUnreturnedByClient(ctx, clientID)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), count)
	})

	t.Run("HasOverdueUnreturned", func(t *testing.T) {
		asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(clientID, asOf).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		has, err := repo.HasOverdueUnreturned(ctx, clientID, asOf)
		assert.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("HasOverduesOrFines", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		has, err := repo.HasOverduesOrFines(ctx, clientID)
		assert.NoError(t, err)
		assert.False(t, has)
	})
}
