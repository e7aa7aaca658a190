package jobs

import (
	"context"

	"toolrent-backend/internal/logger"
)

// MarkOverdueLoans flips unreturned loans past their due date from ACTIVE to
// OVERDUE and sets the accrued late fine. Loans already OVERDUE are left
// alone; their fine is settled at return time from the actual day count.
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()

		fineRate, err := jr.rateSvc.DailyFineRate(ctx)
		if err != nil {
			logger.Error("Failed to load daily fine rate", "error", err)
			return
		}

		query := `
			UPDATE loans
			SET status = 'OVERDUE',
			    fine = (CURRENT_DATE - due_date) * $1
			WHERE status = 'ACTIVE'
			  AND return_date IS NULL
			  AND due_date < CURRENT_DATE
			RETURNING id, client_id, tool_id, due_date
		`

		rows, err := jr.db.QueryContext(ctx, query, fineRate)
		if err != nil {
			logger.Error("Failed to mark overdue loans", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var loanID, clientID, toolID int32
			var dueDate string
			if err := rows.Scan(&loanID, &clientID, &toolID, &dueDate); err != nil {
				logger.Error("Failed to scan overdue loan", "error", err)
				continue
			}
			count++
			logger.Debug("Marked loan as overdue",
				"loan_id", loanID,
				"client_id", clientID,
				"tool_id", toolID,
				"due_date", dueDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue loans", "error", err)
			return
		}

		logger.Info("Marked loans as overdue", "count", count)
	})
}

// RefreshClientStates recomputes the derived ACTIVE/RESTRICTED state for
// every client from current loan history.
func (jr *JobRunner) RefreshClientStates() {
	jr.runWithRecovery("RefreshClientStates", func() {
		if err := jr.clientSvc.RecomputeAllStates(context.Background()); err != nil {
			logger.Error("Failed to refresh client states", "error", err)
		}
	})
}
