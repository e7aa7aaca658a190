package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
	"toolrent-backend/internal/utils"
)

const maxActiveLoansPerClient = 5

type loanService struct {
	tx    repository.Transactor
	repos repository.Repositories
	now   func() time.Time
}

func NewLoanService(tx repository.Transactor, repos repository.Repositories) LoanService {
	return &loanService{tx: tx, repos: repos, now: time.Now}
}

// CreateLoan validates eligibility and creates the loan, decrements the tool
// stock and appends the kardex movement in one transaction. The tool row is
// locked before the stock check, so two concurrent creates for the same tool
// cannot both pass stock >= 1.
func (s *loanService) CreateLoan(ctx context.Context, clientID, toolID int32, dueDate time.Time, actingUser string) (*domain.Loan, error) {
	if clientID <= 0 || toolID <= 0 || dueDate.IsZero() {
		return nil, domain.InvalidRequest("client, tool and due date are required")
	}

	today := utils.StartOfDay(s.now())
	due := utils.StartOfDay(dueDate)
	if due.Before(today) {
		return nil, domain.InvalidRequest("due date %s cannot be before today", due.Format("2006-01-02"))
	}

	var loan *domain.Loan
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		// The client's derived state may be stale; refresh it before the
		// eligibility checks, like the nightly sweep would.
		if _, err := recomputeClientState(ctx, r, clientID); err != nil {
			return err
		}

		client, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}

		tool, err := r.Tools.GetByIDForUpdate(ctx, toolID)
		if err != nil {
			return err
		}
		if tool.Status != domain.ToolStatusAvailable {
			return domain.RuleViolation("tool unavailable")
		}
		if tool.Stock < 1 {
			return domain.RuleViolation("no stock")
		}

		overdue, err := r.Loans.HasOverdueUnreturned(ctx, clientID, today)
		if err != nil {
			return err
		}
		if overdue {
			return domain.RuleViolation("client has overdue loans")
		}
		// Covers the admin override: a client restricted by hand is turned
		// away even with a clean loan history.
		if client.State != domain.ClientStateActive {
			return domain.RuleViolation("client restricted")
		}

		active, err := r.Loans.CountUnreturnedByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if active >= maxActiveLoansPerClient {
			return domain.RuleViolation("max active loans exceeded")
		}

		duplicate, err := r.Loans.HasUnreturnedForTool(ctx, clientID, toolID)
		if err != nil {
			return err
		}
		if duplicate {
			return domain.RuleViolation("duplicate active loan")
		}

		rate, err := r.Rates.GetByKey(ctx, domain.RateKeyDailyRental)
		if err != nil {
			return err
		}
		days := utils.DaysBetween(today, due)
		if days < 1 {
			days = 1
		}

		loan = &domain.Loan{
			ClientID:   clientID,
			ToolID:     toolID,
			StartDate:  today,
			DueDate:    due,
			Status:     domain.LoanStatusActive,
			Fine:       decimal.Zero,
			RentalCost: rate.Value.Mul(decimal.NewFromInt(days)),
		}
		if err := r.Loans.Create(ctx, loan); err != nil {
			return err
		}

		tool.Stock--
		if err := r.Tools.Update(ctx, tool); err != nil {
			return err
		}

		entry := &domain.KardexEntry{
			ToolID:       toolID,
			MovementType: domain.MovementTypeLoan,
			Quantity:     -1,
			Username:     auditUser(actingUser),
			Note:         fmt.Sprintf("loan #%d to client %s", loan.ID, client.Name),
			LoanID:       &loan.ID,
		}
		return r.Kardex.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("loan created", "loan_id", loan.ID, "client_id", clientID, "tool_id", toolID, "due_date", due.Format("2006-01-02"))
	return loan, nil
}

// ReturnTool processes a return. Calling it again for a loan that already
// has a return date is a no-op and hands back the stored loan unchanged.
func (s *loanService) ReturnTool(ctx context.Context, loanID int32, isDamaged, isIrreparable bool, actingUser string) (*domain.Loan, error) {
	if loanID <= 0 {
		return nil, domain.InvalidRequest("loan id is required")
	}

	var loan *domain.Loan
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		loan, err = r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.ReturnDate != nil || loan.Status == domain.LoanStatusReturned {
			return nil
		}

		tool, err := r.Tools.GetByIDForUpdate(ctx, loan.ToolID)
		if err != nil {
			return err
		}

		today := utils.StartOfDay(s.now())
		loan.ReturnDate = &today
		loan.Damaged = isDamaged
		loan.Irreparable = isIrreparable

		if daysLate := utils.DaysLate(loan.DueDate, today); daysLate > 0 {
			fineRate, err := r.Rates.GetByKey(ctx, domain.RateKeyDailyFine)
			if err != nil {
				return err
			}
			loan.Fine = loan.Fine.Add(fineRate.Value.Mul(decimal.NewFromInt(daysLate)))
		}

		entry := &domain.KardexEntry{
			ToolID:   loan.ToolID,
			Username: auditUser(actingUser),
			LoanID:   &loan.ID,
		}

		switch domain.DamageOutcomeFromFlags(isDamaged, isIrreparable) {
		case domain.DamageOutcomeIrreparable:
			// The unit is lost: no stock increment, the client owes the
			// full replacement value and the tool is written off.
			tool.Status = domain.ToolStatusDecommissioned
			loan.Fine = loan.Fine.Add(tool.ReplacementValue)
			entry.MovementType = domain.MovementTypeWriteOff
			entry.Quantity = 0
			entry.Note = fmt.Sprintf("write-off after irreparable damage (loan #%d)", loan.ID)

		case domain.DamageOutcomeReparable:
			// The unit goes back on the shelf while flagged for repair; the
			// configured repair charge is added to the fine.
			repairCharge, err := r.Rates.GetByKey(ctx, domain.RateKeyRepairCharge)
			if err != nil {
				return err
			}
			tool.Status = domain.ToolStatusUnderRepair
			tool.Stock++
			loan.Fine = loan.Fine.Add(repairCharge.Value)
			entry.MovementType = domain.MovementTypeRepair
			entry.Quantity = 1
			entry.Note = fmt.Sprintf("return with reparable damage (loan #%d)", loan.ID)

		case domain.DamageOutcomeUndamaged:
			tool.Status = domain.ToolStatusAvailable
			tool.Stock++
			entry.MovementType = domain.MovementTypeReturn
			entry.Quantity = 1
			entry.Note = fmt.Sprintf("return in good condition (loan #%d)", loan.ID)
		}

		// Any accrued charge, even with zero days late, leaves the loan in
		// OVERDUE until the fine is settled.
		if loan.Fine.IsPositive() {
			loan.Status = domain.LoanStatusOverdue
		} else {
			loan.Status = domain.LoanStatusReturned
		}

		if err := r.Loans.Update(ctx, loan); err != nil {
			return err
		}
		if err := r.Tools.Update(ctx, tool); err != nil {
			return err
		}
		if err := r.Kardex.Create(ctx, entry); err != nil {
			return err
		}

		_, err = recomputeClientState(ctx, r, loan.ClientID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("tool returned", "loan_id", loan.ID, "status", loan.Status, "fine", loan.Fine.String())
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.repos.Loans.List(ctx)
}

func auditUser(actingUser string) string {
	if actingUser == "" {
		return ActingUserSystem
	}
	return actingUser
}

// recomputeClientState derives the client state from loan history: overdue
// unreturned loans or unpaid fines restrict, a clean slate reactivates.
// Missing clients are skipped so the sweep can run over stale IDs.
func recomputeClientState(ctx context.Context, r repository.Repositories, clientID int32) (bool, error) {
	client, err := r.Clients.GetByID(ctx, clientID)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	hasProblems, err := r.Loans.HasOverduesOrFines(ctx, clientID)
	if err != nil {
		return false, err
	}

	switch {
	case hasProblems && client.State == domain.ClientStateActive:
		return true, r.Clients.UpdateState(ctx, clientID, domain.ClientStateRestricted)
	case !hasProblems && client.State == domain.ClientStateRestricted:
		return true, r.Clients.UpdateState(ctx, clientID, domain.ClientStateActive)
	}
	return false, nil
}
