package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

type Loan struct {
	ID         int32           `json:"id"`
	ClientID   int32           `json:"client_id"`
	ToolID     int32           `json:"tool_id"`
	StartDate  time.Time       `json:"start_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	Status     LoanStatus      `json:"status"`
	Fine       decimal.Decimal `json:"fine"`
	RentalCost decimal.Decimal `json:"rental_cost"`
	Damaged    bool            `json:"damaged"`
	Irreparable bool           `json:"irreparable"`
}

// DamageOutcome is the closed set of return conditions. The two request
// flags collapse into exactly one outcome; return processing dispatches on
// it in a single switch so the stock/fine/ledger effects per branch stay
// auditable.
type DamageOutcome int

const (
	DamageOutcomeUndamaged DamageOutcome = iota
	DamageOutcomeReparable
	DamageOutcomeIrreparable
)

func DamageOutcomeFromFlags(damaged, irreparable bool) DamageOutcome {
	switch {
	case damaged && irreparable:
		return DamageOutcomeIrreparable
	case damaged:
		return DamageOutcomeReparable
	default:
		return DamageOutcomeUndamaged
	}
}
