package domain

import "time"

type MovementType string

const (
	MovementTypeRegister MovementType = "REGISTER"
	MovementTypeLoan     MovementType = "LOAN"
	MovementTypeReturn   MovementType = "RETURN"
	MovementTypeRepair   MovementType = "REPAIR"
	MovementTypeWriteOff MovementType = "WRITE_OFF"
)

// KardexEntry is an immutable stock movement record. Entries are only ever
// appended; for any tool the sum of Quantity since its REGISTER entry must
// equal the tool's current stock.
type KardexEntry struct {
	ID           int32        `json:"id"`
	ToolID       int32        `json:"tool_id"`
	MovementType MovementType `json:"movement_type"`
	Quantity     int32        `json:"quantity"`
	Username     string       `json:"username"`
	Note         string       `json:"note"`
	MovementDate time.Time    `json:"movement_date"`
	LoanID       *int32       `json:"loan_id,omitempty"`
}
