package domain

import "github.com/shopspring/decimal"

type ToolStatus string

const (
	ToolStatusAvailable      ToolStatus = "AVAILABLE"
	ToolStatusLoaned         ToolStatus = "LOANED"
	ToolStatusUnderRepair    ToolStatus = "UNDER_REPAIR"
	ToolStatusDecommissioned ToolStatus = "DECOMMISSIONED"
)

// ToolRanking is a reporting row: how often a tool has been loaned.
type ToolRanking struct {
	ToolID    int32  `json:"tool_id"`
	ToolName  string `json:"tool_name"`
	LoanCount int64  `json:"loan_count"`
}

type Tool struct {
	ID               int32           `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Status           ToolStatus      `json:"status"`
	Stock            int32           `json:"stock"`
	ReplacementValue decimal.Decimal `json:"replacement_value"`
}
