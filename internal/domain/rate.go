package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known rate keys seeded at startup.
const (
	RateKeyDailyRental  = "DAILY_RENTAL_RATE"
	RateKeyDailyFine    = "DAILY_FINE_RATE"
	RateKeyRepairCharge = "REPAIR_CHARGE"
)

type RateConfig struct {
	ID           int32           `json:"id"`
	Key          string          `json:"key"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description"`
	ModifiedBy   string          `json:"modified_by"`
	LastModified time.Time       `json:"last_modified"`
}
