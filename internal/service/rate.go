package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type rateService struct {
	rateRepo repository.RateRepository
}

func NewRateService(rateRepo repository.RateRepository) RateService {
	return &rateService{rateRepo: rateRepo}
}

type rateDefault struct {
	key         string
	value       int64
	description string
}

var rateDefaults = []rateDefault{
	{domain.RateKeyDailyRental, 5000, "daily rental rate per tool"},
	{domain.RateKeyDailyFine, 2000, "daily fine for late returns"},
	{domain.RateKeyRepairCharge, 10000, "flat charge for reparable damage"},
}

// EnsureDefaults seeds the three well-known rate keys. Existing values are
// left alone, so it is safe to run on every startup.
func (s *rateService) EnsureDefaults(ctx context.Context) error {
	for _, d := range rateDefaults {
		exists, err := s.rateRepo.ExistsByKey(ctx, d.key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		rc := &domain.RateConfig{
			Key:          d.key,
			Value:        decimal.NewFromInt(d.value),
			Description:  d.description,
			ModifiedBy:   ActingUserSystem,
			LastModified: time.Now(),
		}
		if err := s.rateRepo.Create(ctx, rc); err != nil {
			return err
		}
		logger.Info("rate config seeded", "key", d.key, "value", d.value)
	}
	return nil
}

func (s *rateService) Get(ctx context.Context, key string) (*domain.RateConfig, error) {
	if key == "" {
		return nil, domain.InvalidRequest("config key is required")
	}
	return s.rateRepo.GetByKey(ctx, key)
}

func (s *rateService) List(ctx context.Context) ([]domain.RateConfig, error) {
	return s.rateRepo.List(ctx)
}

func (s *rateService) Set(ctx context.Context, key string, value decimal.Decimal, actingUser string) (*domain.RateConfig, error) {
	if key == "" {
		return nil, domain.InvalidRequest("config key is required")
	}
	if value.IsNegative() {
		return nil, domain.InvalidRequest("value must be greater than or equal to 0")
	}

	rc, err := s.rateRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	rc.Value = value
	rc.ModifiedBy = auditUser(actingUser)
	rc.LastModified = time.Now()
	if err := s.rateRepo.Update(ctx, rc); err != nil {
		return nil, err
	}

	logger.Info("rate config updated", "key", key, "value", value.String(), "modified_by", rc.ModifiedBy)
	return rc, nil
}

func (s *rateService) DailyRentalRate(ctx context.Context) (decimal.Decimal, error) {
	return s.rateValue(ctx, domain.RateKeyDailyRental)
}

func (s *rateService) DailyFineRate(ctx context.Context) (decimal.Decimal, error) {
	return s.rateValue(ctx, domain.RateKeyDailyFine)
}

func (s *rateService) RepairCharge(ctx context.Context) (decimal.Decimal, error) {
	return s.rateValue(ctx, domain.RateKeyRepairCharge)
}

func (s *rateService) rateValue(ctx context.Context, key string) (decimal.Decimal, error) {
	rc, err := s.rateRepo.GetByKey(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	return rc.Value, nil
}
