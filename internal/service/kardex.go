package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type kardexService struct {
	kardexRepo repository.KardexRepository
	toolRepo   repository.ToolRepository
}

func NewKardexService(kardexRepo repository.KardexRepository, toolRepo repository.ToolRepository) KardexService {
	return &kardexService{kardexRepo: kardexRepo, toolRepo: toolRepo}
}

func (s *kardexService) RegisterMovement(ctx context.Context, toolID int32, movementType domain.MovementType, quantity int32, username, note string, loanID *int32) (*domain.KardexEntry, error) {
	if toolID <= 0 {
		return nil, domain.InvalidRequest("tool id is required")
	}
	if movementType == "" {
		return nil, domain.InvalidRequest("movement type is required")
	}

	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}

	entry := &domain.KardexEntry{
		ToolID:       toolID,
		MovementType: movementType,
		Quantity:     quantity,
		Username:     auditUser(username),
		Note:         note,
		MovementDate: time.Now(),
		LoanID:       loanID,
	}
	if err := s.kardexRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *kardexService) GetByTool(ctx context.Context, toolID int32) ([]domain.KardexEntry, error) {
	if toolID <= 0 {
		return nil, domain.InvalidRequest("tool id is required")
	}
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}
	return s.kardexRepo.ListByTool(ctx, toolID)
}

func (s *kardexService) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.InvalidRequest("start and end dates are required")
	}
	if start.After(end) {
		return nil, domain.InvalidRequest("start date must not be after end date")
	}
	return s.kardexRepo.ListByDateRange(ctx, start, end)
}

func (s *kardexService) GetByType(ctx context.Context, movementType domain.MovementType) ([]domain.KardexEntry, error) {
	if movementType == "" {
		return nil, domain.InvalidRequest("movement type is required")
	}
	return s.kardexRepo.ListByType(ctx, movementType)
}

func (s *kardexService) GetAll(ctx context.Context) ([]domain.KardexEntry, error) {
	return s.kardexRepo.ListAll(ctx)
}
