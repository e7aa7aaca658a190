package service

import (
	"context"
	"fmt"
	"strings"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type toolService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewToolService(tx repository.Transactor, repos repository.Repositories) ToolService {
	return &toolService{tx: tx, repos: repos}
}

// Register creates the tool and its opening REGISTER kardex entry in one
// transaction, so the ledger starts reconciled with the initial stock.
func (s *toolService) Register(ctx context.Context, tool *domain.Tool, actingUser string) (*domain.Tool, error) {
	tool.Name = strings.TrimSpace(tool.Name)
	if tool.Name == "" {
		return nil, domain.InvalidRequest("tool name is required")
	}
	if tool.Stock < 0 {
		return nil, domain.InvalidRequest("stock cannot be negative")
	}
	if !tool.ReplacementValue.IsPositive() {
		return nil, domain.InvalidRequest("replacement value must be greater than zero")
	}
	if tool.Status == "" {
		tool.Status = domain.ToolStatusAvailable
	}

	exists, err := s.repos.Tools.ExistsByNameIgnoreCase(ctx, tool.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("tool name %q already exists", tool.Name)
	}

	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Tools.Create(ctx, tool); err != nil {
			return err
		}
		entry := &domain.KardexEntry{
			ToolID:       tool.ID,
			MovementType: domain.MovementTypeRegister,
			Quantity:     tool.Stock,
			Username:     auditUser(actingUser),
			Note:         fmt.Sprintf("tool registered with initial stock %d", tool.Stock),
		}
		return r.Kardex.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("tool registered", "tool_id", tool.ID, "name", tool.Name, "stock", tool.Stock)
	return tool, nil
}

func (s *toolService) Get(ctx context.Context, id int32) (*domain.Tool, error) {
	return s.repos.Tools.GetByID(ctx, id)
}

func (s *toolService) List(ctx context.Context) ([]domain.Tool, error) {
	return s.repos.Tools.List(ctx)
}

// Decommission retires a tool permanently. The remaining stock is written
// off in the same transaction to keep the kardex sum equal to the stock.
func (s *toolService) Decommission(ctx context.Context, id int32, actingUser string) (*domain.Tool, error) {
	var tool *domain.Tool
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		tool, err = r.Tools.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tool.Status == domain.ToolStatusDecommissioned {
			return domain.RuleViolation("tool already decommissioned")
		}
		hasActive, err := r.Loans.HasUnreturnedByTool(ctx, id)
		if err != nil {
			return err
		}
		if tool.Status == domain.ToolStatusLoaned || hasActive {
			return domain.RuleViolation("tool has active loans")
		}

		entry := &domain.KardexEntry{
			ToolID:       id,
			MovementType: domain.MovementTypeWriteOff,
			Quantity:     -tool.Stock,
			Username:     auditUser(actingUser),
			Note:         fmt.Sprintf("tool decommissioned, %d unit(s) written off", tool.Stock),
		}

		tool.Status = domain.ToolStatusDecommissioned
		tool.Stock = 0
		if err := r.Tools.Update(ctx, tool); err != nil {
			return err
		}
		return r.Kardex.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("tool decommissioned", "tool_id", id)
	return tool, nil
}
