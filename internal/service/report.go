package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

// reportService is read-only aggregation over loans, clients and tools.
type reportService struct {
	repos repository.Repositories
}

func NewReportService(repos repository.Repositories) ReportService {
	return &reportService{repos: repos}
}

func (s *reportService) ActiveLoans(ctx context.Context, start, end *time.Time) ([]domain.Loan, error) {
	if (start == nil) != (end == nil) {
		return nil, domain.InvalidRequest("start and end dates must be provided together")
	}
	if start != nil && start.After(*end) {
		return nil, domain.InvalidRequest("start date must not be after end date")
	}
	return s.repos.Loans.ListUnreturned(ctx, start, end)
}

func (s *reportService) ClientsWithOverdues(ctx context.Context) ([]domain.Client, error) {
	return s.repos.Clients.ListWithOverdues(ctx)
}

func (s *reportService) MostLoanedTools(ctx context.Context, limit int32, start, end *time.Time) ([]domain.ToolRanking, error) {
	if limit <= 0 {
		limit = 10
	}
	if (start == nil) != (end == nil) {
		return nil, domain.InvalidRequest("start and end dates must be provided together")
	}
	if start != nil && start.After(*end) {
		return nil, domain.InvalidRequest("start date must not be after end date")
	}
	return s.repos.Tools.MostLoaned(ctx, limit, start, end)
}
