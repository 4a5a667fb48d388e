package reports

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) TrialBalance(ctx context.Context, asOf time.Time) (TrialBalance, error) {
	activity, err := s.repo.Activity(ctx, nil, asOf)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(asOf, activity), nil
}

func (s *Service) IncomeStatement(ctx context.Context, start, end time.Time) (IncomeStatement, error) {
	activity, err := s.repo.Activity(ctx, &start, end)
	if err != nil {
		return IncomeStatement{}, err
	}
	return BuildIncomeStatement(start, end, activity), nil
}

func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	activity, err := s.repo.Activity(ctx, nil, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BuildBalanceSheet(asOf, activity), nil
}
