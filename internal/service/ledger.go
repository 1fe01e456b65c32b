package service

import (
	"context"

	"github.com/bookclub/library-service/internal/model"
	"go.uber.org/zap"
)

func (s *Service) CreateLending(ctx context.Context, req model.CreateLendingRequest) (model.Lending, error) {
	return s.repo.CreateLending(ctx, req.BookUid, req.ReaderUid, s.now())
}

// GetLending reads a single record. The sweep runs first so the status
// reflects the clock, not the last write.
func (s *Service) GetLending(ctx context.Context, lendingUid string) (model.Lending, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.Lending{}, err
	}
	return s.repo.GetLending(ctx, lendingUid)
}

func (s *Service) ListLendings(ctx context.Context, filter model.LendingFilter) ([]model.Lending, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListLendings(ctx, filter)
}

func (s *Service) ListOverdue(ctx context.Context) ([]model.Lending, error) {
	return s.ListLendings(ctx, model.LendingFilter{Status: model.StatusOverdue})
}

func (s *Service) ReturnLending(ctx context.Context, lendingUid string) (model.Lending, error) {
	return s.repo.ReturnLending(ctx, lendingUid, s.now())
}

func (s *Service) DeleteLending(ctx context.Context, lendingUid string) error {
	return s.repo.DeleteLending(ctx, lendingUid)
}

// SweepOverdue promotes eligible borrowed records to overdue. Safe to call
// from the scheduler and from request paths at the same time.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.SweepOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("overdue sweep", zap.Int64("promoted", n))
	}
	return n, nil
}
