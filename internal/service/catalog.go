package service

import (
	"context"

	"github.com/bookclub/library-service/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) ListBooks(ctx context.Context, search string) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, search)
}

func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookUid)
}

func (s *Service) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, bookUid, req)
}

func (s *Service) DeleteBook(ctx context.Context, bookUid string) error {
	return s.repo.DeleteBook(ctx, bookUid)
}

func (s *Service) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}

func (s *Service) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	return s.repo.ListAudit(ctx, limit)
}
