package service

import (
	"context"

	"github.com/bookclub/library-service/internal/model"
)

func (s *Service) CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error) {
	return s.repo.CreateReader(ctx, req)
}

func (s *Service) ListReaders(ctx context.Context, search string) ([]model.Reader, error) {
	return s.repo.ListReaders(ctx, search)
}

func (s *Service) GetReader(ctx context.Context, readerUid string) (model.Reader, error) {
	return s.repo.GetReader(ctx, readerUid)
}

func (s *Service) UpdateReader(ctx context.Context, readerUid string, req model.UpdateReaderRequest) (model.Reader, error) {
	return s.repo.UpdateReader(ctx, readerUid, req)
}

func (s *Service) DeleteReader(ctx context.Context, readerUid string) error {
	return s.repo.DeleteReader(ctx, readerUid, s.strictReaderDelete)
}
