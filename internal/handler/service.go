package handler

import (
	"context"

	"github.com/bookclub/library-service/internal/model"
	"github.com/bookclub/library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	ListBooks(ctx context.Context, search string) ([]model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

type MembershipService interface {
	CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error)
	ListReaders(ctx context.Context, search string) ([]model.Reader, error)
	GetReader(ctx context.Context, readerUid string) (model.Reader, error)
	UpdateReader(ctx context.Context, readerUid string, req model.UpdateReaderRequest) (model.Reader, error)
	DeleteReader(ctx context.Context, readerUid string) error
}

type LedgerService interface {
	CreateLending(ctx context.Context, req model.CreateLendingRequest) (model.Lending, error)
	GetLending(ctx context.Context, lendingUid string) (model.Lending, error)
	ListLendings(ctx context.Context, filter model.LendingFilter) ([]model.Lending, error)
	ListOverdue(ctx context.Context) ([]model.Lending, error)
	ReturnLending(ctx context.Context, lendingUid string) (model.Lending, error)
	DeleteLending(ctx context.Context, lendingUid string) error
	SweepOverdue(ctx context.Context) (int64, error)
}

type NotifyService interface {
	NotifyOverdue(ctx context.Context) (model.NotifyTally, error)
	NotifyOverdueOne(ctx context.Context, lendingUid string) (model.NotifyResult, error)
}

var (
	_ CatalogService    = (*service.Service)(nil)
	_ MembershipService = (*service.Service)(nil)
	_ LedgerService     = (*service.Service)(nil)
	_ NotifyService     = (*service.Service)(nil)
)
