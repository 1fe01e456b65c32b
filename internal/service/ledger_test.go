package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookclub/library-service/internal/model"
	"github.com/bookclub/library-service/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedgerRepo struct {
	repository.Repository
	calls []string
	now   time.Time
}

func (f *fakeLedgerRepo) SweepOverdue(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, "sweep")
	f.now = now
	return 1, nil
}

func (f *fakeLedgerRepo) ListLendings(_ context.Context, _ model.LendingFilter) ([]model.Lending, error) {
	f.calls = append(f.calls, "list")
	return []model.Lending{}, nil
}

func (f *fakeLedgerRepo) GetLending(_ context.Context, _ string) (model.Lending, error) {
	f.calls = append(f.calls, "get")
	return model.Lending{}, nil
}

func newLedgerService(repo repository.Repository, now time.Time) *Service {
	s := NewService(repo, &fakeMailer{}, true, zap.NewExample().Named("test"))
	s.now = func() time.Time { return now }
	return s
}

func TestService_ListLendings_SweepsFirst(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeLedgerRepo{}

	_, err := newLedgerService(repo, now).ListLendings(context.Background(), model.LendingFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"sweep", "list"}, repo.calls)
	require.Equal(t, now, repo.now)
}

func TestService_GetLending_SweepsFirst(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeLedgerRepo{}

	_, err := newLedgerService(repo, now).GetLending(context.Background(), "ln-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sweep", "get"}, repo.calls)
}

func TestService_ListOverdue_FiltersByStatus(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	repo := &overdueFilterRepo{}
	_, err := newLedgerService(repo, now).ListOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.StatusOverdue, repo.filter.Status)
}

type overdueFilterRepo struct {
	repository.Repository
	filter model.LendingFilter
}

func (f *overdueFilterRepo) SweepOverdue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *overdueFilterRepo) ListLendings(_ context.Context, filter model.LendingFilter) ([]model.Lending, error) {
	f.filter = filter
	return []model.Lending{}, nil
}
