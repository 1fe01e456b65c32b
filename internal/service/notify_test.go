package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookclub/library-service/internal/errs"
	"github.com/bookclub/library-service/internal/model"
	"github.com/bookclub/library-service/internal/repository"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifyRepo struct {
	repository.Repository
	notices []model.OverdueNotice
	swept   int
}

func (f *fakeNotifyRepo) SweepOverdue(_ context.Context, _ time.Time) (int64, error) {
	f.swept++
	return 0, nil
}

func (f *fakeNotifyRepo) ListOverdueNotices(_ context.Context) ([]model.OverdueNotice, error) {
	return f.notices, nil
}

func (f *fakeNotifyRepo) GetOverdueNotice(_ context.Context, lendingUid string) (model.OverdueNotice, error) {
	for _, n := range f.notices {
		if n.LendingUid == lendingUid {
			return n, nil
		}
	}
	return model.OverdueNotice{}, errors.Wrap(errs.ErrNotFound, "lending")
}

type fakeMailer struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeMailer) Send(to, _, _ string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newNotifyService(repo repository.Repository, m *fakeMailer, now time.Time) *Service {
	s := NewService(repo, m, true, zap.NewExample().Named("test"))
	s.now = func() time.Time { return now }
	return s
}

func TestService_NotifyOverdue_PartialFailure(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	due := now.Add(-48 * time.Hour)

	repo := &fakeNotifyRepo{
		notices: []model.OverdueNotice{
			{LendingUid: "ln-1", ReaderName: "Ann", ReaderEmail: "ann@example.com", BookTitle: "Dune", BookAuthor: "Frank Herbert", DueDate: due},
			{LendingUid: "ln-2", ReaderName: "Bob", ReaderEmail: "bob@example.com", BookTitle: "Neuromancer", BookAuthor: "William Gibson", DueDate: due},
			{LendingUid: "ln-3", ReaderName: "Cid", ReaderEmail: "cid@example.com", BookTitle: "Solaris", BookAuthor: "Stanislaw Lem", DueDate: due},
		},
	}
	m := &fakeMailer{failFor: map[string]error{"bob@example.com": errors.New("smtp: connection refused")}}

	tally, err := newNotifyService(repo, m, now).NotifyOverdue(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, tally.Sent)
	require.Equal(t, 1, tally.Failed)
	require.Len(t, tally.Results, 3)
	require.Equal(t, "success", tally.Results[0].Status)
	require.Equal(t, "failed", tally.Results[1].Status)
	require.Equal(t, "smtp: connection refused", tally.Results[1].Error)
	require.Equal(t, "success", tally.Results[2].Status)
	// the failure in the middle must not abort the rest
	require.Equal(t, []string{"ann@example.com", "cid@example.com"}, m.sent)
	require.Equal(t, 1, repo.swept)
}

func TestService_NotifyOverdue_Empty(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	_, err := newNotifyService(&fakeNotifyRepo{}, &fakeMailer{}, now).NotifyOverdue(context.Background())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_NotifyOverdueOne(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	pastDue := now.Add(-24 * time.Hour)
	futureDue := now.Add(24 * time.Hour)
	returned := now.Add(-time.Hour)

	repo := &fakeNotifyRepo{
		notices: []model.OverdueNotice{
			{LendingUid: "ln-overdue", ReaderName: "Ann", ReaderEmail: "ann@example.com", BookTitle: "Dune", DueDate: pastDue},
			{LendingUid: "ln-current", ReaderName: "Bob", ReaderEmail: "bob@example.com", BookTitle: "Solaris", DueDate: futureDue},
			{LendingUid: "ln-returned", ReaderName: "Cid", ReaderEmail: "cid@example.com", BookTitle: "Neuromancer", DueDate: pastDue, ReturnDate: &returned},
		},
	}

	var tests = []struct {
		name       string
		lendingUid string
		wantErr    error
	}{
		{name: "ok", lendingUid: "ln-overdue"},
		{name: "err. not overdue", lendingUid: "ln-current", wantErr: errs.ErrNotOverdue},
		{name: "err. already returned", lendingUid: "ln-returned", wantErr: errs.ErrAlreadyReturned},
		{name: "err. not found", lendingUid: "ln-missing", wantErr: errs.ErrNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := &fakeMailer{}
			result, err := newNotifyService(repo, m, now).NotifyOverdueOne(context.Background(), tt.lendingUid)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, m.sent)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "success", result.Status)
			require.Equal(t, []string{"ann@example.com"}, m.sent)
		})
	}
}
