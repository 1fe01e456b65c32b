package service

import (
	"context"
	"fmt"

	"github.com/bookclub/library-service/internal/errs"
	"github.com/bookclub/library-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	notifySuccess = "success"
	notifyFailed  = "failed"
)

// NotifyOverdue e-mails every reader with an overdue lending. Each record
// gets its own attempt; one failed send never aborts the rest.
func (s *Service) NotifyOverdue(ctx context.Context) (model.NotifyTally, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.NotifyTally{}, err
	}
	notices, err := s.repo.ListOverdueNotices(ctx)
	if err != nil {
		return model.NotifyTally{}, err
	}
	if len(notices) == 0 {
		return model.NotifyTally{}, errors.Wrap(errs.ErrNotFound, "no overdue books")
	}

	tally := model.NotifyTally{Results: make([]model.NotifyResult, 0, len(notices))}
	for _, n := range notices {
		result := model.NotifyResult{
			LendingUid: n.LendingUid,
			Reader:     n.ReaderEmail,
			Status:     notifySuccess,
		}
		if err := s.mailer.Send(n.ReaderEmail, overdueSubject(n), overdueBody(n)); err != nil {
			s.log.Error("overdue notification", zap.String("lendingUid", n.LendingUid), zap.Error(err))
			result.Status = notifyFailed
			result.Error = err.Error()
			tally.Failed++
		} else {
			tally.Sent++
		}
		tally.Results = append(tally.Results, result)
	}
	tally.Message = fmt.Sprintf("Sent %d overdue notifications, %d failed", tally.Sent, tally.Failed)
	s.log.Info("overdue notifications", zap.Int("sent", tally.Sent), zap.Int("failed", tally.Failed))
	return tally, nil
}

// NotifyOverdueOne e-mails the reader of a single overdue lending.
func (s *Service) NotifyOverdueOne(ctx context.Context, lendingUid string) (model.NotifyResult, error) {
	notice, err := s.repo.GetOverdueNotice(ctx, lendingUid)
	if err != nil {
		return model.NotifyResult{}, err
	}
	if notice.ReturnDate != nil {
		return model.NotifyResult{}, errs.ErrAlreadyReturned
	}
	if !notice.DueDate.Before(s.now()) {
		return model.NotifyResult{}, errs.ErrNotOverdue
	}

	if err := s.mailer.Send(notice.ReaderEmail, overdueSubject(notice), overdueBody(notice)); err != nil {
		s.log.Error("overdue notification", zap.String("lendingUid", lendingUid), zap.Error(err))
		return model.NotifyResult{}, err
	}
	return model.NotifyResult{
		LendingUid: notice.LendingUid,
		Reader:     notice.ReaderEmail,
		Status:     notifySuccess,
	}, nil
}

func overdueSubject(n model.OverdueNotice) string {
	return "Overdue Book: " + n.BookTitle
}

func overdueBody(n model.OverdueNotice) string {
	return fmt.Sprintf(`<h1>Book Club Library - Overdue Book</h1>
<p>Dear %s,</p>
<p>The following book is overdue:</p>
<ul>
  <li><strong>Title:</strong> %s</li>
  <li><strong>Author:</strong> %s</li>
  <li><strong>Due Date:</strong> %s</li>
</ul>
<p>Please return the book as soon as possible to avoid any penalties.</p>
<p>Thank you,</p>
<p>Book Club Library Team</p>`,
		n.ReaderName, n.BookTitle, n.BookAuthor, n.DueDate.Format("January 2, 2006"))
}
