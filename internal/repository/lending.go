package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookclub/library-service/internal/errs"
	"github.com/bookclub/library-service/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const lendingColumns = `l.id, l.lending_uid, l.code, b.book_uid, r.reader_uid, l.borrow_date, l.due_date, l.return_date, l.status`

const lendingFrom = lendingsTableName + ` l
join ` + booksTableName + ` b on b.id = l.book_id
join ` + readersTableName + ` r on r.id = l.reader_id`

func getLendingTx(ctx context.Context, q sqlx.QueryerContext, lendingUid string) (model.Lending, error) {
	var ln model.Lending
	err := sqlx.GetContext(ctx, q, &ln,
		`select `+lendingColumns+` from `+lendingFrom+` where l.lending_uid = $1`, lendingUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lending{}, errors.Wrap(errs.ErrNotFound, "lending")
		}
		return model.Lending{}, err
	}
	return ln, nil
}

// CreateLending issues a loan as one transaction: existence checks, the
// duplicate-active-loan guard, a conditional single-statement decrement of
// the book's available copies, then the insert. A failed decrement means the
// last copy went to a concurrent caller; nothing else has been written yet.
func (r *repository) CreateLending(ctx context.Context, bookUid, readerUid string, now time.Time) (model.Lending, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Lending{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var readerID int
	if err := tx.GetContext(ctx, &readerID, `select id from readers where reader_uid = $1`, readerUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lending{}, errors.Wrap(errs.ErrNotFound, "reader")
		}
		return model.Lending{}, err
	}

	var bookID int
	if err := tx.GetContext(ctx, &bookID, `select id from books where book_uid = $1`, bookUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lending{}, errors.Wrap(errs.ErrNotFound, "book")
		}
		return model.Lending{}, err
	}

	var active bool
	if err := tx.GetContext(ctx, &active,
		`select exists(select 1 from lendings where book_id = $1 and reader_id = $2 and status <> 'returned')`,
		bookID, readerID); err != nil {
		return model.Lending{}, err
	}
	if active {
		return model.Lending{}, errs.ErrDuplicateLoan
	}

	res, err := tx.ExecContext(ctx,
		`update books set available_copies = available_copies - 1 where id = $1 and available_copies > 0`, bookID)
	if err != nil {
		return model.Lending{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Lending{}, err
	} else if n == 0 {
		return model.Lending{}, errs.ErrNoCopies
	}

	seq, err := nextSeq(ctx, tx, counterScope("lending", now))
	if err != nil {
		return model.Lending{}, err
	}

	q, args, err := qb.Insert(lendingsTableName).
		Columns("lending_uid", "code", "book_id", "reader_id", "borrow_date", "due_date", "status").
		Values(uuid.New(), displayCode("LN", now, seq), bookID, readerID, now, now.Add(model.LoanPeriod), model.StatusBorrowed).
		Suffix("returning lending_uid").
		ToSql()
	if err != nil {
		return model.Lending{}, err
	}

	var lendingUid string
	if err := tx.GetContext(ctx, &lendingUid, q, args...); err != nil {
		r.log.Error("CreateLending", zap.String("q", q), zap.Any("args", args))
		return model.Lending{}, err
	}

	ln, err := getLendingTx(ctx, tx, lendingUid)
	if err != nil {
		return model.Lending{}, err
	}
	return ln, tx.Commit()
}

func (r *repository) GetLending(ctx context.Context, lendingUid string) (model.Lending, error) {
	return getLendingTx(ctx, r.db, lendingUid)
}

// ListLendings returns records ordered by due date, then id, so paging and
// retries see a stable order.
func (r *repository) ListLendings(ctx context.Context, filter model.LendingFilter) ([]model.Lending, error) {
	q := qb.Select(lendingColumns).
		From(lendingFrom).
		OrderBy("l.due_date", "l.id")

	if filter.Status != "" {
		q = q.Where(sq.Eq{"l.status": filter.Status})
	}
	if filter.BookUid != "" {
		q = q.Where(sq.Eq{"b.book_uid": filter.BookUid})
	}
	if filter.ReaderUid != "" {
		q = q.Where(sq.Eq{"r.reader_uid": filter.ReaderUid})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListLendings", zap.String("query", query), zap.Any("args", args))

	lendings := make([]model.Lending, 0)
	if err := r.db.SelectContext(ctx, &lendings, query, args...); err != nil {
		return nil, err
	}
	return lendings, nil
}

// ReturnLending closes a loan. The status guard sits inside the UPDATE
// predicate, so a concurrent return or a concurrent overdue sweep can never
// race it into a double-return or resurrect a returned record.
func (r *repository) ReturnLending(ctx context.Context, lendingUid string, now time.Time) (model.Lending, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Lending{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var bookID int
	err = tx.QueryRowContext(ctx,
		`update lendings set status = 'returned', return_date = $2
where lending_uid = $1 and status <> 'returned'
returning book_id`, lendingUid, now).Scan(&bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`select exists(select 1 from lendings where lending_uid = $1)`, lendingUid); err != nil {
				return model.Lending{}, err
			}
			if exists {
				return model.Lending{}, errs.ErrAlreadyReturned
			}
			return model.Lending{}, errors.Wrap(errs.ErrNotFound, "lending")
		}
		return model.Lending{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`update books set available_copies = available_copies + 1 where id = $1 and available_copies < total_copies`, bookID); err != nil {
		return model.Lending{}, err
	}

	ln, err := getLendingTx(ctx, tx, lendingUid)
	if err != nil {
		return model.Lending{}, err
	}
	return ln, tx.Commit()
}

// DeleteLending removes a record administratively. A copy still out comes
// back to the book first, so deletion never leaks availability.
func (r *repository) DeleteLending(ctx context.Context, lendingUid string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var rec struct {
		ID     int          `db:"id"`
		BookID int          `db:"book_id"`
		Status model.Status `db:"status"`
	}
	if err := tx.GetContext(ctx, &rec,
		`select id, book_id, status from lendings where lending_uid = $1 for update`, lendingUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(errs.ErrNotFound, "lending")
		}
		return err
	}

	if rec.Status != model.StatusReturned {
		if _, err := tx.ExecContext(ctx,
			`update books set available_copies = available_copies + 1 where id = $1 and available_copies < total_copies`, rec.BookID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `delete from lendings where id = $1`, rec.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// SweepOverdue promotes every eligible borrowed record to overdue in one
// idempotent statement. The return-date predicate keeps returned records
// untouchable regardless of interleaving with ReturnLending.
func (r *repository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`update lendings set status = 'overdue'
where status = 'borrowed' and due_date < $1 and return_date is null`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const noticeColumns = `l.lending_uid, r.name as reader_name, r.email as reader_email,
b.title as book_title, b.author as book_author, l.due_date, l.return_date`

func (r *repository) ListOverdueNotices(ctx context.Context) ([]model.OverdueNotice, error) {
	notices := make([]model.OverdueNotice, 0)
	err := r.db.SelectContext(ctx, &notices,
		`select `+noticeColumns+` from `+lendingFrom+`
where l.status = 'overdue'
order by l.due_date, l.id`)
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *repository) GetOverdueNotice(ctx context.Context, lendingUid string) (model.OverdueNotice, error) {
	var notice model.OverdueNotice
	err := r.db.GetContext(ctx, &notice,
		`select `+noticeColumns+` from `+lendingFrom+` where l.lending_uid = $1`, lendingUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.OverdueNotice{}, errors.Wrap(errs.ErrNotFound, "lending")
		}
		return model.OverdueNotice{}, err
	}
	return notice, nil
}
