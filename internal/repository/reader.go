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
	"go.uber.org/zap"
)

const readerColumns = `id, reader_uid, code, name, email, phone, address, membership_date`

func (r *repository) CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Reader{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	seq, err := nextSeq(ctx, tx, counterScope("reader", now))
	if err != nil {
		return model.Reader{}, err
	}

	q, args, err := qb.Insert(readersTableName).
		Columns("reader_uid", "code", "name", "email", "phone", "address", "membership_date").
		Values(uuid.New(), displayCode("RD", now, seq), req.Name, req.Email, req.Phone, req.Address, now).
		Suffix("returning " + readerColumns).
		ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := tx.GetContext(ctx, &reader, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Reader{}, errors.Wrap(errs.ErrConflict, "email")
		}
		r.log.Error("CreateReader", zap.String("q", q), zap.Any("args", args))
		return model.Reader{}, err
	}
	return reader, tx.Commit()
}

func (r *repository) ListReaders(ctx context.Context, search string) ([]model.Reader, error) {
	q := qb.Select(readerColumns).
		From(readersTableName).
		OrderBy("id")

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	readers := make([]model.Reader, 0)
	if err := r.db.SelectContext(ctx, &readers, query, args...); err != nil {
		return nil, err
	}
	return readers, nil
}

func (r *repository) GetReader(ctx context.Context, readerUid string) (model.Reader, error) {
	query, args, err := qb.Select(readerColumns).
		From(readersTableName).
		Where(sq.Eq{"reader_uid": readerUid}).
		ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := r.db.GetContext(ctx, &reader, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reader{}, errors.Wrap(errs.ErrNotFound, "reader")
		}
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) UpdateReader(ctx context.Context, readerUid string, req model.UpdateReaderRequest) (model.Reader, error) {
	upd := qb.Update(readersTableName).Where(sq.Eq{"reader_uid": readerUid})

	changed := false
	set := func(col string, v interface{}) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Phone != nil {
		set("phone", *req.Phone)
	}
	if req.Address != nil {
		set("address", *req.Address)
	}
	if !changed {
		return r.GetReader(ctx, readerUid)
	}

	query, args, err := upd.Suffix("returning " + readerColumns).ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := r.db.GetContext(ctx, &reader, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Reader{}, errors.Wrap(errs.ErrConflict, "email")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reader{}, errors.Wrap(errs.ErrNotFound, "reader")
		}
		return model.Reader{}, err
	}
	return reader, nil
}

// DeleteReader removes a reader. In strict mode the delete is rejected while
// the reader has active loans. Otherwise the cascade is explicit: copies
// still out come back to their books, then the lending history goes with
// the reader.
func (r *repository) DeleteReader(ctx context.Context, readerUid string, strict bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var readerID int
	if err := tx.GetContext(ctx, &readerID, `select id from readers where reader_uid = $1 for update`, readerUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(errs.ErrNotFound, "reader")
		}
		return err
	}

	var open int
	if err := tx.GetContext(ctx, &open,
		`select count(*) from lendings where reader_id = $1 and status <> 'returned'`, readerID); err != nil {
		return err
	}
	if open > 0 {
		if strict {
			return errs.ErrHasOpenLoans
		}
		const restore = `
update books b
set available_copies = least(b.available_copies + sub.cnt, b.total_copies)
from (select book_id, count(*) as cnt
      from lendings
      where reader_id = $1 and status <> 'returned'
      group by book_id) sub
where b.id = sub.book_id`
		if _, err := tx.ExecContext(ctx, restore, readerID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `delete from lendings where reader_id = $1`, readerID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `delete from readers where id = $1`, readerID); err != nil {
		return err
	}
	return tx.Commit()
}
