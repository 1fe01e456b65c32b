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

const bookColumns = `id, book_uid, code, title, author, isbn, publisher, publication_year, genre, description, cover_image, total_copies, available_copies`

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Book{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	seq, err := nextSeq(ctx, tx, counterScope("book", now))
	if err != nil {
		return model.Book{}, err
	}

	q, args, err := qb.Insert(booksTableName).
		Columns("book_uid", "code", "title", "author", "isbn", "publisher", "publication_year", "genre", "description", "cover_image", "total_copies", "available_copies").
		Values(uuid.New(), displayCode("BK", now, seq), req.Title, req.Author, req.ISBN, req.Publisher, req.PublicationYear, req.Genre, req.Description, req.CoverImage, req.TotalCopies, req.TotalCopies).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := tx.GetContext(ctx, &book, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "isbn")
		}
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, tx.Commit()
}

func (r *repository) ListBooks(ctx context.Context, search string) ([]model.Book, error) {
	q := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("id")

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"author": pattern},
			sq.ILike{"isbn": pattern},
		})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	query, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book")
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	upd := qb.Update(booksTableName).Where(sq.Eq{"book_uid": bookUid})

	changed := false
	set := func(col string, v interface{}) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Author != nil {
		set("author", *req.Author)
	}
	if req.ISBN != nil {
		set("isbn", *req.ISBN)
	}
	if req.Publisher != nil {
		set("publisher", *req.Publisher)
	}
	if req.PublicationYear != nil {
		set("publication_year", *req.PublicationYear)
	}
	if req.Genre != nil {
		set("genre", *req.Genre)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.CoverImage != nil {
		set("cover_image", *req.CoverImage)
	}
	if req.TotalCopies != nil {
		// Copies on loan (total - available) stay out; the new total must
		// cover them, and available moves by the same delta as total.
		set("total_copies", *req.TotalCopies)
		upd = upd.Set("available_copies", sq.Expr("available_copies + (? - total_copies)", *req.TotalCopies)).
			Where(sq.Expr("total_copies - available_copies <= ?", *req.TotalCopies))
	}
	if !changed {
		return r.GetBook(ctx, bookUid)
	}

	query, args, err := upd.Suffix("returning " + bookColumns).ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "isbn")
		}
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetBook(ctx, bookUid); getErr != nil {
				return model.Book{}, getErr
			}
			return model.Book{}, errors.Wrap(errs.ErrCopiesOnLoan, "total copies below copies on loan")
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, bookUid string) error {
	// Deletable only with every copy back on the shelf.
	const q = `delete from books where book_uid = $1 and available_copies = total_copies`

	res, err := r.db.ExecContext(ctx, q, bookUid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetBook(ctx, bookUid); err != nil {
			return err
		}
		return errs.ErrCopiesOnLoan
	}
	return nil
}
