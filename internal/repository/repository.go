package repository

import (
	"context"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/bookclub/library-service/internal/model"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Books interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	ListBooks(ctx context.Context, search string) ([]model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
}

type Readers interface {
	CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error)
	ListReaders(ctx context.Context, search string) ([]model.Reader, error)
	GetReader(ctx context.Context, readerUid string) (model.Reader, error)
	UpdateReader(ctx context.Context, readerUid string, req model.UpdateReaderRequest) (model.Reader, error)
	DeleteReader(ctx context.Context, readerUid string, strict bool) error
}

type Lendings interface {
	CreateLending(ctx context.Context, bookUid, readerUid string, now time.Time) (model.Lending, error)
	GetLending(ctx context.Context, lendingUid string) (model.Lending, error)
	ListLendings(ctx context.Context, filter model.LendingFilter) ([]model.Lending, error)
	ReturnLending(ctx context.Context, lendingUid string, now time.Time) (model.Lending, error)
	DeleteLending(ctx context.Context, lendingUid string) error
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
	ListOverdueNotices(ctx context.Context) ([]model.OverdueNotice, error)
	GetOverdueNotice(ctx context.Context, lendingUid string) (model.OverdueNotice, error)
}

type Audit interface {
	InsertAudit(ctx context.Context, ev model.AuditEvent) error
	ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error)
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
}

type Repository interface {
	Books
	Readers
	Lendings
	Audit
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName    = `books`
	readersTableName  = `readers`
	lendingsTableName = `lendings`
	auditTableName    = `audit_log`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
