package repository

import (
	"context"

	"github.com/bookclub/library-service/internal/model"
)

func (r *repository) InsertAudit(ctx context.Context, ev model.AuditEvent) error {
	q, args, err := qb.Insert(auditTableName).
		Columns("action", "actor", "entity", "entity_id", "details", "created_at").
		Values(ev.Action, ev.Actor, ev.Entity, ev.EntityID, ev.Details, ev.At).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *repository) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	q, args, err := qb.Select("id", "action", "actor", "entity", "entity_id", "details", "created_at").
		From(auditTableName).
		OrderBy("id desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	entries := make([]model.AuditEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, q, args...); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	const q = `select
    (select count(*) from books)                                  as total_books,
    (select coalesce(sum(available_copies), 0) from books)        as available_books,
    (select count(*) from readers)                                as total_readers,
    (select count(*) from lendings where status = 'overdue')      as overdue_books`

	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}
