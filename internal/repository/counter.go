package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// nextSeq mints the next value of a named counter in a single statement, so
// concurrent callers never observe the same value. Counters are scoped per
// entity and year, matching the display-code scheme.
func nextSeq(ctx context.Context, e sqlx.ExtContext, scope string) (int64, error) {
	const q = `insert into counters (scope, seq) values ($1, 1)
on conflict (scope) do update set seq = counters.seq + 1
returning seq`

	var seq int64
	if err := sqlx.GetContext(ctx, e, &seq, q, scope); err != nil {
		return 0, err
	}
	return seq, nil
}

func counterScope(entity string, now time.Time) string {
	return fmt.Sprintf("%s_%d", entity, now.Year())
}

func displayCode(prefix string, now time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, now.Year(), seq)
}
