package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const rateWindowsTable = "rate_windows"

// RateWindowRepo persists per-client request timestamps (milliseconds since
// epoch) so a sliding-window limiter survives restarts.
type RateWindowRepo struct {
	db *sql.DB
}

// Window returns the stored timestamps for clientID in ascending order.
func (r *RateWindowRepo) Window(ctx context.Context, clientID string) ([]int64, error) {
	query, args := builder().Select("ts_ms").
		From(entsql.Table(rateWindowsTable)).
		Where(entsql.EQ("client_id", clientID)).
		OrderBy("ts_ms").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rate window: %w", err)
	}
	defer rows.Close()

	var window []int64
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan rate window: %w", err)
		}
		window = append(window, ts)
	}
	return window, rows.Err()
}

// SetWindow replaces the stored timestamps for clientID. An empty window
// removes the client entirely.
func (r *RateWindowRepo) SetWindow(ctx context.Context, clientID string, window []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(rateWindowsTable).
		Where(entsql.EQ("client_id", clientID)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear rate window: %w", err)
	}

	if len(window) > 0 {
		ins := builder().Insert(rateWindowsTable).Columns("client_id", "ts_ms")
		for _, ts := range window {
			ins.Values(clientID, ts)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("store rate window: %w", err)
		}
	}

	return tx.Commit()
}

// Expire deletes every timestamp at or before cutoff. Clients left with
// no timestamps disappear with them. Returns the number of rows removed.
func (r *RateWindowRepo) Expire(ctx context.Context, cutoff int64) (int, error) {
	query, args := builder().Delete(rateWindowsTable).
		Where(entsql.LTE("ts_ms", cutoff)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expire rate windows: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// Clients returns the number of distinct clients with stored timestamps.
func (r *RateWindowRepo) Clients(ctx context.Context) (int, error) {
	query, args := builder().Select("client_id").
		Distinct().
		From(entsql.Table(rateWindowsTable)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}
