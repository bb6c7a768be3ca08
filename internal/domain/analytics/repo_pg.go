package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pneumotrack/pneumotrack/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) ListBedFacts(ctx context.Context, room string) ([]BedFact, error) {
	q := `SELECT room_code, status, equipment, clinical_needs FROM beds`
	var args []interface{}
	if room != "" {
		q += ` WHERE room_code = $1`
		args = append(args, room)
	}
	q += ` ORDER BY room_code, bed_number`

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []BedFact
	for rows.Next() {
		var f BedFact
		if err := rows.Scan(&f.RoomCode, &f.Status, &f.Equipment, &f.ClinicalNeeds); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func (r *repoPG) ActivitySince(ctx context.Context, since time.Time) (int, int, int, error) {
	var entries, beds, actors int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT bed_id), COUNT(DISTINCT updated_by)
		FROM bed_audit_trail
		WHERE created_at >= $1`, since,
	).Scan(&entries, &beds, &actors)
	return entries, beds, actors, err
}

func (r *repoPG) StaffTotals(ctx context.Context) (StaffTotals, error) {
	var t StaffTotals
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE is_active AND is_on_call),
		       COUNT(*) FILTER (WHERE is_active AND current_status = 'available')
		FROM medical_staff`,
	).Scan(&t.Total, &t.Active, &t.OnCall, &t.Available)
	return t, err
}

func (r *repoPG) OnCallStaffCount(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_staff WHERE is_active AND is_on_call`,
	).Scan(&n)
	return n, err
}
