package audit

import (
	"context"
	"fmt"
	"strings"
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

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bed_audit_trail
		    (bed_id, old_status, new_status, updated_by, update_reason, patient_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		e.BedID, e.OldStatus, e.NewStatus, e.UpdatedBy, e.UpdateReason, e.PatientID,
	).Scan(&e.ID, &e.CreatedAt)
}

// where renders the filter into SQL. The room filter joins through beds, so
// entries for deleted beds only appear in unfiltered or bed_id queries.
func (f Filter) where() (string, string, []interface{}) {
	var (
		conds []string
		args  []interface{}
		join  string
	)

	if f.BedID != nil {
		args = append(args, *f.BedID)
		conds = append(conds, fmt.Sprintf("a.bed_id = $%d", len(args)))
	}
	if f.Room != "" {
		join = " JOIN beds b ON b.id = a.bed_id"
		args = append(args, f.Room)
		conds = append(conds, fmt.Sprintf("b.room_code = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, f.StartDate.UTC().Truncate(24*time.Hour))
		conds = append(conds, fmt.Sprintf("a.created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		// Inclusive by calendar day: strictly before the next midnight.
		args = append(args, f.EndDate.UTC().Truncate(24*time.Hour).AddDate(0, 0, 1))
		conds = append(conds, fmt.Sprintf("a.created_at < $%d", len(args)))
	}
	if f.UpdatedBy != "" {
		args = append(args, f.UpdatedBy)
		conds = append(conds, fmt.Sprintf("a.updated_by = $%d", len(args)))
	}
	switch f.ActionType {
	case ActionStatusChange:
		conds = append(conds, "a.old_status IS DISTINCT FROM a.new_status")
	case ActionPatientAssignment:
		conds = append(conds, "a.patient_id IS NOT NULL")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return join, where, args
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]Entry, int, error) {
	join, where, args := f.where()

	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM bed_audit_trail a`+join+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	countArgs := len(args)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(`
		SELECT a.id, a.bed_id, COALESCE(a.old_status, ''), a.new_status,
		       a.updated_by, a.update_reason, a.patient_id, a.created_at
		FROM bed_audit_trail a%s%s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, join, where, countArgs+1, countArgs+2),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.BedID, &e.OldStatus, &e.NewStatus,
			&e.UpdatedBy, &e.UpdateReason, &e.PatientID, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repoPG) TransitionCounts(ctx context.Context, f Filter) ([]TransitionCount, error) {
	join, where, args := f.where()
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT COALESCE(a.old_status, ''), a.new_status, COUNT(*)
		FROM bed_audit_trail a`+join+where+`
		GROUP BY a.old_status, a.new_status
		ORDER BY COUNT(*) DESC, a.old_status, a.new_status`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TransitionCount
	for rows.Next() {
		var t TransitionCount
		if err := rows.Scan(&t.OldStatus, &t.NewStatus, &t.Count); err != nil {
			return nil, err
		}
		counts = append(counts, t)
	}
	return counts, rows.Err()
}

func (r *repoPG) ActorCounts(ctx context.Context, f Filter) ([]ActorCount, error) {
	join, where, args := f.where()
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.updated_by, COUNT(*)
		FROM bed_audit_trail a`+join+where+`
		GROUP BY a.updated_by
		ORDER BY COUNT(*) DESC, a.updated_by`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []ActorCount
	for rows.Next() {
		var a ActorCount
		if err := rows.Scan(&a.Actor, &a.Count); err != nil {
			return nil, err
		}
		counts = append(counts, a)
	}
	return counts, rows.Err()
}
