package beds

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const bedCols = `b.id, b.room_code, b.bed_number, b.display_name, b.status, b.patient_id,
	b.clinical_needs, b.equipment, b.notes, b.last_updated, b.updated_by`

func scanBed(row pgx.Row) (*Bed, error) {
	var (
		b                Bed
		display          *string
		needs, equipment string
	)
	err := row.Scan(&b.ID, &b.RoomCode, &b.BedNumber, &display, &b.Status, &b.PatientID,
		&needs, &equipment, &b.Notes, &b.LastUpdated, &b.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if display != nil {
		b.DisplayName = *display
	}
	b.ClinicalNeeds = SplitTags(needs)
	b.Equipment = SplitTags(equipment)
	return &b, nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds b WHERE b.id = $1`, id))
}

const detailCols = bedCols + `, p.patient_code, p.primary_diagnosis`

const detailFrom = ` FROM beds b LEFT JOIN patient_flow p ON p.id = b.patient_id`

func scanDetail(row pgx.Row) (*BedDetail, error) {
	var (
		d                Bed
		display          *string
		needs, equipment string
		patientCode      *string
		diagnosis        *string
	)
	err := row.Scan(&d.ID, &d.RoomCode, &d.BedNumber, &display, &d.Status, &d.PatientID,
		&needs, &equipment, &d.Notes, &d.LastUpdated, &d.UpdatedBy,
		&patientCode, &diagnosis)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if display != nil {
		d.DisplayName = *display
	}
	d.ClinicalNeeds = SplitTags(needs)
	d.Equipment = SplitTags(equipment)

	detail := &BedDetail{Bed: d}
	if patientCode != nil {
		summary := &PatientSummary{PatientCode: *patientCode}
		if diagnosis != nil {
			summary.PrimaryDiagnosis = *diagnosis
		}
		detail.Patient = summary
	}
	return detail, nil
}

func (r *repoPG) GetDetail(ctx context.Context, id int64) (*BedDetail, error) {
	return scanDetail(r.conn(ctx).QueryRow(ctx,
		`SELECT `+detailCols+detailFrom+` WHERE b.id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, f ListFilter) ([]BedDetail, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if f.Room != "" {
		args = append(args, f.Room)
		conds = append(conds, fmt.Sprintf("b.room_code = $%d", len(args)))
	}
	if f.Equipment != "" {
		args = append(args, "%"+f.Equipment+"%")
		conds = append(conds, fmt.Sprintf("b.equipment LIKE $%d", len(args)))
	}

	q := `SELECT ` + detailCols + detailFrom
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY b.room_code, b.bed_number"

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []BedDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

func (r *repoPG) ListByIDs(ctx context.Context, ids []int64) ([]Bed, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bedCols+` FROM beds b WHERE b.id = ANY($1) ORDER BY b.id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, bed *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE beds SET
			status=$2, patient_id=$3, clinical_needs=$4, equipment=$5,
			notes=$6, last_updated=$7, updated_by=$8
		WHERE id = $1`,
		bed.ID, bed.Status, bed.PatientID, JoinTags(bed.ClinicalNeeds),
		JoinTags(bed.Equipment), bed.Notes, bed.LastUpdated, bed.UpdatedBy,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM beds WHERE id = $1`, id)
	return err
}
