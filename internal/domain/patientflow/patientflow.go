// Package patientflow exposes the admitted patient census, read-only. Patient
// identity lives in the upstream ADT system; this table carries only codes and
// flow state.
package patientflow

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/pneumotrack/pneumotrack/internal/platform/db"
	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

type Patient struct {
	ID               int64     `json:"id"`
	PatientCode      string    `json:"patient_code"`
	AgeGroup         *string   `json:"age_group"`
	PrimaryDiagnosis *string   `json:"primary_diagnosis"`
	AcuityLevel      string    `json:"acuity_level"`
	CurrentUnitID    *int64    `json:"current_unit_id"`
	AttendingStaffID *int64    `json:"attending_staff_id"`
	AdmissionAt      time.Time `json:"admission_at"`
	CurrentStatus    string    `json:"current_status"`
	// BedID is the bed currently assigned to the patient, when any.
	BedID *int64 `json:"bed_id"`
}

type Repository interface {
	ListAdmitted(ctx context.Context) ([]Patient, error)
	GetByCode(ctx context.Context, code string) (*Patient, error)
}

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

const patientCols = `p.id, p.patient_code, p.age_group, p.primary_diagnosis, p.acuity_level,
	p.current_unit_id, p.attending_staff_id, p.admission_at, p.current_status, b.id`

const patientFrom = ` FROM patient_flow p LEFT JOIN beds b ON b.patient_id = p.id`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientCode, &p.AgeGroup, &p.PrimaryDiagnosis,
		&p.AcuityLevel, &p.CurrentUnitID, &p.AttendingStaffID, &p.AdmissionAt,
		&p.CurrentStatus, &p.BedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) ListAdmitted(ctx context.Context) ([]Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+patientFrom+`
		WHERE p.current_status = 'admitted'
		ORDER BY p.admission_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+patientFrom+` WHERE p.patient_code = $1`, code))
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:code", h.GetPatient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	patients, err := h.repo.ListAdmitted(c.Request().Context())
	if err != nil {
		return httperr.Store("patientflow.list", err)
	}
	if patients == nil {
		patients = []Patient{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    patients,
		"total":   len(patients),
	})
}

func (h *Handler) GetPatient(c echo.Context) error {
	code := c.Param("code")
	patient, err := h.repo.GetByCode(c.Request().Context(), code)
	if err != nil {
		return httperr.Store("patientflow.get", err)
	}
	if patient == nil {
		return &httperr.NotFoundError{Resource: "patient " + code}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    patient,
	})
}
