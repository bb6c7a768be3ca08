package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed populates an empty database with a realistic pulmonary ward dataset:
// five department units, a staff roster, 15 rooms of 4 beds each, admitted
// patients linked to occupied beds, equipment, and a few open alerts. It is
// idempotent in the cheapest way possible: if any bed exists, it refuses to
// run.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM beds`).Scan(&existing); err != nil {
		return fmt.Errorf("check existing beds: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("database already seeded (%d beds present)", existing)
	}

	unitIDs, err := seedUnits(ctx, tx)
	if err != nil {
		return err
	}
	staffIDs, err := seedStaff(ctx, tx, unitIDs)
	if err != nil {
		return err
	}
	patientIDs, err := seedPatients(ctx, tx, unitIDs, staffIDs)
	if err != nil {
		return err
	}
	if err := seedBeds(ctx, tx, patientIDs); err != nil {
		return err
	}
	if err := seedEquipment(ctx, tx, unitIDs); err != nil {
		return err
	}
	if err := seedAlerts(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

func seedUnits(ctx context.Context, tx pgx.Tx) (map[string]int64, error) {
	units := []struct {
		name, code, specialty, phone, location string
		totalBeds                              int
	}{
		{"Pediatric Intensive Care", "PICU", "critical_care", "ext. 2101", "Wing A, Floor 2", 12},
		{"General Pulmonology", "GPULM", "pulmonology", "ext. 2201", "Wing B, Floor 2", 24},
		{"Bronchoscopy Suite", "BSUITE", "interventional", "ext. 2301", "Wing A, Floor 1", 4},
		{"Isolation Ward", "ISOL", "infectious_disease", "ext. 2401", "Wing C, Floor 3", 12},
		{"Step-Down Unit", "SDU", "intermediate_care", "ext. 2501", "Wing B, Floor 3", 8},
	}

	ids := make(map[string]int64, len(units))
	for _, u := range units {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO department_units (name, code, specialty, total_beds, unit_phone, unit_location)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			u.name, u.code, u.specialty, u.totalBeds, u.phone, u.location,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed unit %s: %w", u.code, err)
		}
		ids[u.code] = id
	}
	return ids, nil
}

func seedStaff(ctx context.Context, tx pgx.Tx, unitIDs map[string]int64) ([]int64, error) {
	staff := []struct {
		first, last, code, role, spec, unit, status string
		onCall, vent                                bool
	}{
		{"Elena", "Vasquez", "MD001", "chief", "pediatric_pulmonology", "PICU", "available", true, true},
		{"Marcus", "Chen", "MD002", "senior_consultant", "critical_care", "PICU", "busy", false, true},
		{"Priya", "Sharma", "MD003", "consultant", "pulmonology", "GPULM", "available", false, true},
		{"Tomas", "Lindqvist", "MD004", "consultant", "interventional_pulmonology", "BSUITE", "available", true, false},
		{"Aisha", "Okafor", "MD005", "consultant", "infectious_disease", "ISOL", "busy", false, false},
		{"David", "Park", "MD006", "resident", "pulmonology", "GPULM", "available", false, false},
		{"Sofia", "Rossi", "MD007", "resident", "critical_care", "SDU", "on_break", false, true},
		{"James", "Whitfield", "MD008", "senior_consultant", "sleep_medicine", "GPULM", "off_duty", false, false},
	}

	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO medical_staff
			    (first_name, last_name, staff_code, role, specialization,
			     primary_unit_id, current_status, is_on_call, vent_trained)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			s.first, s.last, s.code, s.role, s.spec,
			unitIDs[s.unit], s.status, s.onCall, s.vent,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed staff %s: %w", s.code, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedPatients(ctx context.Context, tx pgx.Tx, unitIDs map[string]int64, staffIDs []int64) ([]int64, error) {
	unitCycle := []string{"PICU", "GPULM", "ISOL", "SDU"}
	diagnoses := []string{
		"COVID-19 ARDS", "severe asthma exacerbation", "bacterial pneumonia",
		"COPD exacerbation", "pulmonary fibrosis",
	}
	acuity := []string{"critical", "guarded", "stable"}

	ids := make([]int64, 0, 15)
	for i := 1; i <= 15; i++ {
		code := fmt.Sprintf("PT2024%03d", i)
		unit := unitCycle[(i-1)%len(unitCycle)]
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO patient_flow
			    (patient_code, age_group, primary_diagnosis, acuity_level,
			     current_unit_id, attending_staff_id, current_status)
			VALUES ($1, $2, $3, $4, $5, $6, 'admitted')
			RETURNING id`,
			code,
			[]string{"pediatric", "adult", "geriatric"}[(i-1)%3],
			diagnoses[(i-1)%len(diagnoses)],
			acuity[(i-1)%len(acuity)],
			unitIDs[unit],
			staffIDs[(i-1)%len(staffIDs)],
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed patient %s: %w", code, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedBeds(ctx context.Context, tx pgx.Tx, patientIDs []int64) error {
	nextPatient := 0
	for room := 1; room <= 15; room++ {
		for bed := 1; bed <= 4; bed++ {
			roomCode := fmt.Sprintf("H%d", room)
			bedNumber := fmt.Sprintf("BH%d%d", room, bed)
			display := fmt.Sprintf("Bed %d - H%d", bed, room)

			// Roughly 40% occupancy, deterministic so test environments match.
			occupied := (room*4+bed)%5 < 2 && nextPatient < len(patientIDs)

			status := "empty"
			var patientID *int64
			needs := ""
			if occupied {
				status = "occupied"
				patientID = &patientIDs[nextPatient]
				nextPatient++
				needs = "oxygen,monitoring"
			}

			equipment := "monitor,o2"
			if room <= 5 && bed == 1 {
				equipment = "ventilator"
			}

			var bedID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO beds
				    (room_code, bed_number, display_name, status, patient_id,
				     clinical_needs, equipment, updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 'seed')
				RETURNING id`,
				roomCode, bedNumber, display, status, patientID, needs, equipment,
			).Scan(&bedID)
			if err != nil {
				return fmt.Errorf("seed bed %s: %w", bedNumber, err)
			}

			if occupied {
				_, err := tx.Exec(ctx, `
					INSERT INTO bed_audit_trail
					    (bed_id, old_status, new_status, updated_by, update_reason, patient_id)
					VALUES ($1, 'empty', 'occupied', 'seed', 'Initial patient admission', $2)`,
					bedID, *patientID,
				)
				if err != nil {
					return fmt.Errorf("seed audit for bed %s: %w", bedNumber, err)
				}
			}
		}
	}
	return nil
}

func seedEquipment(ctx context.Context, tx pgx.Tx, unitIDs map[string]int64) error {
	equipment := []struct {
		etype, model, serial, status, unit string
	}{
		{"ventilator", "Hamilton-C1", "HC1-2024-001", "in_use", "PICU"},
		{"ventilator", "Hamilton-C1", "HC1-2024-002", "available", "PICU"},
		{"bronchoscope", "Olympus BF-H190", "OLY-2023-014", "available", "BSUITE"},
		{"patient_monitor", "Philips IntelliVue MX450", "PHI-2024-031", "in_use", "GPULM"},
		{"high_flow_oxygen", "Airvo 2", "AIR-2024-007", "maintenance", "SDU"},
	}
	for _, e := range equipment {
		_, err := tx.Exec(ctx, `
			INSERT INTO medical_equipment (equipment_type, model, serial_number, status, unit_id)
			VALUES ($1, $2, $3, $4, $5)`,
			e.etype, e.model, e.serial, e.status, unitIDs[e.unit],
		)
		if err != nil {
			return fmt.Errorf("seed equipment %s: %w", e.serial, err)
		}
	}
	return nil
}

func seedAlerts(ctx context.Context, tx pgx.Tx) error {
	alerts := []struct {
		atype, severity, title, message string
	}{
		{"capacity", "high", "PICU approaching capacity",
			"PICU occupancy is trending above 85% over the last 6 hours."},
		{"equipment", "medium", "Ventilator maintenance due",
			"Hamilton-C1 HC1-2024-002 is due for scheduled maintenance this week."},
		{"staffing", "low", "Night shift coverage",
			"Resident coverage for the night shift is one below target."},
	}
	for _, a := range alerts {
		_, err := tx.Exec(ctx, `
			INSERT INTO predictive_alerts (alert_type, severity, title, message)
			VALUES ($1, $2, $3, $4)`,
			a.atype, a.severity, a.title, a.message,
		)
		if err != nil {
			return fmt.Errorf("seed alert %q: %w", a.title, err)
		}
	}
	return nil
}
