package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hospital-portal/core/utils"
)

type IncidentReport struct {
	ID                int64     `json:"id"`
	PatientID         *string   `json:"patient_id"`
	PatientName       string    `json:"patient_name"`
	BirthDate         *string   `json:"birth_date"`
	Gender            string    `json:"gender"`
	ReporterJob       string    `json:"reporter_job"`
	Department        string    `json:"department"`
	ExperienceYears   *int64    `json:"experience_years"`
	ReporterType      string    `json:"reporter_type"`
	IncidentDatetime  string    `json:"incident_datetime"`
	IncidentLocation  string    `json:"incident_location"`
	IncidentType      *string   `json:"incident_type"`
	IncidentSituation string    `json:"incident_situation"`
	ResponseAction    string    `json:"response_action"`
	CauseFactor       string    `json:"cause_factor"`
	ImpactLevel       string    `json:"impact_level"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type IncidentReportFilter struct {
	Search string
}

// IncidentReportsStore is append-then-delete: reports are never edited.
type IncidentReportsStore interface {
	CreateIncidentReport(ctx context.Context, report *IncidentReport) (*IncidentReport, error)
	DeleteIncidentReport(ctx context.Context, id int64) error
	GetIncidentReport(ctx context.Context, id int64) (*IncidentReport, error)
	ListIncidentReports(ctx context.Context, filter IncidentReportFilter) ([]IncidentReport, error)
}

type incidentReportsStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewIncidentReportsStore(db *sql.DB) IncidentReportsStore {
	return &incidentReportsStore{db: db, dialect: DialectOf(db)}
}

const incidentReportColumns = `id, patient_id, patient_name, birth_date, gender, reporter_job, department, experience_years, reporter_type, incident_datetime, incident_location, incident_type, incident_situation, response_action, cause_factor, impact_level, created_at, updated_at`

const (
	incidentDatetimeLayout = "2006-01-02T15:04:05"
	birthDateLayout        = "2006-01-02"
)

func (s *incidentReportsStore) CreateIncidentReport(ctx context.Context, r *IncidentReport) (*IncidentReport, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	now := utils.NowUTC().Truncate(time.Millisecond)
	var id int64
	if err := tx.QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO incident_reports(patient_id, patient_name, birth_date, gender, reporter_job, department, experience_years, reporter_type, incident_datetime, incident_location, incident_type, incident_situation, response_action, cause_factor, impact_level, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?) RETURNING id`),
		nullableText(r.PatientID), r.PatientName, nullableText(r.BirthDate), r.Gender, r.ReporterJob, r.Department,
		nullableInt(r.ExperienceYears), r.ReporterType, r.IncidentDatetime, r.IncidentLocation, nullableText(r.IncidentType),
		r.IncidentSituation, r.ResponseAction, r.CauseFactor, r.ImpactLevel, s.dialect.timeArg(now), s.dialect.timeArg(now)).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert incident report: %w", err)
	}
	created, err := s.getIncidentReport(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *incidentReportsStore) DeleteIncidentReport(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM incident_reports WHERE id=?`), id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *incidentReportsStore) GetIncidentReport(ctx context.Context, id int64) (*IncidentReport, error) {
	return s.getIncidentReport(ctx, s.db, id)
}

func (s *incidentReportsStore) getIncidentReport(ctx context.Context, q querier, id int64) (*IncidentReport, error) {
	row := q.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+incidentReportColumns+` FROM incident_reports WHERE id=?`), id)
	report, err := scanIncidentReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return report, err
}

func (s *incidentReportsStore) ListIncidentReports(ctx context.Context, filter IncidentReportFilter) ([]IncidentReport, error) {
	query := `SELECT ` + incidentReportColumns + ` FROM incident_reports`
	var args []any
	if filter.Search != "" {
		query += ` WHERE (patient_name LIKE ? ESCAPE '\' OR department LIKE ? ESCAPE '\' OR incident_location LIKE ? ESCAPE '\')`
		q := likePattern(filter.Search)
		args = append(args, q, q, q)
	}
	query += " ORDER BY created_at DESC, id DESC"
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []IncidentReport{}
	for rows.Next() {
		report, err := scanIncidentReport(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *report)
	}
	return res, rows.Err()
}

func scanIncidentReport(row rowScanner) (*IncidentReport, error) {
	var r IncidentReport
	var patientID, incidentType dbText
	birthDate := dbText{layout: birthDateLayout}
	incidentAt := dbText{layout: incidentDatetimeLayout}
	impact := dbText{}
	var experience sql.NullInt64
	var created, updated dbTime
	if err := row.Scan(&r.ID, &patientID, &r.PatientName, &birthDate, &r.Gender, &r.ReporterJob, &r.Department,
		&experience, &r.ReporterType, &incidentAt, &r.IncidentLocation, &incidentType, &r.IncidentSituation,
		&r.ResponseAction, &r.CauseFactor, &impact, &created, &updated); err != nil {
		return nil, err
	}
	r.PatientID = patientID.ptr()
	r.BirthDate = birthDate.ptr()
	r.IncidentType = incidentType.ptr()
	r.IncidentDatetime = incidentAt.Value
	r.ImpactLevel = impact.Value
	if experience.Valid {
		v := experience.Int64
		r.ExperienceYears = &v
	}
	r.CreatedAt = created.Time
	r.UpdatedAt = updated.Time
	return &r, nil
}
