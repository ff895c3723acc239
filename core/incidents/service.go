// Package incidents implements the patient-safety incident log: validation,
// read-side queries, and the client-side narrowing and statistics.
package incidents

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-portal/core/metrics"
	"hospital-portal/core/store"
	"hospital-portal/core/validation"
)

const entity = "incident_report"

type Service struct {
	store   store.IncidentReportsStore
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

func NewService(st store.IncidentReportsStore, m *metrics.Metrics, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: st, metrics: m, loc: loc, now: time.Now}
}

// WithClock swaps the time source used by the not-in-the-future rule.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) List(ctx context.Context) ([]store.IncidentReport, error) {
	start := time.Now()
	items, err := s.store.ListIncidentReports(ctx, store.IncidentReportFilter{})
	s.observe("list", err, start)
	return items, err
}

func (s *Service) Get(ctx context.Context, id int64) (*store.IncidentReport, error) {
	start := time.Now()
	report, err := s.store.GetIncidentReport(ctx, id)
	s.observe("get", err, start)
	return report, err
}

// Search matches keyword as a substring of patient_name, department or
// incident_location. A blank keyword returns everything.
func (s *Service) Search(ctx context.Context, keyword string) ([]store.IncidentReport, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	start := time.Now()
	items, err := s.store.ListIncidentReports(ctx, store.IncidentReportFilter{Search: keyword})
	s.observe("search", err, start)
	return items, err
}

func (s *Service) Add(ctx context.Context, in Input) (*store.IncidentReport, error) {
	if err := Validate(in, s.now(), s.loc); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			s.metrics.ValidationFailed(entity, verr.Field, verr.Rule)
		}
		return nil, err
	}
	start := time.Now()
	report, err := s.store.CreateIncidentReport(ctx, s.toRecord(in))
	s.observe("create", err, start)
	return report, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.store.DeleteIncidentReport(ctx, id)
	s.observe("delete", err, start)
	return err
}

// toRecord expects validated input. The incident time is stored as wall
// time in the service zone so it reads back the same on every driver.
func (s *Service) toRecord(in Input) *store.IncidentReport {
	at, _ := ParseIncidentTime(in.IncidentDatetime, s.loc)
	incidentType := in.IncidentType
	r := &store.IncidentReport{
		PatientName:       in.PatientName,
		Gender:            in.Gender,
		ReporterJob:       in.ReporterJob,
		Department:        in.Department,
		ExperienceYears:   in.ExperienceYears,
		ReporterType:      in.ReporterType,
		IncidentDatetime:  at.In(s.loc).Format("2006-01-02T15:04:05"),
		IncidentLocation:  in.IncidentLocation,
		IncidentType:      &incidentType,
		IncidentSituation: in.IncidentSituation,
		ResponseAction:    in.ResponseAction,
		CauseFactor:       in.CauseFactor,
		ImpactLevel:       strings.TrimSpace(string(in.ImpactLevel)),
	}
	if v := strings.TrimSpace(in.PatientID); v != "" {
		r.PatientID = &v
	}
	if v := strings.TrimSpace(in.BirthDate); v != "" {
		r.BirthDate = &v
	}
	return r
}

func (s *Service) observe(op string, err error, start time.Time) {
	s.metrics.ObserveStore(entity, op, err, errors.Is(err, store.ErrNotFound), time.Since(start))
}
