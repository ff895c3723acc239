package incidents

import (
	"strings"
	"time"

	"hospital-portal/core/validation"
)

// Input is the body accepted by Add. Optional fields may be empty.
type Input struct {
	PatientID         string      `json:"patient_id"`
	PatientName       string      `json:"patient_name"`
	BirthDate         string      `json:"birth_date"`
	Gender            string      `json:"gender"`
	ReporterJob       string      `json:"reporter_job"`
	Department        string      `json:"department"`
	ExperienceYears   *int64      `json:"experience_years"`
	ReporterType      string      `json:"reporter_type"`
	IncidentDatetime  string      `json:"incident_datetime"`
	IncidentLocation  string      `json:"incident_location"`
	IncidentType      string      `json:"incident_type"`
	IncidentSituation string      `json:"incident_situation"`
	ResponseAction    string      `json:"response_action"`
	CauseFactor       string      `json:"cause_factor"`
	ImpactLevel       ImpactLevel `json:"impact_level"`
}

// HasContent reports whether a form holds enough input to be worth keeping as a draft.
func (in Input) HasContent() bool {
	return strings.TrimSpace(in.PatientName) != "" || strings.TrimSpace(in.IncidentSituation) != ""
}

var incidentTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseIncidentTime accepts RFC3339 or the zone-less datetime-local forms,
// the latter read as wall time in loc.
func ParseIncidentTime(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range incidentTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Validate checks required fields in a fixed order and stops at the first
// failure, then checks that the incident did not happen after now.
func Validate(in Input, now time.Time, loc *time.Location) error {
	if err := validation.RequireAll(
		validation.Field{Name: "patient_name", Value: in.PatientName},
		validation.Field{Name: "gender", Value: in.Gender},
		validation.Field{Name: "reporter_job", Value: in.ReporterJob},
		validation.Field{Name: "department", Value: in.Department},
		validation.Field{Name: "reporter_type", Value: in.ReporterType},
		validation.Field{Name: "incident_datetime", Value: in.IncidentDatetime},
		validation.Field{Name: "incident_location", Value: in.IncidentLocation},
		validation.Field{Name: "incident_type", Value: in.IncidentType},
		validation.Field{Name: "incident_situation", Value: in.IncidentSituation},
		validation.Field{Name: "response_action", Value: in.ResponseAction},
		validation.Field{Name: "cause_factor", Value: in.CauseFactor},
		validation.Field{Name: "impact_level", Value: string(in.ImpactLevel)},
	); err != nil {
		return err
	}
	at, ok := ParseIncidentTime(in.IncidentDatetime, loc)
	if !ok {
		return &validation.Error{Field: "incident_datetime", Rule: validation.RuleFormat}
	}
	if at.After(now) {
		return &validation.Error{Field: "incident_datetime", Rule: validation.RuleNotFuture}
	}
	if b := strings.TrimSpace(in.BirthDate); b != "" {
		if _, err := time.Parse("2006-01-02", b); err != nil {
			return &validation.Error{Field: "birth_date", Rule: validation.RuleFormat}
		}
	}
	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return &validation.Error{Field: "experience_years", Rule: validation.RuleNonNegative}
	}
	return nil
}
