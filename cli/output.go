package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"hospital-portal/core/incidents"
	"hospital-portal/core/store"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printFAQs(items []store.FAQ) error {
	if a.jsonOutput {
		return a.printJSON(items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(a.out, "No FAQs found.")
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tQUESTION\tUPDATED")
	for _, f := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.ID, f.Category, truncate(f.Question, 40), f.UpdatedAt.Local().Format(timeLayout))
	}
	return w.Flush()
}

func (a *app) printFAQ(f *store.FAQ) error {
	if a.jsonOutput {
		return a.printJSON(f)
	}
	_, err := fmt.Fprintf(a.out, "#%d [%s]\nQ: %s\nA: %s\ncreated %s, updated %s\n",
		f.ID, f.Category, f.Question, f.Answer,
		f.CreatedAt.Local().Format(timeLayout), f.UpdatedAt.Local().Format(timeLayout))
	return err
}

func (a *app) printReports(items []store.IncidentReport) error {
	if a.jsonOutput {
		return a.printJSON(items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(a.out, "No incident reports found.")
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOCCURRED\tPATIENT\tDEPARTMENT\tLOCATION\tLEVEL")
	for _, r := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.IncidentDatetime, r.PatientName, r.Department, r.IncidentLocation, r.ImpactLevel)
	}
	return w.Flush()
}

func (a *app) printReport(r *store.IncidentReport) error {
	if a.jsonOutput {
		return a.printJSON(r)
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(w, "%s\t%s\n", k, v) }
	row("id", strconv.FormatInt(r.ID, 10))
	row("patient_id", deref(r.PatientID))
	row("patient_name", r.PatientName)
	row("birth_date", deref(r.BirthDate))
	row("gender", r.Gender)
	row("reporter_job", r.ReporterJob)
	row("department", r.Department)
	if r.ExperienceYears != nil {
		row("experience_years", strconv.FormatInt(*r.ExperienceYears, 10))
	} else {
		row("experience_years", "")
	}
	row("reporter_type", r.ReporterType)
	row("incident_datetime", r.IncidentDatetime)
	row("incident_location", r.IncidentLocation)
	row("incident_type", deref(r.IncidentType))
	row("incident_situation", r.IncidentSituation)
	row("response_action", r.ResponseAction)
	row("cause_factor", r.CauseFactor)
	row("impact_level", r.ImpactLevel)
	row("created_at", r.CreatedAt.Local().Format(timeLayout))
	return w.Flush()
}

func (a *app) printSummary(s incidents.Summary) error {
	if a.jsonOutput {
		return a.printJSON(s)
	}
	_, err := fmt.Fprintf(a.out, "total\t%d\nthis month\t%d\nlevel %s or higher\t%d\n", s.Total, s.ThisMonth, incidents.HighImpactThreshold, s.HighLevel)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
