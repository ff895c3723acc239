package incidents

import (
	"time"

	"hospital-portal/core/store"
)

// Filter narrows a result set that already came back from Search. Empty
// fields are ignored; set fields must all match exactly.
type Filter struct {
	Department  string
	ImpactLevel string
}

func (f Filter) Empty() bool {
	return f.Department == "" && f.ImpactLevel == ""
}

// Narrow applies f on the client side. The input slice is not modified.
func Narrow(reports []store.IncidentReport, f Filter) []store.IncidentReport {
	out := make([]store.IncidentReport, 0, len(reports))
	for _, r := range reports {
		if f.Department != "" && r.Department != f.Department {
			continue
		}
		if f.ImpactLevel != "" && r.ImpactLevel != f.ImpactLevel {
			continue
		}
		out = append(out, r)
	}
	return out
}

type Summary struct {
	Total     int `json:"total"`
	ThisMonth int `json:"this_month"`
	HighLevel int `json:"high_level"`
}

// Summarize counts reports overall, those created in now's calendar month
// (in now's zone), and those at or above HighImpactThreshold.
func Summarize(reports []store.IncidentReport, now time.Time) Summary {
	s := Summary{Total: len(reports)}
	year, month, _ := now.Date()
	for _, r := range reports {
		cy, cm, _ := r.CreatedAt.In(now.Location()).Date()
		if cy == year && cm == month {
			s.ThisMonth++
		}
		if ImpactLevel(r.ImpactLevel).AtLeast(HighImpactThreshold) {
			s.HighLevel++
		}
	}
	return s
}
