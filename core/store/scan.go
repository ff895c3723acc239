package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

var storedTimeLayouts = []string{
	sqliteTimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dbTime scans timestamp columns regardless of whether the driver hands back
// time.Time or the raw text sqlite keeps on disk.
type dbTime struct {
	Time time.Time
}

func (d *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = v.UTC()
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}

func (d *dbTime) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", raw)
}

// dbText scans free-text columns that sqlite may surface as time.Time or
// integers because of their declared affinity (DATE, DATETIME, INTEGER).
type dbText struct {
	Value  string
	Valid  bool
	layout string
}

func (d *dbText) Scan(src any) error {
	d.Valid = src != nil
	switch v := src.(type) {
	case nil:
		d.Value = ""
	case string:
		d.Value = v
	case []byte:
		d.Value = string(v)
	case time.Time:
		layout := d.layout
		if layout == "" {
			layout = time.RFC3339
		}
		d.Value = v.Format(layout)
	case int64:
		d.Value = strconv.FormatInt(v, 10)
	case float64:
		d.Value = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Errorf("unsupported text type %T", src)
	}
	return nil
}

func (d dbText) ptr() *string {
	if !d.Valid {
		return nil
	}
	v := d.Value
	return &v
}

func nullableText(v *string) any {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return *v
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// likePattern matches keyword literally as a substring under ESCAPE '\'.
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(keyword) + "%"
}

// laterThan returns now, nudged forward so it is strictly after prev.
func laterThan(now, prev time.Time) time.Time {
	now = now.UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		return prev.Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}
