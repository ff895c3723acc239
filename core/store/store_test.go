package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"hospital-portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.AppConfig{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "portal.db")}
	db, err := NewDB(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, ApplyMigrations(context.Background(), db, nil))
	return db
}

func strPtr(s string) *string { return &s }

func sampleReport(name, department, location string) *IncidentReport {
	years := int64(5)
	return &IncidentReport{
		PatientName:       name,
		Gender:            "女性",
		ReporterJob:       "看護師",
		Department:        department,
		ExperienceYears:   &years,
		ReporterType:      "当事者",
		IncidentDatetime:  "2024-05-01T10:30:00",
		IncidentLocation:  location,
		IncidentType:      strPtr("転倒・転落"),
		IncidentSituation: "ベッドから転落",
		ResponseAction:    "医師へ報告",
		CauseFactor:       "柵の未設置",
		ImpactLevel:       "3a",
	}
}

func TestFAQCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))

	created, err := st.CreateFAQ(ctx, &FAQ{Category: "Billing", Question: "How do I pay?", Answer: "Online or at the front desk."})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Billing", created.Category)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := st.GetFAQ(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFAQGetMissingIsNotFound(t *testing.T) {
	st := NewFAQsStore(newTestDB(t))
	_, err := st.GetFAQ(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFAQListNewestFirstAndNeverNil(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))

	empty, err := st.ListFAQs(ctx, FAQFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := st.CreateFAQ(ctx, &FAQ{Category: "a", Question: "q1", Answer: "a1"})
	require.NoError(t, err)
	second, err := st.CreateFAQ(ctx, &FAQ{Category: "a", Question: "q2", Answer: "a2"})
	require.NoError(t, err)

	items, err := st.ListFAQs(ctx, FAQFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestFAQSearchMatchesAnyTextColumnLiterally(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))
	for _, f := range []FAQ{
		{Category: "Billing", Question: "How do I pay?", Answer: "Online."},
		{Category: "Visiting", Question: "Hours?", Answer: "Billing desk closes at 5."},
		{Category: "Parking", Question: "Is there 100% coverage?", Answer: "No."},
		{Category: "Other", Question: "Nothing here", Answer: "None."},
	} {
		f := f
		_, err := st.CreateFAQ(ctx, &f)
		require.NoError(t, err)
	}

	items, err := st.ListFAQs(ctx, FAQFilter{Search: "Billing"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = st.ListFAQs(ctx, FAQFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Parking", items[0].Category)

	items, err = st.ListFAQs(ctx, FAQFilter{Search: "%"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFAQCategoryIsExactMatch(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))
	for _, cat := range []string{"Billing", "billing", "Billing Desk"} {
		_, err := st.CreateFAQ(ctx, &FAQ{Category: cat, Question: "q", Answer: "a"})
		require.NoError(t, err)
	}
	items, err := st.ListFAQs(ctx, FAQFilter{Category: "Billing"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Billing", items[0].Category)
}

func TestFAQUpdateAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))
	created, err := st.CreateFAQ(ctx, &FAQ{Category: "c", Question: "q", Answer: "a"})
	require.NoError(t, err)

	updated, err := st.UpdateFAQ(ctx, &FAQ{ID: created.ID, Category: "c2", Question: "q2", Answer: "a2"})
	require.NoError(t, err)
	assert.Equal(t, "c2", updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at %s not after %s", updated.UpdatedAt, created.UpdatedAt)

	again, err := st.UpdateFAQ(ctx, &FAQ{ID: created.ID, Category: "c3", Question: "q3", Answer: "a3"})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
}

func TestFAQUpdateMissingDoesNotInsert(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))
	_, err := st.UpdateFAQ(ctx, &FAQ{ID: 42, Category: "c", Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, ErrNotFound)
	items, err := st.ListFAQs(ctx, FAQFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFAQDelete(t *testing.T) {
	ctx := context.Background()
	st := NewFAQsStore(newTestDB(t))
	created, err := st.CreateFAQ(ctx, &FAQ{Category: "c", Question: "q", Answer: "a"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteFAQ(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteFAQ(ctx, created.ID), ErrNotFound)
	_, err = st.GetFAQ(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncidentReportRoundTripKeepsOptionalFields(t *testing.T) {
	ctx := context.Background()
	st := NewIncidentReportsStore(newTestDB(t))

	in := sampleReport("山田花子", "内科", "ICU Room 4")
	in.PatientID = strPtr("P-001")
	in.BirthDate = strPtr("1950-03-14")
	created, err := st.CreateIncidentReport(ctx, in)
	require.NoError(t, err)

	got, err := st.GetIncidentReport(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "P-001", *got.PatientID)
	assert.Equal(t, "1950-03-14", *got.BirthDate)
	assert.Equal(t, int64(5), *got.ExperienceYears)
	assert.Equal(t, "2024-05-01T10:30:00", got.IncidentDatetime)
	assert.Equal(t, "転倒・転落", *got.IncidentType)
	assert.Equal(t, "3a", got.ImpactLevel)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestIncidentReportNullOptionals(t *testing.T) {
	ctx := context.Background()
	st := NewIncidentReportsStore(newTestDB(t))
	in := sampleReport("佐藤", "外科", "Lobby")
	in.ExperienceYears = nil
	created, err := st.CreateIncidentReport(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, created.PatientID)
	assert.Nil(t, created.BirthDate)
	assert.Nil(t, created.ExperienceYears)
}

func TestIncidentReportSearch(t *testing.T) {
	ctx := context.Background()
	st := NewIncidentReportsStore(newTestDB(t))
	icu, err := st.CreateIncidentReport(ctx, sampleReport("A", "内科", "ICU Room 4"))
	require.NoError(t, err)
	_, err = st.CreateIncidentReport(ctx, sampleReport("B", "外科", "Lobby"))
	require.NoError(t, err)

	items, err := st.ListIncidentReports(ctx, IncidentReportFilter{Search: "ICU"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, icu.ID, items[0].ID)

	items, err = st.ListIncidentReports(ctx, IncidentReportFilter{Search: "外科"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].PatientName)

	// situation text is not a search column
	items, err = st.ListIncidentReports(ctx, IncidentReportFilter{Search: "ベッド"})
	require.NoError(t, err)
	assert.Empty(t, items)

	all, err := st.ListIncidentReports(ctx, IncidentReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIncidentReportDelete(t *testing.T) {
	ctx := context.Background()
	st := NewIncidentReportsStore(newTestDB(t))
	created, err := st.CreateIncidentReport(ctx, sampleReport("A", "内科", "ICU"))
	require.NoError(t, err)
	require.NoError(t, st.DeleteIncidentReport(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteIncidentReport(ctx, created.ID), ErrNotFound)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, ApplyMigrations(ctx, db, nil))
	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestMigrationBackfillsIncidentTypeOnLegacyStore(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.ExecContext(ctx, `CREATE TABLE incident_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT, patient_name TEXT NOT NULL, birth_date DATE, gender TEXT NOT NULL,
		reporter_job TEXT NOT NULL, department TEXT NOT NULL, experience_years INTEGER,
		reporter_type TEXT NOT NULL, incident_datetime DATETIME NOT NULL, incident_location TEXT NOT NULL,
		incident_situation TEXT NOT NULL, response_action TEXT NOT NULL, cause_factor TEXT NOT NULL,
		impact_level TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP, updated_at DATETIME DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO incident_reports(patient_name, gender, reporter_job, department, reporter_type, incident_datetime, incident_location, incident_situation, response_action, cause_factor, impact_level)
		VALUES('旧', '男性', '医師', '内科', '発見者', '2023-01-01T09:00', '病棟', '状況', '対応', '要因', '2')`)
	require.NoError(t, err)

	require.NoError(t, ApplyMigrations(ctx, db, nil))

	items, err := NewIncidentReportsStore(db).ListIncidentReports(ctx, IncidentReportFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].IncidentType)
	assert.Equal(t, incidentTypeDefault, *items[0].IncidentType)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestMigrationToleratesHandPatchedColumn(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.ExecContext(ctx, `CREATE TABLE incident_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT, patient_name TEXT NOT NULL, birth_date DATE, gender TEXT NOT NULL,
		reporter_job TEXT NOT NULL, department TEXT NOT NULL, experience_years INTEGER,
		reporter_type TEXT NOT NULL, incident_datetime DATETIME NOT NULL, incident_location TEXT NOT NULL,
		incident_situation TEXT NOT NULL, response_action TEXT NOT NULL, cause_factor TEXT NOT NULL,
		impact_level TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP, updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		incident_type TEXT)`)
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(ctx, db, nil))

	exists, err := columnExists(ctx, db, DialectSQLite, "incident_reports", "incident_type")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSeedFAQsOnlyIntoEmptyTable(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	n, err := SeedFAQs(ctx, db, nil)
	require.NoError(t, err)
	assert.Equal(t, len(initialFAQs), n)

	n, err = SeedFAQs(ctx, db, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	items, err := NewFAQsStore(db).ListFAQs(ctx, FAQFilter{})
	require.NoError(t, err)
	require.Len(t, items, len(initialFAQs))
	assert.Equal(t, initialFAQs[len(initialFAQs)-1].Question, items[0].Question)
}

func TestInspectReportsCountsAndIncidentSchema(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	_, err := SeedFAQs(ctx, db, nil)
	require.NoError(t, err)

	info, err := Inspect(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", info.Dialect)
	assert.Equal(t, int64(3), info.SchemaVersion)
	assert.Contains(t, info.Tables, "faqs")
	assert.Contains(t, info.Tables, "incident_reports")
	counts := map[string]int64{}
	for _, c := range info.Counts {
		counts[c.Table] = c.Rows
	}
	assert.Equal(t, int64(len(initialFAQs)), counts["faqs"])
	assert.Equal(t, int64(0), counts["incident_reports"])

	var names []string
	for _, col := range info.IncidentSchema {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "incident_type")
}

func TestOptimizeAndSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, Optimize(ctx, db))

	dest := filepath.Join(t.TempDir(), "snaps", "copy.db")
	require.NoError(t, Snapshot(ctx, db, dest))
	assert.FileExists(t, dest)
	assert.Error(t, Snapshot(ctx, db, dest))
}

func TestLaterThan(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(time.Millisecond), laterThan(base, base))
	assert.Equal(t, base.Add(time.Millisecond), laterThan(base.Add(-time.Hour), base))
	assert.Equal(t, base.Add(time.Second), laterThan(base.Add(time.Second), base))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, likePattern(`c:\d`))
}

func TestRebindForPostgres(t *testing.T) {
	assert.Equal(t, "SELECT 1 WHERE a=$1 AND b=$2", DialectPostgres.rebind("SELECT 1 WHERE a=? AND b=?"))
	assert.Equal(t, "SELECT 1 WHERE a=?", DialectSQLite.rebind("SELECT 1 WHERE a=?"))
}
