package incidents

import (
	"encoding/json"
	"testing"
	"time"

	"hospital-portal/core/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = time.FixedZone("JST", 9*60*60)

func validInput() Input {
	years := int64(3)
	return Input{
		PatientName:       "山田花子",
		Gender:            "女性",
		ReporterJob:       "看護師",
		Department:        "内科",
		ExperienceYears:   &years,
		ReporterType:      "当事者",
		IncidentDatetime:  "2024-05-01T10:30",
		IncidentLocation:  "ICU Room 4",
		IncidentType:      "転倒・転落",
		IncidentSituation: "ベッドから転落",
		ResponseAction:    "医師へ報告",
		CauseFactor:       "柵の未設置",
		ImpactLevel:       "3a",
	}
}

func requireRule(t *testing.T, err error, field, rule string) {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
	assert.Equal(t, rule, verr.Rule)
}

func TestValidateAcceptsCompleteReport(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo)
	assert.NoError(t, Validate(validInput(), now, tokyo))
}

func TestValidateRequiredFieldsInOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo)
	in := validInput()
	in.CauseFactor = ""
	in.ImpactLevel = ""
	requireRule(t, Validate(in, now, tokyo), "cause_factor", validation.RuleRequired)

	in = validInput()
	in.PatientName = "   "
	in.Gender = ""
	requireRule(t, Validate(in, now, tokyo), "patient_name", validation.RuleRequired)

	in = validInput()
	in.IncidentType = ""
	requireRule(t, Validate(in, now, tokyo), "incident_type", validation.RuleRequired)
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo)
	in := validInput()
	in.PatientID = ""
	in.BirthDate = ""
	in.ExperienceYears = nil
	assert.NoError(t, Validate(in, now, tokyo))
}

func TestValidateRejectsFutureIncident(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 29, 0, 0, tokyo)
	in := validInput()
	requireRule(t, Validate(in, now, tokyo), "incident_datetime", validation.RuleNotFuture)

	// equal to now is accepted
	now = time.Date(2024, 5, 1, 10, 30, 0, 0, tokyo)
	assert.NoError(t, Validate(in, now, tokyo))
}

func TestValidateReadsZoneLessTimeInLocation(t *testing.T) {
	// 10:30 JST is 01:30 UTC, so it is in the past at 02:00 UTC.
	now := time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)
	assert.NoError(t, Validate(validInput(), now, tokyo))
	requireRule(t, Validate(validInput(), now, time.UTC), "incident_datetime", validation.RuleNotFuture)
}

func TestValidateFormatRules(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo)

	in := validInput()
	in.IncidentDatetime = "yesterday"
	requireRule(t, Validate(in, now, tokyo), "incident_datetime", validation.RuleFormat)

	in = validInput()
	in.BirthDate = "14/03/1950"
	requireRule(t, Validate(in, now, tokyo), "birth_date", validation.RuleFormat)

	in = validInput()
	negative := int64(-1)
	in.ExperienceYears = &negative
	requireRule(t, Validate(in, now, tokyo), "experience_years", validation.RuleNonNegative)
}

func TestParseIncidentTimeLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-05-01T10:30",
		"2024-05-01T10:30:00",
		"2024-05-01 10:30",
		"2024-05-01 10:30:00",
		"2024-05-01T10:30:00+09:00",
	} {
		got, ok := ParseIncidentTime(raw, tokyo)
		require.True(t, ok, raw)
		assert.True(t, got.Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, tokyo)), raw)
	}
	_, ok := ParseIncidentTime("", tokyo)
	assert.False(t, ok)
}

func TestInputDecodesNumericImpactLevel(t *testing.T) {
	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"impact_level": 4, "experience_years": 10}`), &in))
	assert.Equal(t, ImpactLevel("4"), in.ImpactLevel)
	require.NotNil(t, in.ExperienceYears)
	assert.Equal(t, int64(10), *in.ExperienceYears)

	require.NoError(t, json.Unmarshal([]byte(`{"impact_level": "3b"}`), &in))
	assert.Equal(t, ImpactLevel("3b"), in.ImpactLevel)

	assert.Error(t, json.Unmarshal([]byte(`{"impact_level": {}}`), &in))
}

func TestHasContent(t *testing.T) {
	assert.False(t, Input{Department: "内科"}.HasContent())
	assert.True(t, Input{PatientName: "A"}.HasContent())
	assert.True(t, Input{IncidentSituation: "転倒"}.HasContent())
}
