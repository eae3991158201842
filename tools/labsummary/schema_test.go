package labsummary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSummary = `{
  "overall_assessment": "Raised white cells and inflammatory markers.",
  "notable_abnormal_results": [
    {"test": "WBC", "value": 14.5, "unit": "x10^3/uL", "reference_range": "4.0 - 10.0", "severity": "moderate"},
    {"test": "CRP", "value": "60", "unit": "mg/L", "reference_range": "< 5", "severity": "severe"},
    {"test": "Glucose", "value": null, "unit": null, "reference_range": null, "severity": "mild"}
  ]
}`

func TestOutputDecode(t *testing.T) {
	out := new(Output)
	require.NoError(t, json.Unmarshal([]byte(sampleSummary), out))
	require.Len(t, out.NotableAbnormalResults, 3)
	assert.Equal(t, Value("14.5"), out.NotableAbnormalResults[0].Value)
	assert.Equal(t, Value("60"), out.NotableAbnormalResults[1].Value)
	assert.Equal(t, Value(""), out.NotableAbnormalResults[2].Value)
	assert.Nil(t, out.NotableAbnormalResults[2].Unit)
	require.NotNil(t, out.NotableAbnormalResults[0].Unit)
	assert.Equal(t, "x10^3/uL", *out.NotableAbnormalResults[0].Unit)
	assert.Equal(t, SeveritySevere, out.NotableAbnormalResults[1].Severity)
	assert.Equal(t, []string{"CRP", "Glucose", "WBC"}, out.Flagged())
}

func TestOutputNullFields(t *testing.T) {
	out := new(Output)
	err := json.Unmarshal([]byte(`{
  "overall_assessment": null,
  "notable_abnormal_results": [
    {"test": null, "value": "7.1", "unit": null, "reference_range": null, "severity": null},
    {"test": "WBC", "value": 14.5, "severity": "moderate"}
  ]
}`), out)
	require.NoError(t, err)
	assert.Empty(t, out.OverallAssessment)
	require.Len(t, out.NotableAbnormalResults, 2)
	assert.Empty(t, out.NotableAbnormalResults[0].Test)
	assert.Empty(t, out.NotableAbnormalResults[0].Severity)
	assert.Equal(t, []string{"WBC"}, out.Flagged())
	assert.Empty(t, out.UnknownSeverities())
}

func TestSeverityDecode(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Severity
		known bool
	}{
		{name: "lower", raw: `"mild"`, want: SeverityMild, known: true},
		{name: "title case", raw: `"Moderate"`, want: SeverityModerate, known: true},
		{name: "upper padded", raw: `" SEVERE "`, want: SeveritySevere, known: true},
		{name: "null", raw: `null`, want: "", known: true},
		{name: "high", raw: `"high"`, want: "high", known: false},
		{name: "critical", raw: `"Critical"`, want: "critical", known: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Severity
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s)
			assert.Equal(t, tt.known, s.Known())
		})
	}
	var s Severity
	assert.Error(t, json.Unmarshal([]byte(`3`), &s))
}

func TestOutputUnknownSeverities(t *testing.T) {
	out := Output{NotableAbnormalResults: []AbnormalResult{
		{Test: "WBC", Severity: "high"},
		{Test: "CRP", Severity: SeveritySevere},
		{Test: "ESR", Severity: "critical"},
		{Test: "Hb", Severity: "high"},
		{Test: "Na"},
	}}
	assert.Equal(t, []string{"critical", "high"}, out.UnknownSeverities())
	assert.Empty(t, Output{}.UnknownSeverities())
}

func TestOutputFlaggedDedup(t *testing.T) {
	out := Output{NotableAbnormalResults: []AbnormalResult{
		{Test: "ESR"}, {Test: "CRP"}, {Test: "ESR"},
	}}
	assert.Equal(t, []string{"CRP", "ESR"}, out.Flagged())
	assert.Empty(t, Output{}.Flagged())
}
