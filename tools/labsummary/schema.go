package labsummary

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bububa/hybrid-triage/schema"
)

// Input is the tool call arguments
type Input struct {
	LabText   string `json:"lab_text,omitempty" jsonschema:"title=lab_text,description=The raw text of the lab report to summarize."`
	ReportRef string `json:"report_ref,omitempty" jsonschema:"title=report_ref,description=Reference of a lab report attached locally. Use it instead of lab_text when the message carries a report_ref."`
}

func (v Input) String() string {
	return schema.Stringify(v)
}

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// UnmarshalJSON folds case and surrounding space, null decodes to the empty severity
func (s *Severity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Severity(strings.ToLower(strings.TrimSpace(v)))
	return nil
}

// Known reports whether s is empty or one of mild, moderate and severe
func (s Severity) Known() bool {
	return validate.Var(string(s), "omitempty,oneof=mild moderate severe") == nil
}

// Value is a test result value, models emit it either as a string or a number
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = Value(n.String())
	return nil
}

// AbnormalResult is one flagged lab test
type AbnormalResult struct {
	Test           string   `json:"test" jsonschema:"title=test,description=Test name"`
	Value          Value    `json:"value" jsonschema:"title=value,description=Measured value"`
	Unit           *string  `json:"unit" jsonschema:"title=unit,description=Unit or null"`
	ReferenceRange *string  `json:"reference_range" jsonschema:"title=reference_range,description=Reference range or null"`
	Severity       Severity `json:"severity" jsonschema:"title=severity,enum=mild,enum=moderate,enum=severe"`
}

// Output is the structured summary returned to the cloud agent
type Output struct {
	OverallAssessment      string           `json:"overall_assessment" jsonschema:"title=overall_assessment,description=Short plain English summary"`
	NotableAbnormalResults []AbnormalResult `json:"notable_abnormal_results" jsonschema:"title=notable_abnormal_results"`
}

func (v Output) String() string {
	return schema.Stringify(v)
}

// Flagged returns the sorted names of the flagged tests, unnamed results are skipped
func (v Output) Flagged() []string {
	return v.collect(func(r AbnormalResult) string { return r.Test })
}

// UnknownSeverities returns the sorted severities outside mild, moderate and severe
func (v Output) UnknownSeverities() []string {
	return v.collect(func(r AbnormalResult) string {
		if r.Severity.Known() {
			return ""
		}
		return string(r.Severity)
	})
}

func (v Output) collect(field func(AbnormalResult) string) []string {
	seen := make(map[string]struct{}, len(v.NotableAbnormalResults))
	ret := make([]string, 0, len(v.NotableAbnormalResults))
	for _, r := range v.NotableAbnormalResults {
		name := field(r)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

var validate = validator.New(validator.WithRequiredStructEnabled())
