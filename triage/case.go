package triage

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCase = errors.New("case narrative is empty")

// CaseRequest is one case to triage
type CaseRequest struct {
	// Narrative is the free text case description
	Narrative string
	// LabReport is the raw lab report text, optional
	LabReport string
}

func (r CaseRequest) Validate() error {
	if strings.TrimSpace(r.Narrative) == "" {
		return ErrEmptyCase
	}
	return nil
}

func (r CaseRequest) HasLabReport() bool {
	return strings.TrimSpace(r.LabReport) != ""
}

// InlineMessage embeds the raw report in the user message
func (r CaseRequest) InlineMessage() string {
	if !r.HasLabReport() {
		return r.caseOnly()
	}
	return fmt.Sprintf("Patient case:\n%s\n\nHere are the lab results as raw text. If helpful, you can summarize them first:\n%s\n\nPlease provide non-emergency triage guidance.", r.Narrative, r.LabReport)
}

// ReferenceMessage points to a report kept on the local machine
func (r CaseRequest) ReferenceMessage(ref string) string {
	return fmt.Sprintf("Patient case:\n%s\n\nThe lab results are attached locally, summarize them first with their report_ref:\n%s\n\nPlease provide non-emergency triage guidance.", r.Narrative, ReportAttachment(ref))
}

func (r CaseRequest) caseOnly() string {
	return fmt.Sprintf("Patient case:\n%s\n\nPlease provide non-emergency triage guidance.", r.Narrative)
}

// ReportAttachment is the placeholder of a locally attached report
func ReportAttachment(ref string) string {
	return fmt.Sprintf("[lab report attached locally: report_ref=%s]", ref)
}
