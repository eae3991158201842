package labsummary

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/xid"
)

var (
	ErrEmptyReport    = errors.New("lab report is empty")
	ErrReportNotFound = errors.New("lab report not found")
)

// ReportStore keeps raw lab reports on the local machine, the cloud agent only sees their reference
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]string
}

func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]string)}
}

// Put stores a report and returns its reference
func (s *ReportStore) Put(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReport
	}
	ref := xid.New().String()
	s.mu.Lock()
	s.reports[ref] = text
	s.mu.Unlock()
	return ref, nil
}

func (s *ReportStore) Get(ref string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, found := s.reports[ref]
	if !found {
		return "", fmt.Errorf("%w: %q", ErrReportNotFound, ref)
	}
	return text, nil
}

func (s *ReportStore) Delete(ref string) {
	s.mu.Lock()
	delete(s.reports, ref)
	s.mu.Unlock()
}

func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
