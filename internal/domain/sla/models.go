package sla

import "time"

type OverdueSubject struct {
	SubjectID   string    `json:"subjectId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// KindReport is the per-kind panel returned by the monitor endpoints.
type KindReport struct {
	Kind string `json:"kind"`
	Report
}
