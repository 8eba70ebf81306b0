package domain

import "time"

// AuthDecision records the outcome of a single guard evaluation. Reason is
// internal only and is never written to an HTTP response.
type AuthDecision struct {
	At        time.Time
	RequestID string
	Method    string
	Route     string
	SubjectID string
	Allowed   bool
	Reason    string
}
