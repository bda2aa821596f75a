// Package kvstore models the persistence collaborators the form handler
// and SMS meter depend on (spec.md §6.3): FORM_SUBMISSIONS_TABLE and
// SMS_USAGE_TABLE, as interfaces so tests substitute fakes (SPEC_FULL.md
// §9, "model each external dependency as an interface").
package kvstore

import "context"

// SubmissionStore persists completed form submissions, keyed by
// submission_id.
type SubmissionStore interface {
	PutSubmission(ctx context.Context, submissionID string, item map[string]any) error
}

// CounterStore implements the SMS usage meter's read-then-increment
// contract (spec.md §4.11). Month keys are "YYYY-MM" in UTC.
type CounterStore interface {
	// GetCount reads the current counter value for (tenantID, month).
	// found=false means no record exists yet, equivalent to count 0.
	GetCount(ctx context.Context, tenantID, month string) (count int, found bool, err error)
	// Increment adds one to the counter for (tenantID, month), creating it
	// at 1 when no record exists, and returns the counter's new value.
	// DynamoStore also sets updated_at = now; SQLiteStore keeps no
	// updated_at column.
	Increment(ctx context.Context, tenantID, month string) (newCount int, err error)
}
