package domain

// JobStatus tracks a pickup job through its lifecycle.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusInRoute   JobStatus = "IN_ROUTE"
	JobStatusCollected JobStatus = "COLLECTED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Represents a single pickup job owned by the dispatch store.
// The engine only reads address, status and assignment fields; it never
// persists jobs. SequenceOrder is meaningful for Pending/InRoute jobs only;
// completed jobs keep their last-known order for historical display.
type Job struct {
	ID            string
	Address       string
	City          string
	State         string
	Neighborhood  string
	Status        JobStatus
	TechnicianID  string // empty when unassigned
	SequenceOrder int    // zero when never sequenced
}

// Assigned reports whether the job already carries a technician.
func (j *Job) Assigned() bool { return j.TechnicianID != "" }
