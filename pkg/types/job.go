package types

import (
	"fmt"
	"time"
)

// JobKind identifies the document fragment a generation job produces.
type JobKind string

const (
	KindIntro      JobKind = "intro"
	KindSection    JobKind = "section"
	KindTable      JobKind = "table"
	KindConclusion JobKind = "conclusion"
)

// JobID uniquely identifies a generation job within one run: "intro",
// "section_<i>", "table", or "conclusion".
type JobID string

// SectionJobID returns the JobID for the section at position i.
func SectionJobID(i int) JobID {
	return JobID(fmt.Sprintf("section_%d", i))
}

// GenerationJob is one unit of generation work: a rendered prompt tied to a
// document fragment. Jobs are built once per run and are immutable; the
// orchestrator owns them for the run's lifetime.
type GenerationJob struct {
	ID   JobID
	Kind JobKind

	// SectionIndex is the position in the declared sections list; only
	// meaningful for KindSection.
	SectionIndex int

	// Heading is the rendered heading for section jobs, empty otherwise.
	Heading string

	// System and Prompt are the messages sent to the model.
	System string
	Prompt string
}

// JobResult is the terminal outcome of one job: generated text on success,
// or the terminal error after the retry policy gave up. Never both.
type JobResult struct {
	ID   JobID
	Text string
	Err  error

	// Attempts counts transport calls made for this job, including the
	// successful one.
	Attempts int

	Duration time.Duration
}

// OK reports whether the job produced text.
func (r JobResult) OK() bool {
	return r.Err == nil
}

// RunStatus summarizes one orchestrator invocation.
type RunStatus string

const (
	// RunSucceeded means every job produced text.
	RunSucceeded RunStatus = "succeeded"

	// RunFailed means at least one job reached a terminal failure.
	RunFailed RunStatus = "failed"

	// RunIncomplete means the run was cancelled before every job was
	// admitted; unstarted jobs appear as failed results carrying the
	// cancellation cause.
	RunIncomplete RunStatus = "incomplete"
)

// RunReport is the complete, identity-keyed outcome of one run. It always
// holds exactly one JobResult per submitted job.
type RunReport struct {
	RunID string

	// JobIDs preserves the submission order.
	JobIDs []JobID

	Results map[JobID]JobResult

	Status   RunStatus
	Started  time.Time
	Finished time.Time
}

// Succeeded returns the number of jobs that produced text.
func (r *RunReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of jobs that reached a terminal failure.
func (r *RunReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// AllOK reports whether every job produced text.
func (r *RunReport) AllOK() bool {
	return r.Status == RunSucceeded
}

// TableRow holds one parsed comparison-table row, keyed by column name.
type TableRow struct {
	Values map[string]string
}

// Get returns the value for column name, or "" when absent.
func (t TableRow) Get(name string) string {
	return t.Values[name]
}
