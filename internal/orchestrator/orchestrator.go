// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrator executes a batch of generation jobs concurrently
// under a fixed in-flight ceiling and returns one result per job.
//
// This layer owns all concurrency for a run: the transport and retry policy
// stay synchronous, and no job ever waits on another job's result. A failed
// job never cancels its siblings; the run waits for every job to reach a
// terminal state and reports them all.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anilsoylu/ContentForge/internal/llm"
	"github.com/anilsoylu/ContentForge/internal/retry"
	"github.com/anilsoylu/ContentForge/pkg/types"
)

// DefaultConcurrency bounds simultaneous in-flight API requests when the
// caller passes a non-positive limit.
const DefaultConcurrency = 4

// InvalidBatchError reports duplicate job identities in a submitted batch.
// Duplicates would make the identity-keyed report silently drop a result.
type InvalidBatchError struct {
	Duplicate types.JobID
}

func (e *InvalidBatchError) Error() string {
	return fmt.Sprintf("invalid batch: duplicate job id %q", e.Duplicate)
}

// Orchestrator drives one run. Instances hold no cross-run state; create
// one per invocation.
type Orchestrator struct {
	transport   llm.Transport
	policy      retry.Policy
	concurrency int

	// Progress, when non-nil, receives one line per job completion.
	Progress io.Writer
}

// New builds an orchestrator with the given transport, retry policy, and
// concurrency ceiling.
func New(transport llm.Transport, policy retry.Policy, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		transport:   transport,
		policy:      policy,
		concurrency: concurrency,
	}
}

// Run executes all jobs and returns a report containing exactly one result
// per submitted job. Per-job failures (permanent errors, exhausted retries)
// land in the report, not in the returned error; the error is non-nil only
// for an invalid batch.
//
// Cancelling ctx stops admitting queued jobs: jobs never admitted fail with
// the cancellation cause and the report status is RunIncomplete. Jobs
// already in flight observe the cancelled context through the transport.
func (o *Orchestrator) Run(ctx context.Context, jobs []types.GenerationJob) (*types.RunReport, error) {
	report := &types.RunReport{
		RunID:   uuid.NewString(),
		Results: make(map[types.JobID]types.JobResult, len(jobs)),
		Started: time.Now(),
	}

	seen := make(map[types.JobID]bool, len(jobs))
	for _, job := range jobs {
		if seen[job.ID] {
			return nil, &InvalidBatchError{Duplicate: job.ID}
		}
		seen[job.ID] = true
		report.JobIDs = append(report.JobIDs, job.ID)
	}

	if len(jobs) == 0 {
		report.Status = types.RunSucceeded
		report.Finished = time.Now()
		return report, nil
	}

	// Admission gate: a buffered channel bounds in-flight requests at the
	// concurrency ceiling. Jobs beyond the ceiling block here until a slot
	// frees, or bail out on cancellation without ever starting.
	gate := make(chan struct{}, o.concurrency)
	results := make(chan types.JobResult, len(jobs))
	var wg sync.WaitGroup

	cancelled := false
	for _, job := range jobs {
		if cancelled {
			results <- cancelResult(job, ctx.Err())
			continue
		}
		select {
		case <-ctx.Done():
			cancelled = true
			results <- cancelResult(job, ctx.Err())
			continue
		case gate <- struct{}{}:
		}

		wg.Add(1)
		go func(job types.GenerationJob) {
			defer wg.Done()
			defer func() { <-gate }()
			results <- o.execute(ctx, job)
		}(job)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		report.Results[res.ID] = res
		o.progress(res)
	}

	report.Finished = time.Now()
	switch {
	case ctx.Err() != nil && report.Failed() > 0:
		// Interrupted mid-run, whether during admission or with every
		// job already in flight: the failures are cancellation fallout,
		// not API verdicts.
		report.Status = types.RunIncomplete
	case report.Failed() > 0:
		report.Status = types.RunFailed
	default:
		report.Status = types.RunSucceeded
	}
	return report, nil
}

// execute runs one job through the retry policy and builds its result.
func (o *Orchestrator) execute(ctx context.Context, job types.GenerationJob) types.JobResult {
	start := time.Now()
	text, attempts, err := o.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return o.transport.Generate(ctx, llm.Request{System: job.System, Prompt: job.Prompt})
	})
	return types.JobResult{
		ID:       job.ID,
		Text:     text,
		Err:      err,
		Attempts: attempts,
		Duration: time.Since(start),
	}
}

// cancelResult records a job that was never admitted.
func cancelResult(job types.GenerationJob, cause error) types.JobResult {
	if cause == nil {
		cause = context.Canceled
	}
	return types.JobResult{ID: job.ID, Err: fmt.Errorf("not started: %w", cause)}
}

func (o *Orchestrator) progress(res types.JobResult) {
	if o.Progress == nil {
		return
	}
	if res.OK() {
		fmt.Fprintf(o.Progress, "   done %-12s (%d attempt(s), %.1fs)\n", res.ID, res.Attempts, res.Duration.Seconds())
	} else {
		fmt.Fprintf(o.Progress, "   FAIL %-12s %v\n", res.ID, res.Err)
	}
}
