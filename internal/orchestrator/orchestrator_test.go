// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilsoylu/ContentForge/internal/llm"
	"github.com/anilsoylu/ContentForge/internal/retry"
	"github.com/anilsoylu/ContentForge/pkg/types"
)

// fakeTransport simulates the generation API. It records the concurrent
// in-flight high-water mark and can fail selected prompts.
type fakeTransport struct {
	mu        sync.Mutex
	inFlight  int
	highWater int
	calls     map[string]int

	// delay per call; randomized when shuffle is set to vary completion order.
	delay   time.Duration
	shuffle bool

	// fail maps a prompt to the error every call for it returns.
	fail map[string]error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{calls: make(map[string]int), fail: make(map[string]error)}
}

func (f *fakeTransport) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.highWater {
		f.highWater = f.inFlight
	}
	f.calls[req.Prompt]++
	d := f.delay
	if f.shuffle {
		d = time.Duration(rand.Intn(5)) * time.Millisecond
	}
	failErr := f.fail[req.Prompt]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(d):
	}

	if failErr != nil {
		return "", failErr
	}
	return "text for " + req.Prompt, nil
}

func makeJobs(n int) []types.GenerationJob {
	jobs := make([]types.GenerationJob, n)
	for i := range jobs {
		jobs[i] = types.GenerationJob{
			ID:     types.SectionJobID(i),
			Kind:   types.KindSection,
			Prompt: fmt.Sprintf("prompt %d", i),
		}
	}
	return jobs
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestRunAllSucceed(t *testing.T) {
	ft := newFakeTransport()
	ft.shuffle = true
	jobs := makeJobs(12)

	report, err := New(ft, fastPolicy(), 4).Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.Equal(t, types.RunSucceeded, report.Status)
	assert.True(t, report.AllOK())
	require.Len(t, report.Results, len(jobs))
	require.Len(t, report.JobIDs, len(jobs))

	// Every submitted identity has exactly its own result, whatever the
	// completion order was.
	for _, job := range jobs {
		res, ok := report.Results[job.ID]
		require.True(t, ok, "missing result for %s", job.ID)
		assert.Equal(t, job.ID, res.ID)
		assert.Equal(t, "text for "+job.Prompt, res.Text)
		assert.Equal(t, 1, res.Attempts)
	}
}

func TestRunRespectsConcurrencyCeiling(t *testing.T) {
	for _, ceiling := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("ceiling %d", ceiling), func(t *testing.T) {
			ft := newFakeTransport()
			ft.delay = 5 * time.Millisecond
			jobs := makeJobs(20)

			report, err := New(ft, fastPolicy(), ceiling).Run(context.Background(), jobs)
			require.NoError(t, err)

			assert.True(t, report.AllOK())
			assert.LessOrEqual(t, ft.highWater, ceiling)
		})
	}
}

func TestRunZeroJobs(t *testing.T) {
	report, err := New(newFakeTransport(), fastPolicy(), 4).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, types.RunSucceeded, report.Status)
	assert.Empty(t, report.Results)
	assert.NotEmpty(t, report.RunID)
}

func TestRunDuplicateJobIDs(t *testing.T) {
	jobs := makeJobs(3)
	jobs[2].ID = jobs[0].ID

	report, err := New(newFakeTransport(), fastPolicy(), 4).Run(context.Background(), jobs)

	assert.Nil(t, report)
	var berr *InvalidBatchError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, jobs[0].ID, berr.Duplicate)
}

func TestRunPartialFailureDoesNotCancelSiblings(t *testing.T) {
	ft := newFakeTransport()
	jobs := makeJobs(6)
	// One job fails permanently; one exhausts its retry budget.
	ft.fail[jobs[1].Prompt] = &llm.PermanentError{Status: 400, Err: errors.New("bad request")}
	ft.fail[jobs[4].Prompt] = &llm.TransientError{Status: 503, Err: errors.New("unavailable")}

	report, err := New(ft, fastPolicy(), 3).Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.Equal(t, types.RunFailed, report.Status)
	assert.Equal(t, 4, report.Succeeded())
	assert.Equal(t, 2, report.Failed())
	require.Len(t, report.Results, 6)

	// Permanent failure: exactly one attempt.
	res := report.Results[jobs[1].ID]
	assert.False(t, res.OK())
	assert.Equal(t, 1, res.Attempts)
	var perr *llm.PermanentError
	assert.True(t, errors.As(res.Err, &perr))

	// Transient failure: full retry budget consumed, then exhausted.
	res = report.Results[jobs[4].ID]
	assert.False(t, res.OK())
	assert.Equal(t, 3, res.Attempts)
	var rerr *retry.RetryExhaustedError
	assert.True(t, errors.As(res.Err, &rerr))

	// The failing jobs never took a sibling down with them.
	for _, i := range []int{0, 2, 3, 5} {
		assert.True(t, report.Results[jobs[i].ID].OK(), "job %d should have succeeded", i)
	}
}

func TestRunRetriesTransientToSuccess(t *testing.T) {
	var failures int32 = 2
	ft := newFakeTransport()
	jobs := makeJobs(1)

	transport := transportFunc(func(ctx context.Context, req llm.Request) (string, error) {
		if atomic.AddInt32(&failures, -1) >= 0 {
			return "", &llm.TransientError{Status: 429, Err: errors.New("rate limited")}
		}
		return ft.Generate(ctx, req)
	})

	report, err := New(transport, fastPolicy(), 1).Run(context.Background(), jobs)
	require.NoError(t, err)

	res := report.Results[jobs[0].ID]
	assert.True(t, res.OK())
	assert.Equal(t, 3, res.Attempts)
}

func TestRunCancellationMarksIncomplete(t *testing.T) {
	ft := newFakeTransport()
	ft.delay = 20 * time.Millisecond
	jobs := makeJobs(10)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	report, err := New(ft, fastPolicy(), 1).Run(ctx, jobs)
	require.NoError(t, err)

	assert.Equal(t, types.RunIncomplete, report.Status)
	// The contract holds even when cancelled: one result per job.
	assert.Len(t, report.Results, len(jobs))
	assert.Positive(t, report.Failed())
}

func TestRunCancellationAfterAdmissionMarksIncomplete(t *testing.T) {
	ft := newFakeTransport()
	ft.delay = 50 * time.Millisecond
	jobs := makeJobs(4)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	// Ceiling above the job count: every job is in flight before the
	// interrupt fires, so nothing is turned away at admission.
	report, err := New(ft, fastPolicy(), 10).Run(ctx, jobs)
	require.NoError(t, err)

	assert.Equal(t, types.RunIncomplete, report.Status)
	require.Len(t, report.Results, len(jobs))
	for _, job := range jobs {
		assert.ErrorIs(t, report.Results[job.ID].Err, context.Canceled, "job %s", job.ID)
	}
}

// transportFunc adapts a function to llm.Transport.
type transportFunc func(ctx context.Context, req llm.Request) (string, error)

func (f transportFunc) Generate(ctx context.Context, req llm.Request) (string, error) {
	return f(ctx, req)
}
