package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	st := r.Create("job_1", "2023-24")
	assert.Equal(t, StateQueued, st.State)
	assert.Equal(t, "2023-24", st.Season)

	r.MarkRunning("job_1")
	r.SetTotal("job_1", 3)
	r.SetCurrentMatch("job_1", "https://fbref.com/en/matches/abc123/x")
	r.RecordMatchScraped("job_1")
	r.RecordError("job_1", "match 2 broke")
	r.RecordMatchScraped("job_1")

	st, err := r.Query("job_1")
	require.NoError(t, err)
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, 3, st.TotalMatches)
	assert.Equal(t, 2, st.MatchesScraped)
	assert.Equal(t, []string{"match 2 broke"}, st.Errors)
	require.NotNil(t, st.StartedAt)

	r.MarkCompleted("job_1")
	st, err = r.Query("job_1")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, st.State)
	assert.Empty(t, st.CurrentMatch)
	require.NotNil(t, st.CompletedAt)
}

func TestRegistryTerminalStatesAreSticky(t *testing.T) {
	r := NewRegistry()
	r.Create("job_1", "2023-24")
	r.MarkRunning("job_1")
	r.MarkCompleted("job_1")

	// None of these may dislodge a terminal state.
	r.MarkRunning("job_1")
	r.MarkFailed("job_1", "too late")
	r.RecordMatchScraped("job_1")
	require.NoError(t, r.MarkCancelled("job_1"))

	st, err := r.Query("job_1")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, st.State)
	assert.Empty(t, st.Errors)
	assert.Equal(t, 0, st.MatchesScraped)
}

func TestRegistryQueryUnknownJob(t *testing.T) {
	r := NewRegistry()
	_, err := r.Query("nope")
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, r.MarkCancelled("nope"), ErrJobNotFound)
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	r.Create("job_1", "2023-24")
	r.RecordError("job_1", "first")

	st, err := r.Query("job_1")
	require.NoError(t, err)
	st.Errors[0] = "mutated"
	st.MatchesScraped = 99

	fresh, err := r.Query("job_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, fresh.Errors)
	assert.Equal(t, 0, fresh.MatchesScraped)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	r.Create("job_1", "2023-24")
	r.MarkRunning("job_1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.RecordMatchScraped("job_1")
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Query("job_1")
		}()
	}
	wg.Wait()

	st, err := r.Query("job_1")
	require.NoError(t, err)
	assert.Equal(t, 50, st.MatchesScraped)
}

func TestRegistryPrune(t *testing.T) {
	r := NewRegistry()
	r.Create("done", "2023-24")
	r.MarkCompleted("done")
	r.Create("active", "2023-24")
	r.MarkRunning("active")

	// Old completions go, running jobs stay.
	past := time.Now().UTC().Add(-2 * time.Hour)
	r.mu.Lock()
	r.jobs["done"].CompletedAt = &past
	r.mu.Unlock()

	removed := r.Prune(time.Hour)
	assert.Equal(t, 1, removed)

	_, err := r.Query("done")
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = r.Query("active")
	assert.NoError(t, err)
}
