package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/pitchside/internal/mapping"
	"github.com/fortuna/pitchside/internal/scrape"
	"github.com/fortuna/pitchside/internal/store"
)

const testBaseURL = "https://fbref.test"

// fakeFetcher serves canned pages and scripted failures per URL.
type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[string]string
	failures map[string][]error // consumed front to back per fetch
	fetched  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)

	if queue := f.failures[url]; len(queue) > 0 {
		err := queue[0]
		f.failures[url] = queue[1:]
		return "", err
	}
	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return page, nil
}

type fakeSession struct {
	mu     sync.Mutex
	resets int
}

func (s *fakeSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
}

func (s *fakeSession) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

type fakeTeamStore struct {
	mu      sync.Mutex
	records []*store.TeamMatchRecord
}

func (s *fakeTeamStore) Insert(_ context.Context, rec *store.TeamMatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type fakePlayerStore struct {
	mu      sync.Mutex
	records []*store.PlayerMatchRecord
}

func (s *fakePlayerStore) Insert(_ context.Context, rec *store.PlayerMatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []MatchEvent
}

func (p *fakePublisher) PublishMatchScraped(_ context.Context, event MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func scheduleURL() string {
	return testBaseURL + "/en/comps/9/2023-2024/schedule/2023-2024-Premier-League-Scores-and-Fixtures"
}

func matchURL(id string) string {
	return fmt.Sprintf("%s/en/matches/%s/Home-Away-2023", testBaseURL, id)
}

func schedulePage(ids ...string) string {
	rows := ""
	for _, id := range ids {
		rows += fmt.Sprintf(`<tr><td data-stat="score"><a href="/en/matches/%s/Home-Away-2023">1-0</a></td></tr>`, id)
	}
	return fmt.Sprintf(`<html><body><table id="sched_2023-2024_9_1"><tbody>%s</tbody></table></body></html>`, rows)
}

func matchPage(home, away string) string {
	return fmt.Sprintf(`<html><head><title>%s vs. %s Match Report</title></head><body>
	<div class="scorebox">
		<a href="/en/squads/18bb7c10/%s-Stats">%s</a><div class="score">2</div>
		<a href="/en/squads/cff3d9bb/%s-Stats">%s</a><div class="score">0</div>
	</div>
	<table id="stats_18bb7c10_summary">
		<tbody><tr><th data-stat="player">Somebody</th><td data-stat="shots">3</td></tr></tbody>
		<tfoot><tr><th data-stat="player">11 Players</th><td data-stat="shots">12</td></tr></tfoot>
	</table>
	</body></html>`, home, away, home, home, away, away)
}

type harness struct {
	svc     *Service
	fetcher *fakeFetcher
	session *fakeSession
	teams   *fakeTeamStore
	players *fakePlayerStore
	pub     *fakePublisher
}

func newHarness(t *testing.T, fetcher *fakeFetcher, cfg Config) *harness {
	t.Helper()
	if cfg.MatchDelay == 0 {
		cfg.MatchDelay = time.Millisecond
	}

	h := &harness{
		fetcher: fetcher,
		session: &fakeSession{},
		teams:   &fakeTeamStore{},
		players: &fakePlayerStore{},
		pub:     &fakePublisher{},
	}
	h.svc = NewService(
		NewRegistry(),
		fetcher,
		h.session,
		scrape.NewSeasonResolver(testBaseURL, "9", "Premier-League"),
		scrape.NewFixtureExtractor(testBaseURL, "9"),
		scrape.NewReportExtractor(),
		mapping.NewMapper(),
		h.teams,
		h.players,
		h.pub,
		nil,
		cfg,
		log.New(log.Writer(), "[jobs-test] ", 0),
	)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.svc.Shutdown(ctx)
	})
	return h
}

func waitForTerminal(t *testing.T, svc *Service, jobID string) Status {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		st, err := svc.Status(jobID)
		require.NoError(t, err)
		if st.State.Terminal() {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", jobID)
	return Status{}
}

func TestJobCompletesWithPartialSuccess(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL():     schedulePage("aaa111", "bbb222", "ccc333"),
			matchURL("aaa111"): matchPage("Arsenal", "Chelsea"),
			matchURL("bbb222"): "<html><head><title>broken</title></head><body></body></html>",
			matchURL("ccc333"): matchPage("Liverpool", "Everton"),
		},
	}
	h := newHarness(t, fetcher, Config{})
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)
	assert.Equal(t, StateQueued, st.State)
	assert.Equal(t, "2023-24", st.Season)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateCompleted, final.State, "one bad match must not fail the job")
	assert.Equal(t, 3, final.TotalMatches)
	assert.Equal(t, 2, final.MatchesScraped)
	require.Len(t, final.Errors, 1)
	assert.Contains(t, final.Errors[0], "bbb222")

	// Two team records per successful match.
	h.teams.mu.Lock()
	assert.Len(t, h.teams.records, 4)
	h.teams.mu.Unlock()

	h.pub.mu.Lock()
	assert.Len(t, h.pub.events, 2)
	h.pub.mu.Unlock()
}

func TestJobFailsWhenNothingScrapes(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL():     schedulePage("aaa111"),
			matchURL("aaa111"): "<html><head><title>broken</title></head><body></body></html>",
		},
	}
	h := newHarness(t, fetcher, Config{})
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateFailed, final.State)
	assert.Equal(t, 0, final.MatchesScraped)
}

func TestJobFailsWhenFixturesMissing(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL(): "<html><body><p>empty</p></body></html>",
		},
	}
	h := newHarness(t, fetcher, Config{})
	// Keep the strategy chain off the network.
	h.svc.fixtures.Strategies = h.svc.fixtures.Strategies[:3]
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateFailed, final.State)
	require.NotEmpty(t, final.Errors)
	assert.Contains(t, final.Errors[0], "fixture extraction failed")
}

func TestSubmitRejectsBadSeason(t *testing.T) {
	h := newHarness(t, &fakeFetcher{pages: map[string]string{}}, Config{})

	_, err := h.svc.Submit(Request{Season: "20x4-25"})
	assert.ErrorIs(t, err, scrape.ErrInvalidSeasonFormat)
}

func TestSessionRecoveryRestartsBrowser(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL():     schedulePage("aaa111"),
			matchURL("aaa111"): matchPage("Arsenal", "Chelsea"),
		},
		failures: map[string][]error{
			scheduleURL(): {scrape.ErrSessionLost},
		},
	}
	h := newHarness(t, fetcher, Config{SessionRetries: 2})
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateCompleted, final.State)
	assert.Equal(t, 1, final.MatchesScraped)
	assert.Equal(t, 1, h.session.Resets(), "lost session triggers a browser restart")
}

func TestSessionExhaustionFailsJob(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL(): schedulePage("aaa111"),
		},
		failures: map[string][]error{
			matchURL("aaa111"): {scrape.ErrSessionLost, scrape.ErrSessionLost},
		},
	}
	h := newHarness(t, fetcher, Config{SessionRetries: 1})
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateFailed, final.State)
	require.NotEmpty(t, final.Errors)
	assert.Contains(t, final.Errors[len(final.Errors)-1], "session")
}

func TestCancelBeforeRunStopsJob(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			scheduleURL():     schedulePage("aaa111"),
			matchURL("aaa111"): matchPage("Arsenal", "Chelsea"),
		},
	}
	h := newHarness(t, fetcher, Config{})

	// Cancel while the worker has not started yet.
	st, err := h.svc.Submit(Request{Season: "2023-24"})
	require.NoError(t, err)
	require.NoError(t, h.svc.Cancel(st.JobID))

	h.svc.Start()

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateCancelled, final.State)
	assert.Equal(t, 0, final.MatchesScraped)

	h.teams.mu.Lock()
	assert.Empty(t, h.teams.records)
	h.teams.mu.Unlock()
}

func TestCustomFixturesURLOverridesSchedule(t *testing.T) {
	customURL := testBaseURL + "/my/own/list"
	fetcher := &fakeFetcher{
		pages: map[string]string{
			customURL:         schedulePage("aaa111"),
			matchURL("aaa111"): matchPage("Arsenal", "Chelsea"),
		},
	}
	h := newHarness(t, fetcher, Config{})
	h.svc.Start()

	st, err := h.svc.Submit(Request{Season: "2023-24", FixturesURL: customURL})
	require.NoError(t, err)

	final := waitForTerminal(t, h.svc, st.JobID)
	assert.Equal(t, StateCompleted, final.State)

	h.fetcher.mu.Lock()
	assert.Equal(t, customURL, h.fetcher.fetched[0])
	h.fetcher.mu.Unlock()
}
