package jobs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/pitchside/internal/mapping"
	"github.com/fortuna/pitchside/internal/scrape"
	"github.com/fortuna/pitchside/internal/store"
)

// TeamRecordInserter persists team match records.
type TeamRecordInserter interface {
	Insert(ctx context.Context, rec *store.TeamMatchRecord) error
}

// PlayerRecordInserter persists player match records.
type PlayerRecordInserter interface {
	Insert(ctx context.Context, rec *store.PlayerMatchRecord) error
}

// MatchEvent is emitted after a match's records are stored.
type MatchEvent struct {
	JobID    string `json:"job_id"`
	Season   string `json:"season"`
	MatchURL string `json:"match_url"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// EventPublisher broadcasts per-match scrape events. A nil publisher is
// allowed and disables events.
type EventPublisher interface {
	PublishMatchScraped(ctx context.Context, event MatchEvent) error
}

// FixtureCache caches fixture lists so a resubmitted season skips the
// schedule fetch. A nil cache is allowed and disables caching.
type FixtureCache interface {
	Get(ctx context.Context, key string) ([]scrape.FixtureReference, bool)
	Set(ctx context.Context, key string, fixtures []scrape.FixtureReference, ttl time.Duration)
}

// SessionControl restarts the browser after a lost session.
type SessionControl interface {
	Reset()
}

// Request is one scraping job submission. FixturesURL overrides the resolved
// schedule URL when set; the season label is still required to stamp records.
type Request struct {
	Season      string `json:"season"`
	FixturesURL string `json:"fixtures_url,omitempty"`
}

// Config carries the service's tunables.
type Config struct {
	MatchDelay      time.Duration // pause between consecutive match fetches
	SessionRetries  int           // browser restarts before giving up a job
	JobRetention    time.Duration // how long terminal statuses stay queryable
	FixtureCacheTTL time.Duration
}

// Service coordinates job admission, the scraping pipeline, and status
// reporting. One background worker drains a FIFO queue, so at most one job
// scrapes at a time.
type Service struct {
	registry  *Registry
	fetcher   scrape.PageFetcher
	session   SessionControl
	resolver  *scrape.SeasonResolver
	fixtures  *scrape.FixtureExtractor
	reports   *scrape.ReportExtractor
	mapper    *mapping.Mapper
	teams     TeamRecordInserter
	players   PlayerRecordInserter
	publisher EventPublisher
	cache     FixtureCache

	cfg   Config
	queue chan queuedJob

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

type queuedJob struct {
	jobID   string
	season  scrape.Season
	listURL string
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(
	registry *Registry,
	fetcher scrape.PageFetcher,
	session SessionControl,
	resolver *scrape.SeasonResolver,
	fixtures *scrape.FixtureExtractor,
	reports *scrape.ReportExtractor,
	mapper *mapping.Mapper,
	teams TeamRecordInserter,
	players PlayerRecordInserter,
	publisher EventPublisher,
	cache FixtureCache,
	cfg Config,
	logger *log.Logger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[jobs] ", log.LstdFlags)
	}
	if cfg.MatchDelay <= 0 {
		cfg.MatchDelay = 3 * time.Second
	}
	if cfg.SessionRetries <= 0 {
		cfg.SessionRetries = 3
	}
	if cfg.JobRetention <= 0 {
		cfg.JobRetention = 24 * time.Hour
	}
	if cfg.FixtureCacheTTL <= 0 {
		cfg.FixtureCacheTTL = time.Hour
	}

	return &Service{
		registry:  registry,
		fetcher:   fetcher,
		session:   session,
		resolver:  resolver,
		fixtures:  fixtures,
		reports:   reports,
		mapper:    mapper,
		teams:     teams,
		players:   players,
		publisher: publisher,
		cache:     cache,
		cfg:       cfg,
		queue:     make(chan queuedJob, 32),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}
}

// Start launches the background worker and the retention pruner.
func (s *Service) Start() {
	s.wg.Add(2)
	go s.worker()
	go s.pruner()
}

// Shutdown stops the worker and waits for the in-flight job to stop.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Submit validates the request, registers a queued job and returns its
// status immediately. The scraping happens on the background worker.
func (s *Service) Submit(req Request) (Status, error) {
	season, err := s.resolver.Resolve(req.Season, time.Now().UTC())
	if err != nil {
		return Status{}, err
	}

	listURL := season.URL
	if req.FixturesURL != "" {
		listURL = req.FixturesURL
	}

	jobID := newJobID()
	status := s.registry.Create(jobID, season.Label)

	select {
	case s.queue <- queuedJob{jobID: jobID, season: season, listURL: listURL}:
	default:
		s.registry.MarkFailed(jobID, "job queue is full")
		return Status{}, fmt.Errorf("job queue is full, retry later")
	}

	s.logger.Printf("job %s queued for season %s", jobID, season.Label)
	return status, nil
}

// Status returns the snapshot for one job
func (s *Service) Status(jobID string) (Status, error) {
	return s.registry.Query(jobID)
}

// Cancel requests that a job stop before its next match. Terminal jobs are
// unaffected.
func (s *Service) Cancel(jobID string) error {
	return s.registry.MarkCancelled(jobID)
}

func (s *Service) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.runJob(job)
		}
	}
}

func (s *Service) pruner() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.registry.Prune(s.cfg.JobRetention); n > 0 {
				s.logger.Printf("pruned %d finished jobs", n)
			}
		}
	}
}

func (s *Service) runJob(job queuedJob) {
	if st, err := s.registry.Query(job.jobID); err != nil || st.State.Terminal() {
		return
	}

	s.registry.MarkRunning(job.jobID)
	s.logger.Printf("job %s running: %s", job.jobID, job.listURL)

	fixtures, err := s.loadFixtures(job)
	if err != nil {
		s.logger.Printf("job %s failed to load fixtures: %v", job.jobID, err)
		s.registry.MarkFailed(job.jobID, fmt.Sprintf("fixture extraction failed: %v", err))
		return
	}

	s.registry.SetTotal(job.jobID, len(fixtures))

	scraped := 0
	for i, fixture := range fixtures {
		if s.ctx.Err() != nil {
			s.registry.MarkFailed(job.jobID, "service shutting down")
			return
		}
		if st, err := s.registry.Query(job.jobID); err != nil || st.State.Terminal() {
			s.logger.Printf("job %s stopped at %d/%d", job.jobID, i, len(fixtures))
			return
		}

		if i > 0 {
			select {
			case <-time.After(s.cfg.MatchDelay):
			case <-s.ctx.Done():
				s.registry.MarkFailed(job.jobID, "service shutting down")
				return
			}
		}

		s.registry.SetCurrentMatch(job.jobID, fixture.URL)

		if err := s.scrapeMatch(job, fixture); err != nil {
			if errors.Is(err, scrape.ErrSessionLost) {
				s.registry.MarkFailed(job.jobID, fmt.Sprintf("browser session unrecoverable: %v", err))
				return
			}
			s.logger.Printf("job %s: match %s failed: %v", job.jobID, fixture.URL, err)
			s.registry.RecordError(job.jobID, fmt.Sprintf("%s: %v", fixture.URL, err))
			continue
		}

		scraped++
		s.registry.RecordMatchScraped(job.jobID)
	}

	st, err := s.registry.Query(job.jobID)
	if err != nil || st.State.Terminal() {
		return
	}
	if scraped == 0 && len(fixtures) > 0 {
		s.registry.MarkFailed(job.jobID, "no matches could be scraped")
		return
	}
	s.registry.MarkCompleted(job.jobID)
	s.logger.Printf("job %s completed: %d/%d matches", job.jobID, scraped, len(fixtures))
}

func (s *Service) loadFixtures(job queuedJob) ([]scrape.FixtureReference, error) {
	cacheKey := fmt.Sprintf("fixtures:%s:%s", job.season.Label, job.listURL)
	if s.cache != nil {
		if fixtures, ok := s.cache.Get(s.ctx, cacheKey); ok {
			s.logger.Printf("job %s: fixture list served from cache (%d fixtures)", job.jobID, len(fixtures))
			return fixtures, nil
		}
	}

	pageHTML, err := s.fetchWithRecovery(job.listURL)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.fixtures.Extract(s.ctx, pageHTML, job.season)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(s.ctx, cacheKey, fixtures, s.cfg.FixtureCacheTTL)
	}
	return fixtures, nil
}

func (s *Service) scrapeMatch(job queuedJob, fixture scrape.FixtureReference) error {
	pageHTML, err := s.fetchWithRecovery(fixture.URL)
	if err != nil {
		return err
	}

	report, err := s.reports.Parse(pageHTML)
	if err != nil {
		return err
	}

	teamRecords, playerRecords := s.mapper.MapMatch(report, fixture, time.Now().UTC())

	for _, rec := range teamRecords {
		if err := s.teams.Insert(s.ctx, rec); err != nil {
			return fmt.Errorf("storing team record: %w", err)
		}
	}
	for _, rec := range playerRecords {
		if err := s.players.Insert(s.ctx, rec); err != nil {
			return fmt.Errorf("storing player record: %w", err)
		}
	}

	if s.publisher != nil {
		event := MatchEvent{
			JobID:    job.jobID,
			Season:   fixture.Season,
			MatchURL: fixture.URL,
			HomeTeam: report.Scoreboard.HomeTeam,
			AwayTeam: report.Scoreboard.AwayTeam,
		}
		if err := s.publisher.PublishMatchScraped(s.ctx, event); err != nil {
			s.logger.Printf("publish event for %s failed: %v", fixture.URL, err)
		}
	}

	return nil
}

// fetchWithRecovery fetches a page, restarting the browser with exponential
// backoff when the session is lost. Exhausting the retries surfaces
// ErrSessionLost to the caller, which fails the job.
func (s *Service) fetchWithRecovery(url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.SessionRetries; attempt++ {
		if attempt > 0 {
			if s.session != nil {
				s.session.Reset()
			}
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			s.logger.Printf("session recovery attempt %d/%d, backing off %v", attempt, s.cfg.SessionRetries, backoff)
			select {
			case <-time.After(backoff):
			case <-s.ctx.Done():
				return "", s.ctx.Err()
			}
		}

		pageHTML, err := s.fetcher.Fetch(s.ctx, url)
		if err == nil {
			return pageHTML, nil
		}
		lastErr = err
		if !errors.Is(err, scrape.ErrSessionLost) {
			return "", err
		}
	}
	return "", lastErr
}

func newJobID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("job_%d", time.Now().UnixNano())
	}
	return "job_" + hex.EncodeToString(buf)
}
