package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FixtureReference points at one completed match's report page.
type FixtureReference struct {
	URL    string
	Season string
}

var matchLinkRe = regexp.MustCompile(`^/en/matches/([0-9a-f]{6,12})/(.+)$`)

// FixtureStrategy is one way of pulling match links out of a schedule page.
// Strategies run in order and the first one returning any fixtures wins.
type FixtureStrategy struct {
	Name string
	Run  func(ctx context.Context, doc *goquery.Document, season Season) []FixtureReference
}

// FixtureExtractor extracts the fixture list from a schedule page, falling
// through a chain of strategies because the source site varies its markup and
// frequently ships tables inside HTML comments.
type FixtureExtractor struct {
	baseURL       string
	competitionID string

	// Strategies may be replaced in tests to observe the fallback order.
	Strategies []FixtureStrategy
}

// NewFixtureExtractor builds an extractor with the default strategy chain
func NewFixtureExtractor(baseURL, competitionID string) *FixtureExtractor {
	e := &FixtureExtractor{
		baseURL:       baseURL,
		competitionID: competitionID,
	}
	e.Strategies = []FixtureStrategy{
		{Name: "schedule-table", Run: e.fromScheduleTable},
		{Name: "comment-rescan", Run: e.fromCommentedTables},
		{Name: "link-scan", Run: e.fromAnyMatchLink},
		{Name: "plain-refetch", Run: e.fromPlainRefetch},
	}
	return e
}

// Extract parses the schedule page HTML and returns the season's fixtures in
// document order, deduplicated by URL. Strategies after the first successful
// one are never invoked. Returns ErrNoFixturesFound when the whole chain
// comes up empty.
func (e *FixtureExtractor) Extract(ctx context.Context, pageHTML string, season Season) ([]FixtureReference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}

	for _, strategy := range e.Strategies {
		fixtures := strategy.Run(ctx, doc, season)
		if len(fixtures) > 0 {
			log.Printf("[scrape] strategy %s found %d fixtures for %s", strategy.Name, len(fixtures), season.Label)
			return dedupeFixtures(fixtures), nil
		}
		log.Printf("[scrape] strategy %s found no fixtures, falling through", strategy.Name)
	}

	return nil, fmt.Errorf("%w: season %s", ErrNoFixturesFound, season.Label)
}

// fromScheduleTable reads match links out of the season's schedule table,
// located by its conventional id sched_{YYYY-YYYY}_{competition}_1.
func (e *FixtureExtractor) fromScheduleTable(_ context.Context, doc *goquery.Document, season Season) []FixtureReference {
	tableID := fmt.Sprintf("sched_%s_%s_1", season.FullLabel, e.competitionID)
	table := doc.Find("table#" + tableID)
	if table.Length() == 0 {
		return nil
	}
	return e.linksFrom(table, season)
}

// fromCommentedTables re-parses HTML comments as documents and retries the
// schedule-table lookup inside them.
func (e *FixtureExtractor) fromCommentedTables(ctx context.Context, doc *goquery.Document, season Season) []FixtureReference {
	var fixtures []FixtureReference

	eachComment(doc, func(comment string) {
		if len(fixtures) > 0 || !strings.Contains(comment, "table") {
			return
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(comment))
		if err != nil {
			return
		}
		fixtures = e.fromScheduleTable(ctx, inner, season)
		if len(fixtures) == 0 {
			fixtures = e.linksFrom(inner.Selection, season)
		}
	})

	return fixtures
}

// fromAnyMatchLink scans the whole document for match report links,
// regardless of the table they sit in.
func (e *FixtureExtractor) fromAnyMatchLink(_ context.Context, doc *goquery.Document, season Season) []FixtureReference {
	return e.linksFrom(doc.Selection, season)
}

// fromPlainRefetch fetches the schedule page again without the browser and
// reruns the comment and link scans on the fresh document. Some layouts only
// ship the commented-out table to non-JS clients.
func (e *FixtureExtractor) fromPlainRefetch(ctx context.Context, _ *goquery.Document, season Season) []FixtureReference {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, season.URL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[scrape] plain refetch of %s failed: %v", season.URL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[scrape] plain refetch of %s returned %d", season.URL, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	if fixtures := e.fromCommentedTables(ctx, doc, season); len(fixtures) > 0 {
		return fixtures
	}
	return e.fromAnyMatchLink(ctx, doc, season)
}

// linksFrom collects match report links under sel in document order
func (e *FixtureExtractor) linksFrom(sel *goquery.Selection, season Season) []FixtureReference {
	var fixtures []FixtureReference

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !matchLinkRe.MatchString(href) {
			return
		}
		fixtures = append(fixtures, FixtureReference{
			URL:    e.baseURL + href,
			Season: season.Label,
		})
	})

	return fixtures
}

// dedupeFixtures drops repeated URLs, keeping first-seen order
func dedupeFixtures(fixtures []FixtureReference) []FixtureReference {
	seen := make(map[string]struct{}, len(fixtures))
	out := fixtures[:0]
	for _, f := range fixtures {
		if _, ok := seen[f.URL]; ok {
			continue
		}
		seen[f.URL] = struct{}{}
		out = append(out, f)
	}
	return out
}

// eachComment walks the parsed DOM and invokes fn for every comment node
func eachComment(doc *goquery.Document, fn func(string)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			fn(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
}
