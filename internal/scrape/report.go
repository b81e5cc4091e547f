package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Scoreboard holds the match-level facts shared by both teams' records.
type Scoreboard struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	MatchDate *time.Time

	Venue             string
	Referee           string
	AssistantReferees []string
	FourthOfficial    string
	VARReferee        string
	Attendance        *int

	// SquadIDs maps team name to the site's hex squad id, used to locate
	// that team's stats tables. Missing entries degrade the table lookup,
	// not the whole extraction.
	SquadIDs map[string]string
}

// MatchReport is everything extracted from one match report page before any
// field mapping happens.
type MatchReport struct {
	Scoreboard Scoreboard
	Tables     []RawTableCapture
}

var (
	squadLinkRe  = regexp.MustCompile(`^/en/squads/([0-9a-f]{8})/`)
	titleVsRe    = regexp.MustCompile(`^(.*?)\s+vs\.?\s+(.*?)\s+Match Report`)
	attendanceRe = regexp.MustCompile(`[\d,]+`)
	officialRe   = regexp.MustCompile(`(.+?)\s*\((Referee|AVAR|VAR|Assistant Referee|4th Official|Fourth Official)\)`)
)

// ReportExtractor parses match report pages.
type ReportExtractor struct{}

// NewReportExtractor creates a report extractor
func NewReportExtractor() *ReportExtractor {
	return &ReportExtractor{}
}

// Parse extracts the scoreboard and every stats table from a match report
// page. Stats tables shipped inside HTML comments are captured too. Parsing
// is best-effort: individually missing facts stay zero-valued, but a page
// with no recognizable teams is an error.
func (e *ReportExtractor) Parse(pageHTML string) (*MatchReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse match report: %w", err)
	}

	sb := e.parseScoreboard(doc)
	if sb.HomeTeam == "" || sb.AwayTeam == "" {
		return nil, fmt.Errorf("could not identify both teams on match report page")
	}

	tables := CaptureTables(doc)
	eachComment(doc, func(comment string) {
		if !strings.Contains(comment, "table") {
			return
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(comment))
		if err != nil {
			return
		}
		tables = append(tables, CaptureTables(inner)...)
	})

	return &MatchReport{Scoreboard: sb, Tables: tables}, nil
}

func (e *ReportExtractor) parseScoreboard(doc *goquery.Document) Scoreboard {
	sb := Scoreboard{SquadIDs: make(map[string]string)}

	scorebox := doc.Find("div.scorebox")

	// Strategy 1: squad profile links inside the scorebox carry both the
	// team name and its hex id.
	var names []string
	scorebox.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := squadLinkRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}
		if _, seen := sb.SquadIDs[name]; !seen {
			sb.SquadIDs[name] = m[1]
			names = append(names, name)
		}
	})

	// Strategy 2: itemprop markup.
	if len(names) < 2 {
		names = names[:0]
		scorebox.Find(`[itemprop="name"]`).Each(func(_ int, s *goquery.Selection) {
			if name := strings.TrimSpace(s.Text()); name != "" {
				names = append(names, name)
			}
		})
	}

	// Strategy 3: the page title reads "Home vs. Away Match Report ...".
	if len(names) < 2 {
		title := strings.TrimSpace(doc.Find("title").Text())
		if m := titleVsRe.FindStringSubmatch(title); m != nil {
			names = []string{strings.TrimSpace(m[1]), strings.TrimSpace(m[2])}
		}
	}

	if len(names) >= 2 {
		sb.HomeTeam = names[0]
		sb.AwayTeam = names[1]
	}

	// Last resort: when the scorebox gave team names without squad links
	// (itemprop or title fallback), match squad links anywhere on the page
	// against the team names so the stats tables stay reachable.
	if sb.HomeTeam != "" && sb.AwayTeam != "" && len(sb.SquadIDs) < 2 {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			m := squadLinkRe.FindStringSubmatch(href)
			if m == nil {
				return
			}
			name := strings.TrimSpace(a.Text())
			if name != sb.HomeTeam && name != sb.AwayTeam {
				return
			}
			if _, seen := sb.SquadIDs[name]; !seen {
				sb.SquadIDs[name] = m[1]
			}
		})
	}

	scores := scorebox.Find("div.score")
	if scores.Length() >= 2 {
		sb.HomeScore = parseIntPtr(scores.Eq(0).Text())
		sb.AwayScore = parseIntPtr(scores.Eq(1).Text())
	}

	if venuetime := doc.Find("span.venuetime").First(); venuetime.Length() > 0 {
		if raw, ok := venuetime.Attr("data-venue-date"); ok {
			if t, err := time.Parse("2006-01-02", raw); err == nil {
				sb.MatchDate = &t
			}
		}
	}

	e.parseMeta(doc, &sb)

	return sb
}

// parseMeta pulls officials, venue and attendance out of the scorebox meta
// block. Lines are label-prefixed ("Venue: ..."), officials additionally use
// a parenthesized role after each name.
func (e *ReportExtractor) parseMeta(doc *goquery.Document, sb *Scoreboard) {
	doc.Find("div.scorebox_meta div, div.scorebox_meta small").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		switch {
		case strings.HasPrefix(text, "Venue:"):
			sb.Venue = strings.TrimSpace(strings.TrimPrefix(text, "Venue:"))
		case strings.HasPrefix(text, "Attendance:"):
			if m := attendanceRe.FindString(text); m != "" {
				sb.Attendance = parseIntPtr(m)
			}
		case strings.HasPrefix(text, "Officials:") || strings.Contains(text, "(Referee)"):
			e.parseOfficials(text, sb)
		case strings.HasPrefix(text, "Referee:"):
			sb.Referee = strings.TrimSpace(strings.TrimPrefix(text, "Referee:"))
		}
	})
}

func (e *ReportExtractor) parseOfficials(text string, sb *Scoreboard) {
	text = strings.TrimPrefix(text, "Officials:")
	for _, part := range strings.Split(text, "·") {
		m := officialRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		switch m[2] {
		case "Referee":
			sb.Referee = name
		case "Assistant Referee":
			sb.AssistantReferees = append(sb.AssistantReferees, name)
		case "4th Official", "Fourth Official":
			sb.FourthOfficial = name
		case "VAR", "AVAR":
			if sb.VARReferee == "" {
				sb.VARReferee = name
			}
		}
	}
}

func parseIntPtr(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
