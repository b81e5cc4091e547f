package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var seasonLabelRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Season identifies one competition season and where its schedule lives.
type Season struct {
	Label     string // "2023-24"
	FullLabel string // "2023-2024", as used in schedule URLs and table ids
	URL       string // schedule page URL
	IsCurrent bool
}

// SeasonResolver turns season labels into schedule URLs for one competition.
type SeasonResolver struct {
	baseURL       string
	competitionID string // e.g. "9" for the Premier League
	slug          string // e.g. "Premier-League"
}

// NewSeasonResolver creates a resolver rooted at baseURL for one competition
func NewSeasonResolver(baseURL, competitionID, slug string) *SeasonResolver {
	return &SeasonResolver{
		baseURL:       baseURL,
		competitionID: competitionID,
		slug:          slug,
	}
}

// Resolve validates a "YYYY-YY" season label and builds its schedule URL.
// The current season lives at the unversioned schedule path; historical
// seasons embed the full "YYYY-YYYY" range. A season counts as current until
// August 1 following its starting year: "2024-25" is current through
// 2025-07-31 and historical from 2025-08-01.
func (r *SeasonResolver) Resolve(label string, asOf time.Time) (Season, error) {
	m := seasonLabelRe.FindStringSubmatch(label)
	if m == nil {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalidSeasonFormat, label)
	}

	startYear, _ := strconv.Atoi(m[1])
	endShort, _ := strconv.Atoi(m[2])
	if endShort != (startYear+1)%100 {
		return Season{}, fmt.Errorf("%w: %q is not a consecutive year pair", ErrInvalidSeasonFormat, label)
	}

	fullLabel := fmt.Sprintf("%d-%d", startYear, startYear+1)

	// The season running at any instant starts in the calendar year of the
	// most recent August 1. "2024-25" is current through 2025-07-31 and
	// becomes historical on 2025-08-01.
	currentStart := asOf.Year()
	if asOf.Month() < time.August {
		currentStart--
	}
	isCurrent := startYear == currentStart

	var url string
	if isCurrent {
		url = fmt.Sprintf("%s/en/comps/%s/schedule/%s-Scores-and-Fixtures",
			r.baseURL, r.competitionID, r.slug)
	} else {
		url = fmt.Sprintf("%s/en/comps/%s/%s/schedule/%s-%s-Scores-and-Fixtures",
			r.baseURL, r.competitionID, fullLabel, fullLabel, r.slug)
	}

	return Season{
		Label:     label,
		FullLabel: fullLabel,
		URL:       url,
		IsCurrent: isCurrent,
	}, nil
}

// ShortLabel converts a "YYYY-YYYY" range into the canonical "YYYY-YY" label
func ShortLabel(fullLabel string) string {
	if len(fullLabel) == 9 && fullLabel[4] == '-' {
		return fullLabel[:5] + fullLabel[7:]
	}
	return fullLabel
}
