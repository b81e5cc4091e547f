package scrape

import "errors"

var (
	// ErrInvalidSeasonFormat is returned for season labels not matching YYYY-YY
	ErrInvalidSeasonFormat = errors.New("invalid season format, expected YYYY-YY")

	// ErrNoFixturesFound is returned when every extraction strategy comes up empty
	ErrNoFixturesFound = errors.New("no fixtures found on schedule page")

	// ErrSessionLost is returned when the browser session died and could not serve the fetch
	ErrSessionLost = errors.New("browser session lost")
)
