package parser

import (
	"regexp"
	"strconv"
	"time"
)

var dateLabelPattern = regexp.MustCompile(`^\d{4}$`)

// ParseDateLabel interprets a sheet name of exactly four digits as MMDD in
// the given year. It reports false for any other name and for dates that do
// not exist in that year (e.g. "1301", "0230", "0229" outside leap years).
func ParseDateLabel(name string, year int) (time.Time, bool) {
	if !dateLabelPattern.MatchString(name) {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(name[:2])
	day, _ := strconv.Atoi(name[2:])

	// time.Date normalises overflow, so a round trip detects invalid dates.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// SelectLatest returns the sheet name whose MMDD date in referenceYear is the
// latest. Names that are not dates are ignored. Equal dates cannot occur for
// distinct four-digit names, but the lexically greater name wins regardless.
func SelectLatest(sheetNames []string, referenceYear int) (string, error) {
	var (
		latest     string
		latestDate time.Time
		found      bool
	)

	for _, name := range sheetNames {
		date, ok := ParseDateLabel(name, referenceYear)
		if !ok {
			continue
		}
		if !found || date.After(latestDate) || (date.Equal(latestDate) && name > latest) {
			latest, latestDate, found = name, date, true
		}
	}

	if !found {
		return "", &NoCandidateError{Examined: len(sheetNames)}
	}
	return latest, nil
}
