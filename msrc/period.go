package msrc

import (
	"regexp"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/xerrors"
)

// PeriodLayout is the layout of the period tokens MSRC uses, e.g. "2021-Jan".
const PeriodLayout = "2006-Jan"

var periodRegexp = regexp.MustCompile(`^\d{4}-[A-Za-z]{3}$`)

// CurrentPeriod returns the period token of the month containing t.
func CurrentPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

// ParsePeriod normalizes s to a period token. Besides "2021-Jan" it accepts any date
// understood by dateparse, e.g. "2021-01-12" or "2021/01/12".
func ParsePeriod(s string) (string, error) {
	if periodRegexp.MatchString(s) {
		// time.Parse matches month names case-insensitively
		t, err := time.Parse(PeriodLayout, s)
		if err != nil {
			return "", xerrors.Errorf("invalid period %q: %w", s, err)
		}
		return t.Format(PeriodLayout), nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", xerrors.Errorf("invalid period %q: %w", s, err)
	}
	return t.Format(PeriodLayout), nil
}

// YearPeriods expands every year into its twelve period tokens.
func YearPeriods(years []int) []string {
	var periods []string
	for _, year := range years {
		for month := time.January; month <= time.December; month++ {
			periods = append(periods, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(PeriodLayout))
		}
	}
	return periods
}
