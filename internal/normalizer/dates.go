package normalizer

import (
	"fmt"
	"strings"
	"time"
)

// fallbackFormats are tried after the profile's declared formats. Layouts
// use non-padded elements so both "5/3/2024" and "05/03/2024" parse.
var fallbackFormats = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2.1.2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 Jan 06",
	"2/1/06",
	"Jan 2, 2006",
	"2006/1/2",
}

// monthReplacer maps upper/lower-cased month abbreviations to the form the
// time package expects.
var monthReplacer = buildMonthReplacer()

func buildMonthReplacer() *strings.Replacer {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	var pairs []string
	for _, m := range months {
		pairs = append(pairs, strings.ToUpper(m), m, strings.ToLower(m), m)
	}
	return strings.NewReplacer(pairs...)
}

// ParseDate parses a date token, trying the declared formats first and then
// the fixed fallback list.
func ParseDate(s string, declared []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	s = monthReplacer.Replace(s)

	for _, layout := range declared {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range fallbackFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
