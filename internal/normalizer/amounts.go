package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/models"
	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped before numeric parsing.
var currencyMarkers = []string{"₦", "£", "$", "€", "NGN", "USD", "GBP", "EUR"}

// ParseAmount parses an amount token into an exact decimal, honoring the
// locale's thousands and decimal separators. Negatives may be written with
// a leading minus or accounting parentheses. The returned value keeps full
// decimal precision; no float ever touches the money path.
func ParseAmount(s string, hints bankprofile.LocaleHints) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	decSep := hints.DecimalSep
	thouSep := hints.ThousandsSep
	if decSep == "" {
		decSep = "."
	}
	if thouSep == "" && decSep == "." {
		thouSep = ","
	}
	s = strings.ReplaceAll(s, thouSep, "")
	if decSep != "." {
		s = strings.ReplaceAll(s, decSep, ".")
	}

	if s == "" {
		return decimal.Zero, fmt.Errorf("no digits in amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// The marker may sit flush against the digits ("1,234.56CR"), so the guard
// is "not preceded by a letter" rather than a word boundary, which never
// exists between a digit and a letter.
var directionSuffixPattern = regexp.MustCompile(`(?i)(?:^|[^A-Za-z])(CR|DR)\s*$`)

// splitDirectionSuffix strips a trailing CR/DR marker, returning the core
// amount text and the explicit direction when one was present.
func splitDirectionSuffix(s string) (string, models.Direction, bool) {
	trimmed := strings.TrimSpace(s)
	m := directionSuffixPattern.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return trimmed, "", false
	}
	core := strings.TrimSpace(trimmed[:m[2]])
	if core == "" {
		return trimmed, "", false
	}
	if strings.EqualFold(trimmed[m[2]:m[3]], "CR") {
		return core, models.Credit, true
	}
	return core, models.Debit, true
}
