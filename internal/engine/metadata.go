package engine

import (
	"regexp"
	"strings"
)

// Account metadata and summary-balance extraction from document text. These
// live outside the transaction table, so the adapters never see them.

var (
	// NUBAN account numbers are 10 digits; older exports sometimes carry 8.
	nubanPattern  = regexp.MustCompile(`\b(\d{10})\b`)
	legacyPattern = regexp.MustCompile(`\b(\d{8})\b`)
	// summaryAmountPattern pulls the trailing amount off a balance line.
	summaryAmountPattern = regexp.MustCompile(`-?[₦£$€]?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?`)
)

var accountNameLabels = []string{
	"account name", "account holder", "customer name", "name of account",
}

// findAccountNumber returns the first NUBAN-looking number in the text,
// falling back to an 8-digit match.
func findAccountNumber(text string) string {
	if m := nubanPattern.FindString(text); m != "" {
		return m
	}
	return legacyPattern.FindString(text)
}

// findAccountName looks for a label line and takes the remainder of the
// line as the holder name.
func findAccountName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, label := range accountNameLabels {
			idx := strings.Index(lower, label)
			if idx < 0 {
				continue
			}
			rest := strings.TrimSpace(line[idx+len(label):])
			rest = strings.TrimLeft(rest, ":- \t")
			// Column-separated exports put the value two spaces away;
			// anything past that gap is other metadata.
			if cut := strings.Index(rest, "  "); cut > 0 {
				rest = rest[:cut]
			}
			if rest != "" {
				return strings.TrimSpace(rest)
			}
		}
	}
	return ""
}

// findSummaryBalances scans for explicit opening/closing balance lines and
// returns their raw amount text still unparsed, since the normalizer owns
// locale handling.
func findSummaryBalances(text string) (openingText, closingText string) {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "opening balance") || strings.Contains(lower, "brought forward"):
			if amt := lastAmountOnLine(line); amt != "" && openingText == "" {
				openingText = amt
			}
		case strings.Contains(lower, "closing balance") || strings.Contains(lower, "carried forward"):
			if amt := lastAmountOnLine(line); amt != "" {
				closingText = amt
			}
		}
	}
	return openingText, closingText
}

func lastAmountOnLine(line string) string {
	matches := summaryAmountPattern.FindAllString(line, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		// A bare small integer on a summary line is usually a page number
		// or a date fragment, not a balance.
		if strings.ContainsAny(m, ".,") || len(strings.TrimLeft(m, "-₦£$€")) > 3 {
			return m
		}
	}
	return ""
}
