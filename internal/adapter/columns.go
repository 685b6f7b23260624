package adapter

import (
	"regexp"
	"strings"
)

// Column-name synonyms used to locate the transaction table header. Each
// canonical column lists the names issuers actually print.
var columnSynonyms = map[string][]string{
	"date":        {"date", "trans date", "transaction date", "txn date", "value date", "post date"},
	"description": {"description", "narration", "details", "particulars", "remarks", "transaction details"},
	"amount":      {"amount", "transaction amount", "txn amount"},
	"debit":       {"debit", "withdrawal", "paid out", "money out", "dr"},
	"credit":      {"credit", "deposit", "paid in", "money in", "cr"},
	"balance":     {"balance", "running balance", "available balance", "bal"},
	"reference":   {"reference", "ref", "ref no", "reference no", "instrument no", "cheque no"},
}

// matchColumn returns the canonical column a header cell belongs to, or "".
func matchColumn(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return ""
	}
	for canonical, names := range columnSynonyms {
		for _, name := range names {
			if cell == name || strings.Contains(cell, name) {
				return canonical
			}
		}
	}
	return ""
}

// isHeaderRow reports whether a cell row looks like a transaction table
// header: it must name a date column and at least one money column.
func isHeaderRow(cells []string) bool {
	var hasDate, hasMoney bool
	for _, c := range cells {
		switch matchColumn(c) {
		case "date":
			hasDate = true
		case "amount", "debit", "credit", "balance":
			hasMoney = true
		}
	}
	return hasDate && hasMoney
}

// isHeaderLine is the free-text version of isHeaderRow, for text-layout
// documents where the header is a single line.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "date") {
		return false
	}
	hasDetails := strings.Contains(lower, "description") || strings.Contains(lower, "narration") ||
		strings.Contains(lower, "details") || strings.Contains(lower, "particulars") ||
		strings.Contains(lower, "paid")
	hasMoney := strings.Contains(lower, "amount") || strings.Contains(lower, "debit") ||
		strings.Contains(lower, "credit") || strings.Contains(lower, "balance") ||
		strings.Contains(lower, "paid") || strings.Contains(lower, "withdrawal") ||
		strings.Contains(lower, "deposit")
	return hasDetails && hasMoney
}

// Date-like and amount-like token recognition. These gate whether a row is
// emitted at all; actual parsing is the normalizer's job.
var (
	dateLikePattern = regexp.MustCompile(`(?i)\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b|` +
		`\b\d{4}-\d{1,2}-\d{1,2}\b|` +
		`\b\d{1,2}[\s-](?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s-]\d{2,4}\b`)
	amountLikePattern = regexp.MustCompile(`-?[₦£$€]?\s*\(?\d{1,3}(?:[,.\s]\d{3})*(?:[.,]\d{1,2})?\)?(?:\s*(?:CR|DR))?`)
	// strictAmountPattern requires a decimal part, for pulling amount
	// columns out of free text without swallowing reference numbers.
	strictAmountPattern = regexp.MustCompile(`-?[₦£$€]?\d{1,3}(?:,\d{3})*[.,]\d{2}\b`)
)

func looksLikeDate(s string) bool {
	return dateLikePattern.MatchString(s)
}

func looksLikeAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	m := amountLikePattern.FindString(s)
	// The whole cell must be the amount, not a token buried in text.
	return m != "" && len(m) == len(s)
}

// isSummaryLine filters footer/summary lines out of the table region. It is
// never applied to a line that parsed as a transaction row.
func isSummaryLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range []string{
		"opening balance", "closing balance", "total debit", "total credit",
		"total withdrawal", "total deposit", "statement period", "page ",
		"continued", "brought forward", "carried forward",
	} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isBalanceSummary reports whether a parsed row's description marks a
// balance carry line rather than a booking. Dated brought-forward rows parse
// like transactions but must not become one.
func isBalanceSummary(desc string) bool {
	lower := strings.ToLower(desc)
	for _, kw := range []string{
		"opening balance", "closing balance", "brought forward",
		"carried forward", "total debit", "total credit",
		"total withdrawal", "total deposit",
	} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
