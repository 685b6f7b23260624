package detector

import (
	"regexp"
	"strings"
)

// features are the cheap structural signals detection reads from a document
// preview without parsing the body.
type features struct {
	lowered        string
	hasTableHeader bool // a date/description/amount-ish header row is present
	hasDebitCredit bool // separate debit and credit columns
}

var (
	tableHeaderPattern = regexp.MustCompile(`(?i)date.*(?:description|narration|details|particulars).*(?:amount|debit|credit|balance)`)
	debitCreditPattern = regexp.MustCompile(`(?i)debit.*credit`)
)

func extractFeatures(preview string) features {
	lowered := strings.ToLower(preview)
	return features{
		lowered:        lowered,
		hasTableHeader: tableHeaderPattern.MatchString(preview),
		hasDebitCredit: debitCreditPattern.MatchString(preview),
	}
}
