package adapter

import (
	"strings"

	"github.com/bankstate/statement-engine/internal/models"
)

// NewTextIterator streams raw entries out of text-layout pages (PDF text).
// It locates the table region by header line or first date-led row, walks
// lines in source order across page boundaries, and folds continuation
// lines into the preceding entry's description.
func NewTextIterator(pages []string) *Iterator {
	s := &textState{}
	for p, page := range pages {
		for r, line := range strings.Split(page, "\n") {
			s.lines = append(s.lines, textLine{
				text: normalizeLine(line),
				loc:  models.SourceLocation{Page: p + 1, Row: r + 1},
			})
		}
	}

	it := &Iterator{}
	it.next = func() (models.RawEntry, bool) { return s.advance(it) }
	return it
}

type textLine struct {
	text string
	loc  models.SourceLocation
}

type textState struct {
	lines   []textLine
	pos     int
	inTable bool
	pending *models.RawEntry
}

// advance walks lines until it can emit one entry. A parsed row is held
// pending until the next date row (or end of input) so that continuation
// lines can still be appended to its description.
func (s *textState) advance(it *Iterator) (models.RawEntry, bool) {
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		s.pos++
		line := ln.text

		if line == "" {
			continue
		}

		if isHeaderLine(line) {
			s.inTable = true
			it.located = true
			continue
		}

		dated := startsWithDateToken(line)
		if !s.inTable && !dated {
			continue
		}
		if dated {
			s.inTable = true
			it.located = true
		}

		if dated {
			// Summary keywords are only checked after the row fails to
			// parse: a booking description may legitimately contain words
			// like PAGE or CONTINUED.
			entry, ok := parseTextRow(line, ln.loc)
			if !ok {
				if !isSummaryLine(line) {
					it.skipped++
				}
				continue
			}
			if isBalanceSummary(entry.Description) {
				continue
			}
			if prev := s.pending; prev != nil {
				s.pending = &entry
				return *prev, true
			}
			s.pending = &entry
			continue
		}

		if isSummaryLine(line) {
			continue
		}

		// In-table line without a date: continuation of the pending entry,
		// or an unparseable row if it carries an amount on its own.
		if s.pending != nil {
			s.pending.Description += " " + line
			continue
		}
		if strictAmountPattern.MatchString(line) {
			it.skipped++
		}
	}

	if s.pending != nil {
		e := *s.pending
		s.pending = nil
		return e, true
	}
	return models.RawEntry{}, false
}

// normalizeLine cleans common PDF extraction artifacts.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\u200B", "")  // zero-width space
	line = strings.ReplaceAll(line, "\u00A0", " ") // non-breaking space
	return strings.TrimSpace(line)
}

// startsWithDateToken reports whether a date-like token appears at the very
// start of the line (a small offset is tolerated for stray markers).
func startsWithDateToken(line string) bool {
	loc := dateLikePattern.FindStringIndex(line)
	return loc != nil && loc[0] < 3
}

// parseTextRow splits one table line into its raw fields: a leading date
// token, trailing amount columns, and the description between them. Rows
// without at least one trailing amount fail the minimum bar.
func parseTextRow(line string, loc models.SourceLocation) (models.RawEntry, bool) {
	dloc := dateLikePattern.FindStringIndex(line)
	if dloc == nil || dloc[0] >= 3 {
		return models.RawEntry{}, false
	}
	dateText := line[dloc[0]:dloc[1]]
	rest := strings.TrimSpace(line[dloc[1]:])

	matches := strictAmountPattern.FindAllStringIndex(rest, -1)
	if len(matches) == 0 {
		return models.RawEntry{}, false
	}
	// The amount columns sit at the end of the line; anything before them
	// is description text, which may itself contain plain integers.
	last := matches[len(matches)-1]
	if len(rest)-last[1] > 2 {
		return models.RawEntry{}, false
	}
	// At most the trailing three matches are columns (out / in / balance).
	cols := matches
	if len(cols) > 3 {
		cols = cols[len(cols)-3:]
	}
	// Column group must be contiguous at the tail: drop leading candidates
	// separated from the rest by description text.
	for len(cols) > 1 && !isColumnGap(rest[cols[0][1]:cols[1][0]]) {
		cols = cols[1:]
	}

	entry := models.RawEntry{
		DateText: dateText,
		Location: loc,
	}
	amounts := make([]string, 0, 3)
	for _, c := range cols {
		amounts = append(amounts, strings.TrimSpace(rest[c[0]:c[1]]))
	}
	entry.Description = strings.TrimSpace(rest[:cols[0][0]])

	switch len(amounts) {
	case 3:
		// Out, in, balance: the usual full-width row.
		entry.DebitText = amounts[0]
		entry.CreditText = amounts[1]
		entry.BalanceText = amounts[2]
	case 2:
		// One amount column plus the running balance. Which column the
		// amount came from is not recoverable from text alone; the
		// normalizer infers direction from the balance delta.
		entry.AmountText = amounts[0]
		entry.BalanceText = amounts[1]
	case 1:
		entry.AmountText = amounts[0]
	}
	return entry, true
}

// isColumnGap reports whether the text between two amount candidates is
// just column whitespace.
func isColumnGap(gap string) bool {
	return strings.TrimSpace(gap) == ""
}
