package adapter

import (
	"strings"

	"github.com/bankstate/statement-engine/internal/extractor"
	"github.com/bankstate/statement-engine/internal/models"
)

// headerScanDepth limits how deep into a sheet the header row is searched.
// Statement exports put banners and account metadata above the table.
const headerScanDepth = 15

// NewGridIterator streams raw entries out of spreadsheet sheets. The table
// is located by a header row matching column-name synonyms; sheets without
// one fall back to positional guessing. Sheet boundaries do not reset entry
// order.
func NewGridIterator(sheets []extractor.Sheet) *Iterator {
	s := &gridState{sheets: sheets}
	it := &Iterator{}
	it.next = func() (models.RawEntry, bool) { return s.advance(it) }
	return it
}

type gridState struct {
	sheets []extractor.Sheet
	sheet  int
	row    int
	cols   map[string]int
	ready  bool
}

func (s *gridState) advance(it *Iterator) (models.RawEntry, bool) {
	for s.sheet < len(s.sheets) {
		rows := s.sheets[s.sheet].Rows

		if !s.ready {
			s.cols, s.row = locateHeader(rows)
			if s.cols == nil {
				s.cols = guessColumns(rows)
				s.row = 0
			}
			if s.cols != nil {
				it.located = true
			}
			s.ready = true
		}

		for s.row < len(rows) {
			row := rows[s.row]
			loc := models.SourceLocation{Page: s.sheet + 1, Row: s.row + 1}
			s.row++

			if s.cols == nil || emptyRow(row) {
				continue
			}
			entry, ok := mapRow(row, s.cols, loc)
			if !ok {
				if !emptyRow(row) && !isSummaryLine(strings.Join(row, " ")) {
					it.skipped++
				}
				continue
			}
			return entry, true
		}

		s.sheet++
		s.ready = false
	}
	return models.RawEntry{}, false
}

// locateHeader scans the top of the sheet for a row naming a date column
// and a money column. Returns the canonical-column index map and the index
// of the first data row.
func locateHeader(rows [][]string) (map[string]int, int) {
	depth := len(rows)
	if depth > headerScanDepth {
		depth = headerScanDepth
	}
	for i := 0; i < depth; i++ {
		if !isHeaderRow(rows[i]) {
			continue
		}
		cols := make(map[string]int)
		for j, cell := range rows[i] {
			if canonical := matchColumn(cell); canonical != "" {
				if _, seen := cols[canonical]; !seen {
					cols[canonical] = j
				}
			}
		}
		return cols, i + 1
	}
	return nil, 0
}

// guessColumns builds a positional fallback map from the first row that
// looks like data: the first date-like cell is the date, the last amount-like
// cell the balance, the first amount-like cell the amount, and the longest
// non-numeric cell the description.
func guessColumns(rows [][]string) map[string]int {
	for _, row := range rows {
		var dateIdx, amtFirst, amtLast, descIdx = -1, -1, -1, -1
		descLen := 0
		for j, cell := range row {
			switch {
			case dateIdx < 0 && looksLikeDate(cell):
				dateIdx = j
			case looksLikeAmount(cell):
				if amtFirst < 0 {
					amtFirst = j
				}
				amtLast = j
			case len(cell) > descLen:
				descIdx, descLen = j, len(cell)
			}
		}
		if dateIdx < 0 || amtFirst < 0 {
			continue
		}
		cols := map[string]int{"date": dateIdx, "amount": amtFirst}
		if amtLast > amtFirst {
			cols["balance"] = amtLast
		}
		if descIdx >= 0 {
			cols["description"] = descIdx
		}
		return cols
	}
	return nil
}

// mapRow projects one data row through the column map. The minimum bar is a
// date-like date cell plus at least one amount-like money cell.
func mapRow(row []string, cols map[string]int, loc models.SourceLocation) (models.RawEntry, bool) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	entry := models.RawEntry{
		DateText:    cell("date"),
		Description: cell("description"),
		AmountText:  cell("amount"),
		DebitText:   cell("debit"),
		CreditText:  cell("credit"),
		BalanceText: cell("balance"),
		Reference:   cell("reference"),
		Location:    loc,
	}

	if !looksLikeDate(entry.DateText) {
		return models.RawEntry{}, false
	}
	hasAmount := looksLikeAmount(entry.AmountText) ||
		looksLikeAmount(entry.DebitText) || looksLikeAmount(entry.CreditText)
	if !hasAmount {
		return models.RawEntry{}, false
	}
	return entry, true
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
