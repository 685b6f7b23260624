// Package adapter implements the extraction adapters: one per document
// family, each turning extracted document content into an ordered stream of
// raw field tuples. Adapters never parse amounts into numbers and never
// decide debit/credit; sign inference needs whole-document context that
// only the normalizer has.
package adapter

import "github.com/bankstate/statement-engine/internal/models"

// Iterator is a lazy, finite, non-restartable sequence of raw entries.
// Rows that fail the minimum bar (a date-like token and an amount-like
// token) are skipped and counted, not raised.
type Iterator struct {
	next    func() (models.RawEntry, bool)
	skipped int
	located bool
}

// Next returns the next raw entry in source order. The second return is
// false once the sequence is exhausted.
func (it *Iterator) Next() (models.RawEntry, bool) {
	return it.next()
}

// Drain consumes the remainder of the sequence into a slice.
func (it *Iterator) Drain() []models.RawEntry {
	var entries []models.RawEntry
	for {
		e, ok := it.Next()
		if !ok {
			return entries
		}
		entries = append(entries, e)
	}
}

// Skipped reports how many candidate rows were dropped for failing the
// minimum bar. Only meaningful once the sequence is exhausted.
func (it *Iterator) Skipped() int {
	return it.skipped
}

// TableLocated reports whether a transaction table region was found at all.
// False after exhaustion means a structural failure upstream.
func (it *Iterator) TableLocated() bool {
	return it.located
}
