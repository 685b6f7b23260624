// Package models defines the canonical data model shared by every stage of
// the conversion pipeline: raw extracted entries, the detection result, the
// normalized statement, and the serialized mapping result.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the debit/credit indicator of a transaction. Amounts are
// stored unsigned with an explicit direction so the sign convention is
// encoded exactly once.
type Direction string

const (
	Debit  Direction = "DBIT"
	Credit Direction = "CRDT"
)

// LayoutArchetype tags the broad structural family of a statement document.
// Extraction adapters are selected by archetype, not by bank.
type LayoutArchetype string

const (
	// LayoutTextTable covers text-layout documents (PDF text) where the
	// transaction table is reconstructed from lines.
	LayoutTextTable LayoutArchetype = "text-table"
	// LayoutGrid covers row/column documents (spreadsheets, CSV exports)
	// where cells are already separated.
	LayoutGrid LayoutArchetype = "grid"
	// LayoutGeneric is the best-effort fallback when detection fails.
	LayoutGeneric LayoutArchetype = "generic"
)

// FileKind is the caller-declared document family.
type FileKind string

const (
	KindPDF     FileKind = "pdf"
	KindTabular FileKind = "tabular"
)

// SourceLocation points back at where in the source document a raw entry
// came from, for diagnostics.
type SourceLocation struct {
	Page int `json:"page"` // page or sheet index, 1-based
	Row  int `json:"row"`  // line or row within the page, 1-based
}

// RawEntry is a positional, untyped field tuple extracted from a document.
// All fields are text exactly as they appeared; the normalizer owns parsing.
type RawEntry struct {
	DateText    string         `json:"dateText"`
	Description string         `json:"description"`
	AmountText  string         `json:"amountText"`
	DebitText   string         `json:"debitText,omitempty"`  // set when the source has separate debit/credit columns
	CreditText  string         `json:"creditText,omitempty"` // set when the source has separate debit/credit columns
	BalanceText string         `json:"balanceText,omitempty"`
	Reference   string         `json:"reference,omitempty"`
	Location    SourceLocation `json:"location"`
}

// DetectionResult is the outcome of scoring a document against the bank
// profile registry.
type DetectionResult struct {
	Bank       string          `json:"bank"` // issuer code, or "unknown"
	Archetype  LayoutArchetype `json:"archetype"`
	Confidence float64         `json:"confidence"` // normalized [0,1]
	Matched    []string        `json:"matched,omitempty"`
}

// Unknown reports whether detection failed to identify an issuer.
func (d DetectionResult) Unknown() bool {
	return d.Bank == "" || d.Bank == BankUnknown
}

// BankUnknown is the issuer code used when no profile scores above the
// detection threshold.
const BankUnknown = "unknown"

// Transaction is one canonical statement entry. Immutable once assembled
// into a Statement.
type Transaction struct {
	Date         time.Time           `json:"date"`
	Amount       decimal.Decimal     `json:"amount"` // unsigned; see Direction
	Direction    Direction           `json:"direction"`
	Description  string              `json:"description"`
	Reference    string              `json:"reference,omitempty"`
	BalanceAfter decimal.NullDecimal `json:"balanceAfter,omitempty"` // running balance after booking, when the source carried one
}

// Signed returns the amount with the direction applied: credits positive,
// debits negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Statement is the canonical normalized statement, the unit of serialization.
type Statement struct {
	AccountNumber  string              `json:"accountNumber,omitempty"`
	AccountName    string              `json:"accountName,omitempty"`
	Bank           string              `json:"bank"` // issuer code
	Currency       string              `json:"currency"`
	PeriodFrom     time.Time           `json:"periodFrom"`
	PeriodTo       time.Time           `json:"periodTo"`
	OpeningBalance decimal.NullDecimal `json:"openingBalance"`
	ClosingBalance decimal.NullDecimal `json:"closingBalance"`
	Transactions   []Transaction       `json:"transactions"` // chronological source order
}

// Sum returns the sum of signed transaction amounts.
func (s *Statement) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Transactions {
		total = total.Add(t.Signed())
	}
	return total
}

// BalanceGap returns closing - (opening + sum) when both balances are known.
// The boolean is false when either balance is undefined.
func (s *Statement) BalanceGap() (decimal.Decimal, bool) {
	if !s.OpeningBalance.Valid || !s.ClosingBalance.Valid {
		return decimal.Zero, false
	}
	expected := s.OpeningBalance.Decimal.Add(s.Sum())
	return s.ClosingBalance.Decimal.Sub(expected), true
}

// OutputKind selects the serialization rendering.
type OutputKind string

const (
	OutputXML  OutputKind = "xml"
	OutputJSON OutputKind = "json"
)

// ValidationStatus classifies the balance-consistency outcome at
// serialization time.
type ValidationStatus string

const (
	StatusValid             ValidationStatus = "valid"
	StatusValidWithWarnings ValidationStatus = "valid-with-warnings"
	StatusInvalid           ValidationStatus = "invalid"
)

// MappingResult is the engine's final output: the rendered payload plus the
// validation status and accumulated diagnostics.
type MappingResult struct {
	Format     OutputKind       `json:"format"`
	Payload    []byte           `json:"payload"`
	Validation ValidationStatus `json:"validation"`
	Violations []string         `json:"violations,omitempty"`
	Diagnostics
}

// Diagnostics accumulates per-row and degraded-confidence conditions across
// the pipeline. These are reported, never raised.
type Diagnostics struct {
	Detection         DetectionResult `json:"detection"`
	UnparsedRows      int             `json:"unparsedRows"`
	DroppedDates      int             `json:"droppedDates"`
	DroppedAmounts    int             `json:"droppedAmounts"`
	DuplicatesDropped int             `json:"duplicatesDropped"`
	InferredDirection int             `json:"inferredDirection"`
	Warnings          []Diagnostic    `json:"warnings,omitempty"`
}

// Diagnostic is one recorded condition with enough context to trace it back
// to the source document.
type Diagnostic struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Location SourceLocation `json:"location,omitempty"`
}

// Diagnostic codes.
const (
	DiagUnparseableDate      = "unparseable-date"
	DiagUnparseableAmount    = "unparseable-amount"
	DiagDuplicateRow         = "duplicate-row"
	DiagDirectionInferred    = "direction-inferred"
	DiagDirectionAmbiguous   = "direction-ambiguous"
	DiagUnknownBank          = "unknown-bank"
	DiagMissingOpeningBal    = "missing-opening-balance"
	DiagBalanceMismatch      = "balance-mismatch"
)

// Warn appends a diagnostic warning.
func (d *Diagnostics) Warn(code, message string, loc SourceLocation) {
	d.Warnings = append(d.Warnings, Diagnostic{Code: code, Message: message, Location: loc})
}
