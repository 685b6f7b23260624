// Package normalizer turns raw extracted field tuples into the canonical
// statement: typed dates, exact decimal amounts, resolved directions, and
// reconciled opening/closing balances. It is the single convergence point
// for locally extracted rows and externally pre-extracted ones (the OCR
// collaborator hands over the same RawEntry shape).
package normalizer

import (
	"fmt"
	"strings"

	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Options carries everything beyond the raw entries themselves.
type Options struct {
	// Profile supplies locale hints and the issuer identity. Nil falls back
	// to the generic profile.
	Profile *bankprofile.Profile
	// OpeningText / ClosingText are explicit balance lines captured from
	// the document's summary region, still unparsed.
	OpeningText string
	ClosingText string
	// OpeningHint is a caller-declared opening balance, used only when the
	// document itself yields none.
	OpeningHint decimal.NullDecimal
}

// Normalize assembles a statement-in-progress from raw entries. Per-row
// failures drop the row and record a diagnostic; they never abort the whole
// statement. Transactions keep source order; issuers interleave
// corrections, so no re-sorting ever happens here.
func Normalize(entries []models.RawEntry, opts Options, diags *models.Diagnostics) *models.Statement {
	profile := opts.Profile
	if profile == nil {
		profile = bankprofile.Default().Generic()
	}
	hints := profile.Locale

	stmt := &models.Statement{
		Bank:     profile.Code,
		Currency: hints.Currency,
	}

	var prevBalance decimal.NullDecimal

	for i, e := range entries {
		// Adjacent exact duplicates come from adapters re-reading a row
		// across a page boundary. They are dropped on the raw fields, before
		// direction resolution: a re-read row sees a zero balance delta and
		// would resolve differently than the original. Non-adjacent repeats
		// are legitimate.
		if i > 0 && sameRawEntry(entries[i-1], e) {
			diags.DuplicatesDropped++
			diags.Warn(models.DiagDuplicateRow, "dropping adjacent duplicate row", e.Location)
			continue
		}

		date, err := ParseDate(e.DateText, hints.DateFormats)
		if err != nil {
			diags.DroppedDates++
			diags.Warn(models.DiagUnparseableDate,
				fmt.Sprintf("dropping row: %v", err), e.Location)
			continue
		}

		balance := parseOptional(e.BalanceText, hints)

		txn, ok := resolveAmount(e, hints, balance, prevBalance, diags)
		if !ok {
			continue
		}
		txn.Date = date
		txn.Description = collapseSpaces(e.Description)
		txn.Reference = strings.TrimSpace(e.Reference)
		txn.BalanceAfter = balance

		if balance.Valid {
			prevBalance = balance
		}

		stmt.Transactions = append(stmt.Transactions, txn)
	}

	resolveBalances(stmt, opts, hints, diags)
	resolvePeriod(stmt)
	return stmt
}

// resolveAmount determines the unsigned amount and direction of one entry.
// Preference order: separate debit/credit columns, then an explicitly
// signed single amount, then balance-delta inference (the lossiest path,
// always flagged).
func resolveAmount(e models.RawEntry, hints bankprofile.LocaleHints, balance, prevBalance decimal.NullDecimal, diags *models.Diagnostics) (models.Transaction, bool) {
	var txn models.Transaction

	// Separate debit/credit columns: direction is explicit.
	if d, err := ParseAmount(e.DebitText, hints); err == nil && !d.IsZero() {
		txn.Amount = d.Abs()
		txn.Direction = models.Debit
		return txn, true
	}
	if c, err := ParseAmount(e.CreditText, hints); err == nil && !c.IsZero() {
		txn.Amount = c.Abs()
		txn.Direction = models.Credit
		return txn, true
	}

	if strings.TrimSpace(e.AmountText) != "" {
		core, suffixDir, hasSuffix := splitDirectionSuffix(e.AmountText)
		amt, err := ParseAmount(core, hints)
		if err != nil {
			diags.DroppedAmounts++
			diags.Warn(models.DiagUnparseableAmount,
				fmt.Sprintf("dropping row: %v", err), e.Location)
			return txn, false
		}
		txn.Amount = amt.Abs()

		switch {
		case hasSuffix:
			txn.Direction = suffixDir
		case signedAmountText(core):
			// An explicit sign fixes the direction outright.
			if amt.Sign() < 0 {
				txn.Direction = models.Debit
			} else {
				txn.Direction = models.Credit
			}
		default:
			txn.Direction = inferFromBalance(amt, balance, prevBalance, e, diags)
		}
		return txn, true
	}

	// No amount column at all: the amount itself must come from the
	// running-balance delta.
	if balance.Valid && prevBalance.Valid {
		delta := balance.Decimal.Sub(prevBalance.Decimal)
		txn.Amount = delta.Abs()
		if delta.Sign() >= 0 {
			txn.Direction = models.Credit
		} else {
			txn.Direction = models.Debit
		}
		diags.InferredDirection++
		diags.Warn(models.DiagDirectionInferred, "amount and direction derived from balance delta", e.Location)
		return txn, true
	}

	diags.DroppedAmounts++
	diags.Warn(models.DiagUnparseableAmount, "dropping row: no parsable amount", e.Location)
	return txn, false
}

// inferFromBalance decides direction for an unsigned single-column amount.
// With a usable balance delta the delta decides; a zero delta is inherently
// ambiguous (e.g. a reversed fee) and is flagged rather than silently
// guessed. Without balances, an unsigned amount is taken as a credit.
func inferFromBalance(amt decimal.Decimal, balance, prevBalance decimal.NullDecimal, e models.RawEntry, diags *models.Diagnostics) models.Direction {
	if balance.Valid && prevBalance.Valid {
		delta := balance.Decimal.Sub(prevBalance.Decimal)
		diags.InferredDirection++
		switch delta.Sign() {
		case 1:
			diags.Warn(models.DiagDirectionInferred, "direction inferred from balance delta", e.Location)
			return models.Credit
		case -1:
			diags.Warn(models.DiagDirectionInferred, "direction inferred from balance delta", e.Location)
			return models.Debit
		default:
			diags.Warn(models.DiagDirectionAmbiguous,
				"consecutive rows share a running balance; direction defaulted to credit", e.Location)
			return models.Credit
		}
	}
	if amt.Sign() < 0 {
		return models.Debit
	}
	return models.Credit
}

// signedAmountText reports whether the amount text carried an explicit sign.
func signedAmountText(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))
}

// sameRawEntry compares the textual fields of two raw entries. Source
// location is ignored: a re-read row carries a different page and line.
func sameRawEntry(a, b models.RawEntry) bool {
	return a.DateText == b.DateText &&
		a.Description == b.Description &&
		a.AmountText == b.AmountText &&
		a.DebitText == b.DebitText &&
		a.CreditText == b.CreditText &&
		a.BalanceText == b.BalanceText
}

// resolveBalances fills opening and closing balances: explicit document
// values first, then derivation from running balances, then the caller's
// opening hint. A statement without any opening balance is a reportable
// limitation, not a failure.
func resolveBalances(stmt *models.Statement, opts Options, hints bankprofile.LocaleHints, diags *models.Diagnostics) {
	stmt.OpeningBalance = parseOptional(opts.OpeningText, hints)
	stmt.ClosingBalance = parseOptional(opts.ClosingText, hints)

	if !stmt.OpeningBalance.Valid {
		// Work backward from the first transaction carrying a balance.
		if first := firstWithBalance(stmt.Transactions); first >= 0 {
			opening := stmt.Transactions[first].BalanceAfter.Decimal
			for i := first; i >= 0; i-- {
				opening = opening.Sub(stmt.Transactions[i].Signed())
			}
			stmt.OpeningBalance = decimal.NewNullDecimal(opening)
		}
	}
	if !stmt.ClosingBalance.Valid {
		if last := lastWithBalance(stmt.Transactions); last >= 0 {
			closing := stmt.Transactions[last].BalanceAfter.Decimal
			for i := last + 1; i < len(stmt.Transactions); i++ {
				closing = closing.Add(stmt.Transactions[i].Signed())
			}
			stmt.ClosingBalance = decimal.NewNullDecimal(closing)
		}
	}

	if !stmt.OpeningBalance.Valid && opts.OpeningHint.Valid {
		stmt.OpeningBalance = opts.OpeningHint
	}
	if !stmt.ClosingBalance.Valid && stmt.OpeningBalance.Valid {
		stmt.ClosingBalance = decimal.NewNullDecimal(stmt.OpeningBalance.Decimal.Add(stmt.Sum()))
	}

	if !stmt.OpeningBalance.Valid {
		diags.Warn(models.DiagMissingOpeningBal,
			"no opening balance in document and none supplied", models.SourceLocation{})
	}
}

func resolvePeriod(stmt *models.Statement) {
	if len(stmt.Transactions) == 0 {
		return
	}
	stmt.PeriodFrom = stmt.Transactions[0].Date
	stmt.PeriodTo = stmt.Transactions[len(stmt.Transactions)-1].Date
	// Source order is preserved even when dates interleave, but the period
	// must still span all bookings.
	for _, t := range stmt.Transactions {
		if t.Date.Before(stmt.PeriodFrom) {
			stmt.PeriodFrom = t.Date
		}
		if t.Date.After(stmt.PeriodTo) {
			stmt.PeriodTo = t.Date
		}
	}
}

func firstWithBalance(txns []models.Transaction) int {
	for i, t := range txns {
		if t.BalanceAfter.Valid {
			return i
		}
	}
	return -1
}

func lastWithBalance(txns []models.Transaction) int {
	for i := len(txns) - 1; i >= 0; i-- {
		if txns[i].BalanceAfter.Valid {
			return i
		}
	}
	return -1
}

func parseOptional(s string, hints bankprofile.LocaleHints) decimal.NullDecimal {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}
	}
	d, err := ParseAmount(s, hints)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
