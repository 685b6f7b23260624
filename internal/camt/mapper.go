package camt

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/bankstate/statement-engine/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance reconciliation tolerances, in major currency units. The epsilon
// absorbs sub-unit rounding in source documents and is never widened; gaps
// beyond the ceiling mark the whole result invalid.
var (
	DefaultEpsilon = decimal.NewFromFloat(0.01)
	DefaultCeiling = decimal.NewFromFloat(1.00)
)

// Mapper serializes canonical statements into camt.053 renderings.
type Mapper struct {
	Epsilon decimal.Decimal
	Ceiling decimal.Decimal
	// Now is the clock used for message ids and creation timestamps;
	// overridable in tests.
	Now func() time.Time
}

// NewMapper returns a mapper with the default tolerances.
func NewMapper() *Mapper {
	return &Mapper{Epsilon: DefaultEpsilon, Ceiling: DefaultCeiling, Now: time.Now}
}

// Serialize builds the camt.053 message for a statement and renders it in
// the requested output kind. The balance invariant is re-checked before
// emission; a violation downgrades the validation status but the payload is
// still produced; the caller decides whether to reject it. Amounts are
// never adjusted to force agreement.
func (m *Mapper) Serialize(stmt *models.Statement, kind models.OutputKind) (*models.MappingResult, error) {
	doc := m.Build(stmt)

	result := &models.MappingResult{Format: kind}
	result.Validation, result.Violations = m.validate(stmt)

	var payload []byte
	var err error
	switch kind {
	case models.OutputJSON:
		payload, err = json.MarshalIndent(doc, "", "  ")
	case models.OutputXML, "":
		result.Format = models.OutputXML
		payload, err = xml.MarshalIndent(doc, "", "  ")
		if err == nil {
			payload = append([]byte(xml.Header), payload...)
		}
	default:
		return nil, fmt.Errorf("unsupported output kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", kind, err)
	}
	result.Payload = payload
	return result, nil
}

// Build maps a canonical statement onto the camt.053 structure.
func (m *Mapper) Build(stmt *models.Statement) *Document {
	now := m.Now().UTC()
	msgID := fmt.Sprintf("STMT-%s-%s", now.Format("20060102150405"), shortID())

	out := Stmt{
		ID:      msgID + "-1",
		CreDtTm: now.Format(time.RFC3339),
		Acct: Acct{
			ID:  AcctID{Othr: OthrID{ID: stmt.AccountNumber}},
			Ccy: stmt.Currency,
		},
	}
	if stmt.AccountName != "" {
		out.Acct.Ownr = &Ownr{Nm: stmt.AccountName}
	}
	if stmt.Bank != "" && stmt.Bank != models.BankUnknown {
		out.Acct.Svcr = &Svcr{FinInstnID: FinInstnID{Nm: stmt.Bank}}
	}
	if !stmt.PeriodFrom.IsZero() || !stmt.PeriodTo.IsZero() {
		out.FrToDt = &FrToDt{
			FrDtTm: stmt.PeriodFrom.Format("2006-01-02"),
			ToDtTm: stmt.PeriodTo.Format("2006-01-02"),
		}
	}

	if stmt.OpeningBalance.Valid {
		out.Bal = append(out.Bal, m.balance("OPBD", stmt.OpeningBalance.Decimal, stmt.Currency, stmt.PeriodFrom))
	}
	if stmt.ClosingBalance.Valid {
		out.Bal = append(out.Bal, m.balance("CLBD", stmt.ClosingBalance.Decimal, stmt.Currency, stmt.PeriodTo))
	}

	for i, t := range stmt.Transactions {
		ref := t.Reference
		if ref == "" {
			ref = fmt.Sprintf("%s-N%d", msgID, i+1)
		}
		out.Ntry = append(out.Ntry, Ntry{
			NtryRef:      ref,
			Amt:          Amt{Value: t.Amount.StringFixed(2), Ccy: stmt.Currency},
			CdtDbtInd:    string(t.Direction),
			Sts:          "BOOK",
			BookgDt:      BookgDt{Dt: t.Date.Format("2006-01-02")},
			AddtlNtryInf: t.Description,
		})
	}

	return &Document{
		Xmlns: Namespace,
		BkToCstmrStmt: BkToCstmrStmt{
			GrpHdr: GrpHdr{MsgID: msgID, CreDtTm: now.Format(time.RFC3339)},
			Stmt:   []Stmt{out},
		},
	}
}

// validate re-checks the statement balance invariant:
// opening + sum(signed amounts) == closing, within epsilon.
func (m *Mapper) validate(stmt *models.Statement) (models.ValidationStatus, []string) {
	gap, ok := stmt.BalanceGap()
	if !ok {
		// Without both balances the invariant cannot be checked at all;
		// that is a degraded result, not an invalid one.
		return models.StatusValidWithWarnings,
			[]string{"balance invariant unverifiable: opening or closing balance undefined"}
	}

	abs := gap.Abs()
	switch {
	case abs.LessThanOrEqual(m.Epsilon):
		return models.StatusValid, nil
	case abs.LessThanOrEqual(m.Ceiling):
		return models.StatusValidWithWarnings, []string{
			fmt.Sprintf("balance mismatch of %s exceeds epsilon %s", abs.String(), m.Epsilon.String()),
		}
	default:
		return models.StatusInvalid, []string{
			fmt.Sprintf("balance mismatch of %s exceeds ceiling %s", abs.String(), m.Ceiling.String()),
		}
	}
}

// balance renders one balance block. Negative balances flip the indicator
// and carry the magnitude, per the camt.053 convention.
func (m *Mapper) balance(code string, amount decimal.Decimal, ccy string, date time.Time) Bal {
	ind := "CRDT"
	if amount.Sign() < 0 {
		ind = "DBIT"
	}
	b := Bal{
		Tp:        BalTp{CdOrPrtry: CdOrPrtry{Cd: code}},
		Amt:       Amt{Value: amount.Abs().StringFixed(2), Ccy: ccy},
		CdtDbtInd: ind,
	}
	if !date.IsZero() {
		b.Dt = BalDt{Dt: date.Format("2006-01-02")}
	}
	return b
}

func shortID() string {
	return uuid.NewString()[:8]
}

// ParseJSON decodes a JSON rendering back into the document structure. The
// projection is lossless, so a decoded document re-serializes to the same
// XML entry sequence, amounts, and balances.
func ParseJSON(payload []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decoding camt json: %w", err)
	}
	return &doc, nil
}

// ParseXML decodes an XML rendering back into the document structure.
func ParseXML(payload []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decoding camt xml: %w", err)
	}
	return &doc, nil
}
