package engine

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankstate/statement-engine/internal/camt"
	"github.com/bankstate/statement-engine/internal/models"
)

func sampleEntries() []models.RawEntry {
	return []models.RawEntry{
		{
			DateText:    "01/03/2024",
			Description: "SALARY PAYMENT MARCH",
			CreditText:  "500,000.00",
			BalanceText: "600,000.00",
		},
		{
			DateText:    "05/03/2024",
			Description: "RENT TRANSFER",
			DebitText:   "150,000.00",
			BalanceText: "450,000.00",
		},
	}
}

func TestConvertRawEntries(t *testing.T) {
	eng := New()

	result, err := eng.Convert(Request{
		RawEntries: sampleEntries(),
		Hints: Hints{
			Bank:           "gtbank",
			OpeningBalance: decimal.NewNullDecimal(decimal.NewFromInt(100000)),
			AccountNumber:  "0123456789",
			AccountName:    "ADAEZE OKAFOR",
		},
		Output: models.OutputJSON,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusValid, result.Validation)
	assert.Equal(t, "gtbank", result.Detection.Bank)
	assert.Equal(t, 1.0, result.Detection.Confidence)
	assert.Empty(t, result.Warnings)

	doc, err := camt.ParseJSON(result.Payload)
	require.NoError(t, err)
	require.Len(t, doc.BkToCstmrStmt.Stmt, 1)
	stmt := doc.BkToCstmrStmt.Stmt[0]

	assert.Equal(t, "0123456789", stmt.Acct.ID.Othr.ID)
	require.Len(t, stmt.Bal, 2)
	assert.Equal(t, "100000.00", stmt.Bal[0].Amt.Value)
	assert.Equal(t, "450000.00", stmt.Bal[1].Amt.Value)
	require.Len(t, stmt.Ntry, 2)
	assert.Equal(t, "CRDT", stmt.Ntry[0].CdtDbtInd)
	assert.Equal(t, "DBIT", stmt.Ntry[1].CdtDbtInd)
}

func TestConvertRawEntriesWithoutBankWarns(t *testing.T) {
	eng := New()

	result, err := eng.Convert(Request{RawEntries: sampleEntries()})
	require.NoError(t, err)

	assert.Equal(t, models.BankUnknown, result.Detection.Bank)
	var found bool
	for _, w := range result.Diagnostics.Warnings {
		if w.Code == models.DiagUnknownBank {
			found = true
		}
	}
	assert.True(t, found, "expected an unknown-bank warning")
}

func TestConvertCSVDocument(t *testing.T) {
	csvDoc := strings.Join([]string{
		"Zenith Bank Plc,,,,",
		"Account Number,0123456789,,,",
		"Date,Narration,Debit,Credit,Balance",
		"01/03/2024,SALARY PAYMENT MARCH,,\"500,000.00\",\"600,000.00\"",
		"05/03/2024,RENT TRANSFER,\"150,000.00\",,\"450,000.00\"",
	}, "\n")

	eng := New()
	result, err := eng.Convert(Request{
		Document: []byte(csvDoc),
		Kind:     models.KindTabular,
		Hints:    Hints{OpeningBalance: decimal.NewNullDecimal(decimal.NewFromInt(100000))},
		Output:   models.OutputXML,
	})
	require.NoError(t, err)

	assert.Equal(t, "zenith_bank", result.Detection.Bank)
	assert.Equal(t, models.StatusValid, result.Validation)

	doc, err := camt.ParseXML(result.Payload)
	require.NoError(t, err)
	stmt := doc.BkToCstmrStmt.Stmt[0]
	assert.Equal(t, "0123456789", stmt.Acct.ID.Othr.ID)
	require.Len(t, stmt.Ntry, 2)
}

func TestConvertUsesSummaryBalanceLines(t *testing.T) {
	// Explicit opening/closing lines outside the table take precedence over
	// derivation from the running-balance column.
	csvDoc := strings.Join([]string{
		"GTBank Statement,,,",
		"Opening Balance,,,\"100,000.00\"",
		"Date,Narration,Amount,Balance",
		"01/03/2024,TRANSFER IN,\"50,000.00\",\"150,000.00\"",
		"Closing Balance,,,\"150,000.00\"",
	}, "\n")

	eng := New()
	result, err := eng.Convert(Request{
		Document: []byte(csvDoc),
		Kind:     models.KindTabular,
	})
	require.NoError(t, err)

	assert.Equal(t, "gtbank", result.Detection.Bank)
	assert.Equal(t, models.StatusValid, result.Validation)

	doc, err := camt.ParseXML(result.Payload)
	require.NoError(t, err)
	require.Len(t, doc.BkToCstmrStmt.Stmt[0].Bal, 2)
	assert.Equal(t, "100000.00", doc.BkToCstmrStmt.Stmt[0].Bal[0].Amt.Value)
}

func TestConvertUnknownHeaderLayout(t *testing.T) {
	// Headers no profile knows: detection degrades to unknown, extraction
	// still proceeds positionally, and rows that fit no shape are reported.
	csvDoc := strings.Join([]string{
		"When,What Happened,How Much,Left Over",
		"01/03/2024,SALARY PAYMENT,\"500,000.00\",\"600,000.00\"",
		"05/03/2024,RENT TRANSFER,\"150,000.00\",\"450,000.00\"",
	}, "\n")

	result, err := New().Convert(Request{
		Document: []byte(csvDoc),
		Kind:     models.KindTabular,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BankUnknown, result.Detection.Bank)
	assert.Less(t, result.Detection.Confidence, 0.3)
	var warned bool
	for _, w := range result.Diagnostics.Warnings {
		if w.Code == models.DiagUnknownBank {
			warned = true
		}
	}
	assert.True(t, warned, "expected an unknown-bank warning")

	doc, err := camt.ParseXML(result.Payload)
	require.NoError(t, err)
	assert.Len(t, doc.BkToCstmrStmt.Stmt[0].Ntry, 2)
	// The header row itself fails the minimum bar under positional guessing.
	assert.Equal(t, 1, result.Diagnostics.UnparsedRows)
}

func TestConvertEmptyRequest(t *testing.T) {
	_, err := New().Convert(Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertUnsupportedKind(t *testing.T) {
	_, err := New().Convert(Request{Document: []byte("x"), Kind: "docx"})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestConvertZeroParsableEntriesFails(t *testing.T) {
	entries := []models.RawEntry{
		{DateText: "not a date", Description: "JUNK", AmountText: "1.00"},
	}
	_, err := New().Convert(Request{RawEntries: entries})
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

// mismatchCSV carries explicit summary balances that contradict the
// transaction sum by far more than the ceiling.
var mismatchCSV = strings.Join([]string{
	"GTBank Statement,,,",
	"Opening Balance,,,\"999,999.00\"",
	"Date,Narration,Amount,Balance",
	"01/03/2024,TRANSFER IN,\"50,000.00\",",
	"Closing Balance,,,\"150,000.00\"",
}, "\n")

func TestConvertBalanceMismatchStillProducesPayload(t *testing.T) {
	eng := New()
	result, err := eng.Convert(Request{
		Document: []byte(mismatchCSV),
		Kind:     models.KindTabular,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusInvalid, result.Validation)
	assert.NotEmpty(t, result.Payload)
	var found bool
	for _, w := range result.Diagnostics.Warnings {
		if w.Code == models.DiagBalanceMismatch {
			found = true
		}
	}
	assert.True(t, found, "expected a balance-mismatch warning")
}

func TestConvertDeclaredBankOverridesDetection(t *testing.T) {
	csvDoc := strings.Join([]string{
		"Date,Narration,Amount,Balance",
		"01/03/2024,TRANSFER,\"50,000.00\",\"150,000.00\"",
	}, "\n")

	result, err := New().Convert(Request{
		Document: []byte(csvDoc),
		Kind:     models.KindTabular,
		Hints:    Hints{Bank: "uba"},
	})
	require.NoError(t, err)
	assert.Equal(t, "uba", result.Detection.Bank)
	assert.Equal(t, []string{"declared"}, result.Detection.Matched)
}

func TestConvertTolerancesOption(t *testing.T) {
	// With a widened epsilon the same mismatch becomes acceptable.
	eng := New(WithTolerances(decimal.NewFromInt(1000000), decimal.NewFromInt(2000000)))
	result, err := eng.Convert(Request{
		Document: []byte(mismatchCSV),
		Kind:     models.KindTabular,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusValid, result.Validation)
}
