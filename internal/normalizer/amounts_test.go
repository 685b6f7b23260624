package normalizer

import (
	"testing"

	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"₦1,234.56", "1234.56", false},
		{"NGN 2,000.00", "2000", false},
		{"-25.99", "-25.99", false},
		{"(500.00)", "-500", false},
		{"₦1,234,567.89", "1234567.89", false},
		{"0.00", "0", false},
		{" 25.99 ", "25.99", false},
		{"1 234.56", "1234.56", false},
		{"", "", true},
		{"N/A", "", true},
		{"₦", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input, bankprofile.LocaleHints{})
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got.String(), tt.expected)
			}
		})
	}
}

func TestParseAmountCommaDecimalLocale(t *testing.T) {
	hints := bankprofile.LocaleHints{DecimalSep: ",", ThousandsSep: "."}

	tests := []struct {
		input    string
		expected string
	}{
		{"1.234,56", "1234.56"},
		{"1.234.567,89", "1234567.89"},
		{"-500,00", "-500"},
		{"€2.000,00", "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input, hints)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got.String(), tt.expected)
			}
		})
	}
}

func TestSplitDirectionSuffix(t *testing.T) {
	tests := []struct {
		input     string
		wantCore  string
		wantDir   models.Direction
		wantFound bool
	}{
		{"5,000.00 CR", "5,000.00", models.Credit, true},
		{"5,000.00 DR", "5,000.00", models.Debit, true},
		{"1,000.00 dr", "1,000.00", models.Debit, true},
		{"1,234.56CR", "1,234.56", models.Credit, true},
		{"1,234.56dr", "1,234.56", models.Debit, true},
		{"5,000.00", "5,000.00", "", false},
		{"CR", "CR", "", false},
		{"CREDIT TRANSFER", "CREDIT TRANSFER", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			core, dir, found := splitDirectionSuffix(tt.input)
			if core != tt.wantCore || dir != tt.wantDir || found != tt.wantFound {
				t.Errorf("got (%q, %q, %v), want (%q, %q, %v)",
					core, dir, found, tt.wantCore, tt.wantDir, tt.wantFound)
			}
		})
	}
}
