package engine

import "testing"

func TestFindAccountNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"nuban", "Account Number: 0123456789\nBranch: Lagos", "0123456789"},
		{"legacy eight digit", "Account No: 01234567", "01234567"},
		{"nuban wins over legacy", "Old: 01234567 New: 0123456789", "0123456789"},
		{"none", "Dear customer, welcome", ""},
		{"not buried in longer number", "Card: 012345678901234567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findAccountNumber(tt.text); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFindAccountName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"colon label", "Account Name: ADAEZE OKAFOR\n", "ADAEZE OKAFOR"},
		{"holder label", "Account Holder - CHUKWUEMEKA EZE", "CHUKWUEMEKA EZE"},
		{"columned layout", "Customer Name  NGOZI ADICHIE  Branch  Ikeja", "NGOZI ADICHIE"},
		{"missing", "Statement of Account\n01/03/2024", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findAccountName(tt.text); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFindSummaryBalances(t *testing.T) {
	text := `Statement Period: 01/03/2024 - 31/03/2024
Opening Balance                100,000.00
01/03/2024 SALARY 500,000.00 600,000.00
Balance Carried Forward        450,000.00`

	opening, closing := findSummaryBalances(text)
	if opening != "100,000.00" {
		t.Errorf("opening: got %q, want 100,000.00", opening)
	}
	if closing != "450,000.00" {
		t.Errorf("closing: got %q, want 450,000.00", closing)
	}
}

func TestFindSummaryBalancesAbsent(t *testing.T) {
	opening, closing := findSummaryBalances("01/03/2024 SALARY 500,000.00")
	if opening != "" || closing != "" {
		t.Errorf("got (%q, %q), want empty", opening, closing)
	}
}

func TestLastAmountOnLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"trailing amount", "Closing Balance 450,000.00", "450,000.00"},
		{"skips page number", "Closing balance continued on page 2", ""},
		{"negative", "Opening Balance -5,000.00", "-5,000.00"},
		{"currency marker", "Opening Balance ₦100,000.00", "₦100,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastAmountOnLine(tt.line); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
