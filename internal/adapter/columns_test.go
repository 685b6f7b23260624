package adapter

import "testing"

func TestMatchColumn(t *testing.T) {
	tests := []struct {
		cell     string
		expected string
	}{
		{"Date", "date"},
		{"Trans Date", "date"},
		{"VALUE DATE", "date"},
		{"Narration", "description"},
		{"Transaction Details", "description"},
		{"Withdrawal", "debit"},
		{"Money Out", "debit"},
		{"Deposit", "credit"},
		{"Paid In", "credit"},
		{"Running Balance", "balance"},
		{"Ref No", "reference"},
		{"", ""},
		{"Branch", ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			if got := matchColumn(tt.cell); got != tt.expected {
				t.Errorf("matchColumn(%q): got %q, want %q", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		expected bool
	}{
		{"full header", []string{"Date", "Narration", "Debit", "Credit", "Balance"}, true},
		{"date and amount", []string{"Txn Date", "Amount"}, true},
		{"date only", []string{"Date", "Branch"}, false},
		{"money only", []string{"Debit", "Credit"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHeaderRow(tt.cells); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"01/03/2024", true},
		{"1/3/24", true},
		{"2024-03-01", true},
		{"05-Mar-2024", true},
		{"5 Mar 2024", true},
		{"SALARY PAYMENT", false},
		{"1,000.00", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := looksLikeDate(tt.input); got != tt.expected {
				t.Errorf("looksLikeDate(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLooksLikeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1,000.00", true},
		{"₦500,000.00", true},
		{"-25.99", true},
		{"(300.00)", true},
		{"5,000.00 CR", true},
		{"100", true},
		{"REF 1,000.00 PAYMENT", false},
		{"SALARY", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := looksLikeAmount(tt.input); got != tt.expected {
				t.Errorf("looksLikeAmount(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSummaryLine(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Opening Balance: 100,000.00", true},
		{"CLOSING BALANCE 450,000.00", true},
		{"Balance brought forward", true},
		{"Page 2 of 5", true},
		{"01/03/2024 SALARY PAYMENT 500,000.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isSummaryLine(tt.input); got != tt.expected {
				t.Errorf("isSummaryLine(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
