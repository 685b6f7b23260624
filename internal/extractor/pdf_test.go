package extractor

import "testing"

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{
			"statement text",
			[]string{"GTBank Statement of Account\nDate Narration Debit Credit Balance\n01/03/2024 SALARY 500,000.00"},
			true,
		},
		{
			"too short",
			[]string{"Bank"},
			false,
		},
		{
			"encoding garbage",
			[]string{"ÞþÃ±ØåßüýþÃ±ØåßüýþÃ±ØåßüýþÃ±ØåßüýþÃ±ØåßüýþÃ±Øåßü"},
			false,
		},
		{
			"readable but not a statement",
			[]string{"the quick brown fox jumps over the lazy dog again and again and again and again"},
			false,
		},
		{
			"empty",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReadableText(tt.pages); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality([]string{"Account Balance 1,234.56"}); q < 0.99 {
		t.Errorf("clean text quality: got %f", q)
	}
	if q := textQuality([]string{"ÞþÃ±"}); q > 0.1 {
		t.Errorf("garbage quality: got %f", q)
	}
	if q := textQuality(nil); q != 0 {
		t.Errorf("empty quality: got %f", q)
	}
	// The naira sign counts as readable even though it is not ASCII.
	if q := textQuality([]string{"₦₦₦₦"}); q != 1 {
		t.Errorf("naira quality: got %f", q)
	}
}

func TestPDFPagesRejectsGarbage(t *testing.T) {
	if _, err := PDFPages([]byte("not a pdf at all")); err == nil {
		t.Error("expected an error for non-PDF bytes")
	}
	if _, err := PDFPages(nil); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestPDFPreviewDegrades(t *testing.T) {
	if got := PDFPreview([]byte("not a pdf"), 2); got != "" {
		t.Errorf("preview of unreadable input: got %q, want empty", got)
	}
}
