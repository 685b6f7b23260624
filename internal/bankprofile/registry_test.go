package bankprofile

import (
	"math"
	"testing"

	"github.com/bankstate/statement-engine/internal/models"
)

func TestBuiltinProfilesComplete(t *testing.T) {
	wantCodes := []string{
		"gtbank", "access_bank", "zenith_bank", "uba",
		"first_bank", "stanbic_ibtc", "fidelity_bank", "union_bank",
	}

	reg := Default()
	for _, code := range wantCodes {
		t.Run(code, func(t *testing.T) {
			p := reg.Lookup(code)
			if p == nil {
				t.Fatalf("profile %q not registered", code)
			}
			if len(p.Signatures) == 0 {
				t.Error("profile has no detection signatures")
			}
			if p.MaxScore() <= 0 {
				t.Error("profile has zero max score")
			}
			if len(p.Locale.DateFormats) == 0 {
				t.Error("profile has no date formats")
			}
			if p.Locale.Currency != "NGN" {
				t.Errorf("currency: got %q, want NGN", p.Locale.Currency)
			}
			if p.RequiredColumns <= 0 {
				t.Error("profile has no required column count")
			}
		})
	}
}

func TestLookupUnknownCode(t *testing.T) {
	if p := Default().Lookup("hogwarts_savings"); p != nil {
		t.Errorf("got %+v, want nil", p)
	}
}

func TestGenericProfile(t *testing.T) {
	g := Default().Generic()
	if g == nil {
		t.Fatal("generic profile missing")
	}
	if g.Code != models.BankUnknown {
		t.Errorf("code: got %q, want %q", g.Code, models.BankUnknown)
	}
	if g.Archetype != models.LayoutGeneric {
		t.Errorf("archetype: got %q, want generic", g.Archetype)
	}
	if len(g.Signatures) != 0 {
		t.Error("generic profile must not compete in detection")
	}
}

func TestSwapReplacesRegistryAtomically(t *testing.T) {
	original := Default()
	defer Swap(original)

	custom := NewRegistry([]*Profile{{
		Code:        "testbank",
		DisplayName: "Test Bank",
		Signatures:  []Signature{NewSignature("name", `test\s*bank`, 1.0)},
		Archetype:   models.LayoutGrid,
	}})
	Swap(custom)

	if Default().Lookup("testbank") == nil {
		t.Error("swapped-in profile not visible")
	}
	if Default().Lookup("gtbank") != nil {
		t.Error("old registry still visible after swap")
	}

	// A snapshot taken before the swap stays internally consistent.
	if original.Lookup("gtbank") == nil {
		t.Error("pre-swap snapshot lost its profiles")
	}
}

func TestMaxScore(t *testing.T) {
	p := &Profile{Signatures: []Signature{
		NewSignature("a", `a`, 0.5),
		NewSignature("b", `b`, 0.3),
	}}
	if got := p.MaxScore(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("got %f, want 0.8", got)
	}
}
