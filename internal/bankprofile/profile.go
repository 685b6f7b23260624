// Package bankprofile holds the static pattern library: one profile per
// issuer describing how its statements look. Profiles are data, not code:
// adding a bank means adding a profile, never a new branch.
package bankprofile

import (
	"regexp"

	"github.com/bankstate/statement-engine/internal/models"
)

// Signature is one weighted detection pattern. A matched signature adds its
// weight to the profile's score; an unmatched one contributes nothing, since
// issuers vary their templates over time.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  float64
}

// LocaleHints carries the per-issuer parsing conventions the normalizer
// needs to turn text into typed values.
type LocaleHints struct {
	// DateFormats in preference order, Go reference-time layouts.
	DateFormats []string
	// DecimalSep and ThousandsSep describe the amount notation, e.g. "." and
	// "," for 1,234.56 or "," and "." for 1.234,56.
	DecimalSep   string
	ThousandsSep string
	// Currency is the ISO 4217 default when the document does not state one.
	Currency string
}

// Profile describes one issuer's statement layout and detection signatures.
// Immutable after registry load.
type Profile struct {
	Code        string // issuer code, e.g. "gtbank"
	DisplayName string
	Signatures  []Signature
	Archetype   models.LayoutArchetype
	// RequiredColumns is the number of columns the archetype needs; used as
	// the tie-break (fewer columns wins, to avoid over-fitting).
	RequiredColumns int
	Locale          LocaleHints
}

// MaxScore is the aggregate weight of all signatures, the normalization
// denominator for confidence.
func (p *Profile) MaxScore() float64 {
	var total float64
	for _, s := range p.Signatures {
		total += s.Weight
	}
	return total
}

// NewSignature compiles a case-insensitive detection signature. It panics on
// an invalid pattern, so profile definitions fail at load, not at detection.
func NewSignature(name, pattern string, weight float64) Signature {
	return Signature{Name: name, Pattern: regexp.MustCompile(`(?i)` + pattern), Weight: weight}
}

func sig(name, pattern string, weight float64) Signature {
	return NewSignature(name, pattern, weight)
}
