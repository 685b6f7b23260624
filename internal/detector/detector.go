// Package detector scores a document preview against the bank profile
// registry and picks the best-matching issuer and layout archetype.
package detector

import (
	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/models"
)

// DefaultThreshold is the minimum confidence below which the issuer is
// reported as unknown.
const DefaultThreshold = 0.3

// Detector holds the read-only inputs of detection. Detection itself is a
// pure function: same preview text in, same result out.
type Detector struct {
	Registry  *bankprofile.Registry
	Threshold float64
}

// New returns a detector over the given registry. A zero threshold falls
// back to DefaultThreshold.
func New(reg *bankprofile.Registry, threshold float64) *Detector {
	if reg == nil {
		reg = bankprofile.Default()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{Registry: reg, Threshold: threshold}
}

// Detect scores the preview text against every profile. Each matched
// signature contributes its weight; unmatched signatures contribute nothing.
// The highest aggregate score picks the winner; normalizing against the
// profile's maximum happens only for the reported confidence, so profiles
// whose weights sum past 1.0 are ranked fairly. Ties go to the profile with
// fewer required columns. Detection never fails: below the threshold the
// issuer degrades to "unknown" with a generic archetype so extraction can
// still attempt a best-effort parse.
func (d *Detector) Detect(preview string, kind models.FileKind) models.DetectionResult {
	feats := extractFeatures(preview)

	var best *bankprofile.Profile
	var bestScore, bestConfidence float64
	var bestMatched []string

	for _, p := range d.Registry.All() {
		if len(p.Signatures) == 0 {
			continue // the generic profile never competes
		}
		var score float64
		var matched []string
		for _, s := range p.Signatures {
			if s.Pattern.MatchString(feats.lowered) {
				score += s.Weight
				matched = append(matched, s.Name)
			}
		}
		if score == 0 {
			continue
		}
		confidence := score
		if max := p.MaxScore(); max > 0 {
			confidence = score / max
		}
		switch {
		case best == nil || score > bestScore:
			best, bestScore, bestConfidence, bestMatched = p, score, confidence, matched
		case score == bestScore && p.RequiredColumns < best.RequiredColumns:
			// Structurally simpler archetype wins the tie to avoid
			// over-fitting a sparse match.
			best, bestConfidence, bestMatched = p, confidence, matched
		}
	}

	if best == nil || bestConfidence < d.Threshold {
		return models.DetectionResult{
			Bank:       models.BankUnknown,
			Archetype:  genericArchetype(kind, feats),
			Confidence: bestConfidence,
			Matched:    bestMatched,
		}
	}

	return models.DetectionResult{
		Bank:       best.Code,
		Archetype:  best.Archetype,
		Confidence: bestConfidence,
		Matched:    bestMatched,
	}
}

// genericArchetype picks the fallback layout from the declared kind and the
// observed structure.
func genericArchetype(kind models.FileKind, feats features) models.LayoutArchetype {
	if kind == models.KindTabular {
		return models.LayoutGrid
	}
	if feats.hasTableHeader || feats.hasDebitCredit {
		return models.LayoutTextTable
	}
	return models.LayoutGeneric
}
