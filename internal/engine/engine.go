// Package engine wires the pipeline together: detect, extract, normalize,
// serialize. Convert is the sole entry point the API and CLI layers call.
// A conversion is a pure unit of work: the engine performs no network or
// disk I/O of its own, and concurrent conversions share nothing but the
// read-only profile registry.
package engine

import (
	"fmt"
	"strings"

	"github.com/bankstate/statement-engine/internal/adapter"
	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/camt"
	"github.com/bankstate/statement-engine/internal/detector"
	"github.com/bankstate/statement-engine/internal/extractor"
	"github.com/bankstate/statement-engine/internal/models"
	"github.com/bankstate/statement-engine/internal/normalizer"
	"github.com/shopspring/decimal"
)

// previewPages / previewRows bound how much of a document detection reads.
const (
	previewPages = 2
	previewRows  = 10
)

// Hints are optional caller-supplied facts that short-circuit or complete
// parts of the pipeline.
type Hints struct {
	// Bank skips detection when it names a registered profile.
	Bank string
	// OpeningBalance supplies the opening balance when the document itself
	// carries none.
	OpeningBalance decimal.NullDecimal
	// AccountNumber / AccountName override document metadata extraction.
	AccountNumber string
	AccountName   string
}

// Request is one conversion unit of work: either document bytes with a
// declared kind, or a pre-extracted entry list from the external OCR
// collaborator.
type Request struct {
	Document []byte
	Kind     models.FileKind
	// RawEntries bypasses detection and extraction entirely; the entries
	// feed the normalizer directly.
	RawEntries []models.RawEntry
	Hints      Hints
	Output     models.OutputKind
}

// Engine holds the immutable collaborators of the pipeline.
type Engine struct {
	registry *bankprofile.Registry
	detector *detector.Detector
	mapper   *camt.Mapper
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry substitutes the profile registry.
func WithRegistry(r *bankprofile.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithDetectionThreshold sets the minimum detection confidence.
func WithDetectionThreshold(t float64) Option {
	return func(e *Engine) { e.detector = detector.New(e.registry, t) }
}

// WithTolerances sets the balance reconciliation epsilon and ceiling.
func WithTolerances(epsilon, ceiling decimal.Decimal) Option {
	return func(e *Engine) {
		e.mapper.Epsilon = epsilon
		e.mapper.Ceiling = ceiling
	}
}

// New builds an engine over the default registry, detector, and mapper.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: bankprofile.Default(),
		mapper:   camt.NewMapper(),
	}
	e.detector = detector.New(e.registry, 0)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convert runs the full pipeline for one document and returns the rendered
// camt.053 result with accumulated diagnostics. Only structural failures
// return an error; everything recoverable is reported in the diagnostics.
func (e *Engine) Convert(req Request) (*models.MappingResult, error) {
	var diags models.Diagnostics

	var entries []models.RawEntry
	var opts normalizer.Options
	var docText string

	switch {
	case len(req.RawEntries) > 0:
		// Pre-extracted path: the collaborator already did extraction, so
		// detection is whatever the caller declared.
		entries = req.RawEntries
		diags.Detection = e.declaredDetection(req.Hints.Bank)

	case len(req.Document) > 0:
		var err error
		entries, docText, err = e.extract(req, &diags)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: no document bytes and no raw entries", ErrInvalidInput)
	}

	profile := e.profileFor(diags.Detection.Bank)
	if diags.Detection.Unknown() {
		diags.Warn(models.DiagUnknownBank,
			fmt.Sprintf("no bank profile matched (confidence %.2f); using generic layout", diags.Detection.Confidence),
			models.SourceLocation{})
	}

	opts.Profile = profile
	opts.OpeningHint = req.Hints.OpeningBalance
	if docText != "" {
		opts.OpeningText, opts.ClosingText = findSummaryBalances(docText)
	}

	stmt := normalizer.Normalize(entries, opts, &diags)
	if len(stmt.Transactions) == 0 {
		return nil, fmt.Errorf("%w: zero valid transactions after normalization", ErrExtractionFailed)
	}

	e.fillAccount(stmt, docText, req.Hints)

	result, err := e.mapper.Serialize(stmt, req.Output)
	if err != nil {
		return nil, err
	}
	if result.Validation != models.StatusValid {
		for _, v := range result.Violations {
			diags.Warn(models.DiagBalanceMismatch, v, models.SourceLocation{})
		}
	}
	result.Diagnostics = diags
	return result, nil
}

// extract runs detection and the adapter for a raw document, returning the
// raw entries plus the full document text for metadata scanning.
func (e *Engine) extract(req Request, diags *models.Diagnostics) ([]models.RawEntry, string, error) {
	switch req.Kind {
	case models.KindPDF:
		pages, err := extractor.PDFPages(req.Document)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		diags.Detection = e.detect(req.Hints.Bank, previewText(pages), req.Kind)

		it := adapter.NewTextIterator(pages)
		entries := it.Drain()
		diags.UnparsedRows = it.Skipped()
		if !it.TableLocated() {
			return nil, "", fmt.Errorf("%w: no transaction table region located", ErrExtractionFailed)
		}
		return entries, strings.Join(pages, "\n"), nil

	case models.KindTabular:
		sheets, err := extractor.TabularSheets(req.Document)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		diags.Detection = e.detect(req.Hints.Bank, extractor.TabularPreview(req.Document, previewRows), req.Kind)

		it := adapter.NewGridIterator(sheets)
		entries := it.Drain()
		diags.UnparsedRows = it.Skipped()
		if !it.TableLocated() {
			return nil, "", fmt.Errorf("%w: no transaction table region located", ErrExtractionFailed)
		}
		return entries, sheetsText(sheets), nil

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedKind, req.Kind)
	}
}

// detect honors a declared bank before scoring the preview.
func (e *Engine) detect(declaredBank, preview string, kind models.FileKind) models.DetectionResult {
	if declaredBank != "" {
		if d := e.declaredDetection(declaredBank); !d.Unknown() {
			return d
		}
	}
	return e.detector.Detect(preview, kind)
}

// declaredDetection builds the detection result for a caller-declared bank:
// full confidence when the profile exists, unknown otherwise.
func (e *Engine) declaredDetection(bank string) models.DetectionResult {
	if p := e.registry.Lookup(bank); p != nil && bank != models.BankUnknown {
		return models.DetectionResult{
			Bank:       p.Code,
			Archetype:  p.Archetype,
			Confidence: 1.0,
			Matched:    []string{"declared"},
		}
	}
	return models.DetectionResult{Bank: models.BankUnknown, Archetype: models.LayoutGeneric}
}

func (e *Engine) profileFor(bank string) *bankprofile.Profile {
	if p := e.registry.Lookup(bank); p != nil {
		return p
	}
	return e.registry.Generic()
}

// fillAccount sets account identity from hints first, document text second.
func (e *Engine) fillAccount(stmt *models.Statement, docText string, hints Hints) {
	stmt.AccountNumber = hints.AccountNumber
	stmt.AccountName = hints.AccountName
	if docText == "" {
		return
	}
	if stmt.AccountNumber == "" {
		stmt.AccountNumber = findAccountNumber(docText)
	}
	if stmt.AccountName == "" {
		stmt.AccountName = findAccountName(docText)
	}
}

func previewText(pages []string) string {
	if len(pages) > previewPages {
		pages = pages[:previewPages]
	}
	return strings.Join(pages, "\n")
}

func sheetsText(sheets []extractor.Sheet) string {
	var b strings.Builder
	for _, s := range sheets {
		for _, row := range s.Rows {
			b.WriteString(strings.Join(row, "  "))
			b.WriteString("\n")
		}
	}
	return b.String()
}
