package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankstate/statement-engine/internal/bankprofile"
	"github.com/bankstate/statement-engine/internal/engine"
	"github.com/bankstate/statement-engine/internal/models"
)

const version = "1.0.0"

func main() {
	// CLI flags
	bankFlag := flag.String("bank", "", "Issuer code, e.g. gtbank, zenith_bank (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format extension)")
	formatFlag := flag.String("format", "xml", "Output format: xml or json")
	openingFlag := flag.String("opening-balance", "", "Opening balance to use when the document carries none")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement to camt.053 Converter

Converts bank statement documents (PDF, XLSX, CSV) into ISO 20022
camt.053 bank-to-customer statements, rendered as XML or JSON.

Usage:
  statement-engine [flags] <input.pdf|input.xlsx|input.csv> [input2 ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect issuer and convert to XML
  statement-engine statement.pdf

  # Declare the issuer and emit JSON
  statement-engine --bank=gtbank --format=json statement.xlsx

  # Supply the opening balance when the document has none
  statement-engine --opening-balance=100000.00 statement.csv

Supported Issuers:
`)
		for _, p := range bankprofile.Default().All() {
			if p.Code == models.BankUnknown {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %-14s %s\n", p.Code, p.DisplayName)
		}
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-engine v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *bankFlag != "" && bankprofile.Default().Lookup(*bankFlag) == nil {
		fatalf("Unknown issuer code %q. Run with --help for the supported list.\n", *bankFlag)
	}

	output := models.OutputXML
	switch strings.ToLower(*formatFlag) {
	case "xml":
	case "json":
		output = models.OutputJSON
	default:
		fatalf("Unknown format %q. Use xml or json.\n", *formatFlag)
	}

	var opening decimal.NullDecimal
	if *openingFlag != "" {
		d, err := decimal.NewFromString(*openingFlag)
		if err != nil {
			fatalf("Invalid opening balance %q\n", *openingFlag)
		}
		opening = decimal.NewNullDecimal(d)
	}

	eng := engine.New()

	// Process each input file
	for _, inputPath := range flag.Args() {
		if err := processFile(eng, inputPath, *bankFlag, opening, output, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(eng *engine.Engine, inputPath, bank string, opening decimal.NullDecimal, output models.OutputKind, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var kind models.FileKind
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		kind = models.KindPDF
	case ".xlsx", ".xls", ".csv":
		kind = models.KindTabular
	default:
		return fmt.Errorf("unsupported file extension %q", filepath.Ext(inputPath))
	}

	fmt.Printf("Processing: %s\n", inputPath)

	result, err := eng.Convert(engine.Request{
		Document: data,
		Kind:     kind,
		Hints:    engine.Hints{Bank: bank, OpeningBalance: opening},
		Output:   output,
	})
	if err != nil {
		return err
	}

	d := result.Diagnostics
	fmt.Printf("  Detected bank: %s (confidence %.2f)\n", d.Detection.Bank, d.Detection.Confidence)
	fmt.Printf("  Validation: %s\n", result.Validation)
	if d.UnparsedRows > 0 {
		fmt.Printf("  Unparsed rows: %d\n", d.UnparsedRows)
	}
	if d.InferredDirection > 0 {
		fmt.Printf("  Directions inferred from balance deltas: %d\n", d.InferredDirection)
	}
	for _, w := range d.Warnings {
		fmt.Printf("  Warning [%s]: %s\n", w.Code, w.Message)
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + string(result.Format)
	}
	if err := os.WriteFile(outPath, result.Payload, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
