// Package api exposes the conversion engine over HTTP. It is a thin layer:
// all semantics live in the engine, the handlers only move bytes and
// aggregate per-file results.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankstate/statement-engine/internal/engine"
	"github.com/bankstate/statement-engine/internal/models"
)

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	Engine   *engine.Engine
	Log      zerolog.Logger
	MaxBatch int
}

// FileResult is the outcome for one uploaded file.
type FileResult struct {
	Filename     string             `json:"filename"`
	Status       string             `json:"status"`
	Bank         string             `json:"bank,omitempty"`
	Confidence   float64            `json:"confidence,omitempty"`
	Validation   string             `json:"validation,omitempty"`
	Transactions int                `json:"transactionCount,omitempty"`
	Diagnostics  *models.Diagnostics `json:"diagnostics,omitempty"`
	Payload      json.RawMessage    `json:"payload,omitempty"` // JSON rendering
	PayloadXML   string             `json:"payloadXml,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// UploadResponse aggregates a batch upload.
type UploadResponse struct {
	Status     string       `json:"status"`
	TotalFiles int          `json:"totalFiles"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []FileResult `json:"results"`
}

// ConvertEntriesRequest is the pre-extracted entry point: the external OCR
// collaborator posts entries in the RawEntry shape and the normalizer takes
// over from there.
type ConvertEntriesRequest struct {
	Bank           string            `json:"bank,omitempty"`
	OpeningBalance string            `json:"openingBalance,omitempty"`
	AccountNumber  string            `json:"accountNumber,omitempty"`
	AccountName    string            `json:"accountName,omitempty"`
	Output         string            `json:"output,omitempty"`
	Entries        []models.RawEntry `json:"entries"`
}

// Register mounts the routes.
func (h *Handler) Register(app *fiber.App) {
	v1 := app.Group("/api/v1")
	v1.Get("/health", h.handleHealth)
	v1.Post("/upload-statement", h.handleUpload)
	v1.Post("/convert-entries", h.handleConvertEntries)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) handleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded; use form field 'files'")
	}
	if len(files) > h.MaxBatch {
		return fiber.NewError(fiber.StatusBadRequest, "batch limit exceeded")
	}

	hints := engine.Hints{
		Bank:          c.FormValue("bank"),
		AccountNumber: c.FormValue("account_number"),
		AccountName:   c.FormValue("account_name"),
	}
	if ob := c.FormValue("opening_balance"); ob != "" {
		d, err := decimal.NewFromString(ob)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid opening_balance")
		}
		hints.OpeningBalance = decimal.NewNullDecimal(d)
	}
	output := outputKind(c.FormValue("output"))

	resp := UploadResponse{TotalFiles: len(files)}
	for _, fh := range files {
		result := h.convertFile(fh.Filename, func() ([]byte, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return io.ReadAll(f)
		}, hints, output)

		if result.Error == "" {
			resp.Successful++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, result)
	}

	resp.Status = "completed"
	if resp.Successful == 0 {
		resp.Status = "failed"
	} else if resp.Failed > 0 {
		resp.Status = "partial"
	}
	return c.JSON(resp)
}

func (h *Handler) convertFile(name string, read func() ([]byte, error), hints engine.Hints, output models.OutputKind) FileResult {
	result := FileResult{Filename: name}

	kind, ok := kindFromName(name)
	if !ok {
		result.Status = "failed"
		result.Error = "unsupported file type"
		return result
	}

	data, err := read()
	if err != nil {
		result.Status = "failed"
		result.Error = "reading upload: " + err.Error()
		return result
	}

	mr, err := h.Engine.Convert(engine.Request{
		Document: data,
		Kind:     kind,
		Hints:    hints,
		Output:   output,
	})
	if err != nil {
		h.Log.Warn().Str("file", name).Err(err).Msg("conversion failed")
		result.Status = "failed"
		result.Error = err.Error()
		if errors.Is(err, engine.ErrUnsupportedKind) || errors.Is(err, engine.ErrInvalidInput) {
			result.Error = "invalid request: " + err.Error()
		}
		return result
	}

	fillResult(&result, mr)
	return result
}

func (h *Handler) handleConvertEntries(c *fiber.Ctx) error {
	var req ConvertEntriesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if len(req.Entries) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no entries supplied")
	}

	hints := engine.Hints{
		Bank:          req.Bank,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	}
	if req.OpeningBalance != "" {
		d, err := decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid openingBalance")
		}
		hints.OpeningBalance = decimal.NewNullDecimal(d)
	}

	mr, err := h.Engine.Convert(engine.Request{
		RawEntries: req.Entries,
		Hints:      hints,
		Output:     outputKind(req.Output),
	})
	if err != nil {
		if errors.Is(err, engine.ErrExtractionFailed) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var result FileResult
	result.Filename = "entries"
	fillResult(&result, mr)
	return c.JSON(result)
}

func fillResult(result *FileResult, mr *models.MappingResult) {
	result.Status = "processed"
	result.Bank = mr.Detection.Bank
	result.Confidence = mr.Detection.Confidence
	result.Validation = string(mr.Validation)
	diags := mr.Diagnostics
	result.Diagnostics = &diags
	if mr.Format == models.OutputJSON {
		result.Payload = json.RawMessage(mr.Payload)
	} else {
		result.PayloadXML = string(mr.Payload)
	}
}

func kindFromName(name string) (models.FileKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.KindPDF, true
	case ".xlsx", ".xls", ".csv":
		return models.KindTabular, true
	default:
		return "", false
	}
}

func outputKind(s string) models.OutputKind {
	if strings.EqualFold(s, "json") {
		return models.OutputJSON
	}
	return models.OutputXML
}
