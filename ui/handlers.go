package ui

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"sheettint/adapters/excel"
	"sheettint/app"
	"sheettint/domain/table"
	apperrors "sheettint/internal/errors"
)

const (
	maxUploadBytes = 32 << 20
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// handleColourize accepts a multipart upload (file + instruction string +
// optional column lists) and streams back the colourized workbook.
//
// Form fields:
//
//	file          the .xlsx or .csv to colourize (required)
//	instructions  the instruction string, e.g. "M 5.0 m 10.0 C g c r p 10.0 s b o 1 O 0" (required)
//	columns       comma-separated column names to colourize; levels of a
//	              composite name are separated by "/" (default: all columns)
//	exclude       comma-separated column names to skip (only with the
//	              all-columns path)
//	summary       "true" to append a statistics sheet per input sheet
//	autofit       "false" to skip column autofit (default: on)
func (a *App) handleColourize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	instructions := r.FormValue("instructions")
	if instructions == "" {
		instructions = a.config.DefaultInstructions
	}
	if instructions == "" {
		http.Error(w, "missing instructions field", http.StatusBadRequest)
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer upload.Close()

	jobID := uuid.NewString()
	log.Printf("[UI] Colourize job %s: file=%s size=%d", jobID, header.Filename, header.Size)

	var writer *excel.Writer
	var tables map[string]*table.Table

	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".xlsx":
		f, err := excelize.OpenReader(upload)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to open workbook: %v", err), http.StatusBadRequest)
			return
		}
		writer = excel.NewWriter(f)
		tables, err = excel.TablesFromWorkbook(f, excel.ReaderConfig{HeaderRows: a.config.HeaderRows})
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to parse workbook: %v", err), http.StatusBadRequest)
			return
		}
	case ".csv":
		writer, tables, err = excel.MaterializeCSV(upload, excel.ReaderConfig{HeaderRows: a.config.HeaderRows})
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to parse CSV: %v", err), http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unsupported file extension %q", ext), http.StatusBadRequest)
		return
	}
	defer writer.Close()

	modifier := app.NewModifier(writer)
	modifier.SetSheets(tables)

	columns := parseColumnList(r.FormValue("columns"))
	if len(columns) > 0 {
		err = modifier.ColourizeColumns(r.Context(), columns, instructions)
	} else {
		err = modifier.ColourizeAll(r.Context(), instructions, parseColumnList(r.FormValue("exclude")))
	}
	if err != nil {
		respondError(w, err)
		return
	}

	if parseBool(r.FormValue("summary"), false) {
		if err := app.NewSummarizer(writer).Summarize(tables); err != nil {
			respondError(w, err)
			return
		}
	}
	if parseBool(r.FormValue("autofit"), true) {
		if err := modifier.AutofitSheets(); err != nil {
			respondError(w, err)
			return
		}
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", name+"-colourized.xlsx"))
	if err := writer.WriteTo(w); err != nil {
		log.Printf("[UI] Colourize job %s: streaming failed: %v", jobID, err)
	}
}

// parseColumnList splits a comma-separated column list; "/" separates the
// levels of a composite name.
func parseColumnList(list string) []table.ColumnID {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var ids []table.ColumnID
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			levels := strings.Split(part, "/")
			for i := range levels {
				levels[i] = strings.TrimSpace(levels[i])
			}
			ids = append(ids, table.Composite(levels...))
		} else {
			ids = append(ids, table.Simple(part))
		}
	}
	return ids
}

func parseBool(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// respondError maps application errors onto HTTP statuses: bad instructions
// are the client's fault, everything else is ours.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if apperrors.GetCode(err) == apperrors.CodeInstructionInvalid {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
