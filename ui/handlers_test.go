package ui

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheettint/domain/table"
)

func scoreWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "score"))
	for i, v := range []float64{10, 20, 30, 40, 100} {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, contents []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleColourize_WorkbookUpload(t *testing.T) {
	app := NewApp(Config{Port: "0"})

	body, contentType := multipartUpload(t, "scores.xlsx", scoreWorkbook(t), map[string]string{
		"instructions": "M 20 m 0 C g c r p 50 s u o 1 O 0",
		"columns":      "score",
		"autofit":      "false",
	})

	req := httptest.NewRequest(http.MethodPost, "/colourize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "scores-colourized.xlsx")

	out, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer out.Close()

	// 100 sits in the upper margin: data row 4 plus the row offset is A6
	styled, err := out.GetCellStyle("Sheet1", "A6")
	require.NoError(t, err)
	assert.NotZero(t, styled)

	value, err := out.GetCellValue("Sheet1", "A6")
	require.NoError(t, err)
	assert.Equal(t, "100", value)

	// 10 is outside the margin and stays unstyled
	unstyled, err := out.GetCellStyle("Sheet1", "A2")
	require.NoError(t, err)
	assert.Zero(t, unstyled)
}

func TestHandleColourize_CSVUploadWithSummary(t *testing.T) {
	app := NewApp(Config{Port: "0"})

	csv := []byte("score\n10\n20\n30\n40\n100\n")
	body, contentType := multipartUpload(t, "scores.csv", csv, map[string]string{
		"instructions": "M 20 m 0 C g c r p 50 s u o 1 O 0",
		"summary":      "true",
	})

	req := httptest.NewRequest(http.MethodPost, "/colourize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer out.Close()

	assert.Contains(t, out.GetSheetList(), "Sheet1 Summary")

	styled, err := out.GetCellStyle("Sheet1", "A6")
	require.NoError(t, err)
	assert.NotZero(t, styled)
}

func TestHandleColourize_BadRequests(t *testing.T) {
	app := NewApp(Config{Port: "0"})

	t.Run("missing instructions", func(t *testing.T) {
		body, contentType := multipartUpload(t, "scores.xlsx", scoreWorkbook(t), nil)
		req := httptest.NewRequest(http.MethodPost, "/colourize", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid instructions", func(t *testing.T) {
		body, contentType := multipartUpload(t, "scores.xlsx", scoreWorkbook(t), map[string]string{
			"instructions": "M 5.0 s b",
		})
		req := httptest.NewRequest(http.MethodPost, "/colourize", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing key")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		body, contentType := multipartUpload(t, "scores.txt", []byte("x"), map[string]string{
			"instructions": "M 5 m 5 C g c r p 10 s b o 0 O 0",
		})
		req := httptest.NewRequest(http.MethodPost, "/colourize", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	app := NewApp(Config{Port: "0"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestParseColumnList(t *testing.T) {
	ids := parseColumnList("mean, missing, A / mean")
	require.Len(t, ids, 3)
	assert.True(t, ids[0].Equal(table.Simple("mean")))
	assert.True(t, ids[1].Equal(table.Simple("missing")))
	assert.True(t, ids[2].Equal(table.Composite("A", "mean")))

	assert.Nil(t, parseColumnList("  "))
}
