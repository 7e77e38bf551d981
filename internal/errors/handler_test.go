package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpulse/internal/dataprocessing"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func handleAndDecode(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/summary", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleError_PipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "source not found",
			err:        fmt.Errorf("%w: jobs.csv", dataprocessing.ErrSourceNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   TypeDataNotFound,
		},
		{
			name:       "empty source",
			err:        fmt.Errorf("jobs.csv: %w", dataprocessing.ErrEmptySource),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataEmpty,
		},
		{
			name:       "schema error",
			err:        &dataprocessing.SchemaError{Missing: []string{"title", "categories"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataSchema,
		},
		{
			name:       "parse error",
			err:        &dataprocessing.ParseError{Source: "jobs.csv", Err: fmt.Errorf("bad quoting")},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataCorrupted,
		},
		{
			name:       "derivation error",
			err:        &dataprocessing.DerivationError{Row: 3, Column: "salary_minimum", Value: "lots"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataCorrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleAndDecode(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, body["type"])
		})
	}
}

func TestHandleError_SchemaErrorListsColumns(t *testing.T) {
	_, body := handleAndDecode(t, &dataprocessing.SchemaError{Missing: []string{"title", "categories"}})

	missing, ok := body["missing_columns"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"title", "categories"}, missing)
}

func TestHandleError_APIError(t *testing.T) {
	status, body := handleAndDecode(t, ErrValidation("min_exp", "must be a non-negative integer"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
}

func TestHandleError_ContextTimeout(t *testing.T) {
	status, body := handleAndDecode(t, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestHandleError_Unknown(t *testing.T) {
	status, body := handleAndDecode(t, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, TypeInternal, body["type"])
}

func TestHandleError_Nil(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Empty(t, rec.Body.String())
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/jobs/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(400, TypeValidation, "Validation Failed", "bad input", "/api/jobs").
		WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeValidation, decoded["type"])
	assert.Equal(t, float64(400), decoded["status"])
	assert.Equal(t, "abc-123", decoded["trace_id"])
}
