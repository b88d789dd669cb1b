package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbonduro/crudapp/internal/domain"
)

func TestRespond(t *testing.T) {
	var nilItem *domain.Item

	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"nil", http.StatusNoContent, nil, ""},
		{"nil pointer", http.StatusOK, nilItem, ""},
		{"empty slice", http.StatusOK, []*domain.Item{}, ""},
		{"empty map", http.StatusOK, map[string]string{}, ""},
		{"envelope without data", http.StatusOK, success("Successfully deleted one item.", nil),
			`{"status":"Success","msg":"Successfully deleted one item."}` + "\n"},
		{"failure", http.StatusInternalServerError, failure("Internal server error."),
			`{"status":"Failed","msg":"Internal server error."}` + "\n"},
		{"map", http.StatusOK, map[string]string{"status": "ok"}, `{"status":"ok"}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond(rec, discardLogger, tt.status, tt.data)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			if tt.wantBody == "" {
				assert.Empty(t, rec.Header().Get("Content-Type"))
			} else {
				assert.Equal(t, jsonContentType, rec.Header().Get("Content-Type"))
			}
		})
	}
}
