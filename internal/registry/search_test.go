package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUnion_DedupesByLEI(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/vnd.api+json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"id": "LEI1",
					"attributes": map[string]interface{}{
						"legalName": map[string]interface{}{"name": "ACME Inc."},
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000}, nil)
	records := c.SearchUnion(context.Background(), "ACME Inc")

	require.Len(t, records, 1)
	assert.Equal(t, "LEI1", records[0].LEI)
	assert.True(t, atomic.LoadInt32(&calls) > 1, "expected multiple queries across filter shapes")
}

func TestSearchUnion_SkipsFailingQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000, MaxRetries: 0}, nil)
	records := c.SearchUnion(context.Background(), "ACME Inc")
	assert.Empty(t, records)
}
