package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeGet_ParsesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.api+json", r.Header.Get("Accept"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000}, nil)
	body, status, _ := c.safeGet(context.Background(), url.Values{"page[size]": {"1"}})
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body)
}

func TestSafeGet_NonJSONBodyReturnsNilWithStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000}, nil)
	body, status, snippet := c.safeGet(context.Background(), url.Values{})
	assert.Nil(t, body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "not json", snippet)
}

func TestSafeGet_4xxReturnsNilBodyAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestsPerMinute: 6000}, nil)
	body, status, snippet := c.safeGet(context.Background(), url.Values{})
	assert.Nil(t, body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "bad request", snippet)
}
