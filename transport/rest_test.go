package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestGetReturnsBodyAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("accept"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"balance":100}`))
	}))
	defer srv.Close()

	body, status, err := RestGet(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"balance":100}`, string(body))
}

func TestRestPostSendsJSONContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("content-type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"transactionId":"0.0.5-1-2"}`))
	}))
	defer srv.Close()

	body, status, err := RestPost(context.Background(), srv.Client(), srv.URL, []byte(`{"transaction":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"transactionId":"0.0.5-1-2"}`, string(body))
}
