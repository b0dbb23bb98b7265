package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/distledger/ledger-go/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccountRESTOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/0.0.500", r.URL.Path)
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"account": "0.0.500",
			"balance": {"balance": "1500", "timestamp": "1700000000.000000001", "tokens": []},
			"memo": "hi",
			"deleted": false
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1", "", nil)
	got, err := c.GetAccount(context.Background(), ids.EntityID{Shard: 0, Realm: 0, Num: 500})
	require.NoError(t, err)
	assert.Equal(t, "0.0.500", got.AccountID)
	assert.EqualValues(t, 1500, got.Balance.Balance)
	assert.Equal(t, "hi", got.Memo)
	assert.False(t, got.Deleted)
}

func TestGetAccountHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"_status":{"messages":[{"message":"not found"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1", "", nil)
	_, err := c.GetAccount(context.Background(), ids.EntityID{Shard: 0, Realm: 0, Num: 999})
	require.Error(t, err)
	var httpErr *HTTPStatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestGetAccountFallsBackFromBrokenRPC(t *testing.T) {
	restSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"account": "0.0.7", "balance": {"balance": "1"}}`))
	}))
	defer restSrv.Close()

	rpcSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}))
	defer rpcSrv.Close()

	c := NewClient(restSrv.URL+"/api/v1", rpcSrv.URL, nil)
	got, err := c.GetAccount(context.Background(), ids.EntityID{Shard: 0, Realm: 0, Num: 7})
	require.NoError(t, err)
	assert.Equal(t, "0.0.7", got.AccountID)
	assert.True(t, c.hasFallenBack(featureAccount))
}
