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

func TestGetTokenNftReadsSerial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tokens/0.0.9001/nfts/7", r.URL.Path)
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"token_id": "0.0.9001",
			"serial_number": 7,
			"account_id": "0.0.4444",
			"metadata": "aGVsbG8=",
			"created_timestamp": "1700000000.000000001"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1", "", nil)
	got, err := c.GetTokenNft(context.Background(), ids.EntityID{Shard: 0, Realm: 0, Num: 9001}, 7)
	require.NoError(t, err)
	assert.Equal(t, "0.0.4444", got.AccountID)
	assert.EqualValues(t, 7, got.SerialNumber)
}
