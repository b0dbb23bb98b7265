package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/query"
	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapQueryResponse(outerField int, build func(*wire.Writer)) []byte {
	w := wire.NewWriter()
	w.WriteMessage(outerField, func(wrapper *wire.Writer) {
		wrapper.WriteMessage(2, build)
	})
	return w.Bytes()
}

func TestGetTokenRESTOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tokens/0.0.9001", r.URL.Path)
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{
			"token_id": "0.0.9001",
			"name": "Example",
			"symbol": "EX",
			"decimals": "2",
			"total_supply": "100000",
			"treasury_account_id": "0.0.2",
			"type": "FUNGIBLE_COMMON",
			"supply_type": "FINITE",
			"max_supply": "1000000",
			"deleted": false
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1", "", nil)
	got, err := c.GetToken(context.Background(), ids.EntityID{Shard: 0, Realm: 0, Num: 9001})
	require.NoError(t, err)
	assert.Equal(t, "0.0.9001", got.TokenID)
	assert.Equal(t, "EX", got.Symbol)
	assert.EqualValues(t, 2, got.Decimals)
}

func TestGetTokenRPCSucceedsWithoutFallback(t *testing.T) {
	tokenID := ids.EntityID{Shard: 0, Realm: 0, Num: 9002}
	treasury := ids.EntityID{Shard: 0, Realm: 0, Num: 2}

	respBytes := wrapQueryResponse(query.FieldTokenInfo, func(inner *wire.Writer) {
		tokenID.WriteTo(inner, 1)
		inner.WriteBytes(2, []byte("Example Two"))
		inner.WriteBytes(3, []byte("EX2"))
		inner.WriteUvarint(4, 0)
		inner.WriteUvarint(5, 500)
		treasury.WriteTo(inner, 6)
		inner.WriteUvarint(7, 0)
		inner.WriteUvarint(8, 1)
		inner.WriteUvarint(9, 1000)
		inner.WriteBool(10, false)
	})

	rpcSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/grpc-web+proto")
		w.Write(wire.EncodeDataFrame(respBytes))
	}))
	defer rpcSrv.Close()

	restCalls := 0
	restSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restCalls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer restSrv.Close()

	c := NewClient(restSrv.URL+"/api/v1", rpcSrv.URL, nil)
	got, err := c.GetToken(context.Background(), tokenID)
	require.NoError(t, err)
	assert.Equal(t, "Example Two", got.Name)
	assert.Equal(t, "FUNGIBLE_COMMON", got.Type)
	assert.Equal(t, "FINITE", got.SupplyType)
	assert.Equal(t, 0, restCalls)
	assert.False(t, c.hasFallenBack(featureToken))
}
