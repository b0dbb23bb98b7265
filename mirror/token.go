package mirror

import (
	"context"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/query"
	"github.com/distledger/ledger-go/transport"
)

// Token is the decoded `/tokens/{id}` response.
type Token struct {
	TokenID     string     `json:"token_id"`
	Name        string     `json:"name"`
	Symbol      string     `json:"symbol"`
	Decimals    flexUint64 `json:"decimals"`
	TotalSupply flexUint64 `json:"total_supply"`
	Treasury    string     `json:"treasury_account_id"`
	Type        string     `json:"type"`
	SupplyType  string     `json:"supply_type"`
	MaxSupply   flexUint64 `json:"max_supply"`
	Deleted     bool       `json:"deleted"`
}

const (
	featureToken          = "token"
	tokenInfoMethodPath   = "/proto.TokenService/getTokenInfo"
)

// GetToken reads token id's current state, trying RPC parity first (same
// fallback-once-then-REST-forever rule as GetAccount) when an RPC
// endpoint is configured.
func (c *Client) GetToken(ctx context.Context, id ids.EntityID) (Token, error) {
	return readWithParity(ctx, c, featureToken,
		func(ctx context.Context) (Token, error) {
			return c.getTokenRPC(ctx, id)
		},
		func(ctx context.Context) (Token, error) {
			return c.getTokenREST(ctx, id)
		},
	)
}

func (c *Client) getTokenREST(ctx context.Context, id ids.EntityID) (Token, error) {
	url := buildURL(c.BaseURL, "/tokens/"+id.String(), nil)
	var out Token
	if err := getJSON(ctx, c, "token", url, &out); err != nil {
		return Token{}, err
	}
	return out, nil
}

func (c *Client) getTokenRPC(ctx context.Context, id ids.EntityID) (Token, error) {
	if c.RPCEndpoint == "" {
		return Token{}, errRPCUnconfigured
	}
	reqBytes := query.EncodeTokenInfoQuery(id)
	respBytes, err := transport.Unary(ctx, c.HTTPClient, c.RPCEndpoint, tokenInfoMethodPath, reqBytes, c.Stats, transport.UnaryOptions{})
	if err != nil {
		return Token{}, err
	}
	info, err := query.DecodeTokenInfoResponse(respBytes)
	if err != nil {
		return Token{}, err
	}
	return tokenFromInfo(info), nil
}

func tokenFromInfo(info query.TokenInfo) Token {
	out := Token{
		TokenID:     info.TokenID.String(),
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    flexUint64(info.Decimals),
		TotalSupply: flexUint64(info.TotalSupply),
		Treasury:    info.Treasury.String(),
		MaxSupply:   flexUint64(info.MaxSupply),
		Deleted:     info.Deleted,
	}
	if info.TokenType == query.TokenTypeNonFungibleUnique {
		out.Type = "NON_FUNGIBLE_UNIQUE"
	} else {
		out.Type = "FUNGIBLE_COMMON"
	}
	if info.SupplyType == query.SupplyTypeFinite {
		out.SupplyType = "FINITE"
	} else {
		out.SupplyType = "INFINITE"
	}
	return out
}
