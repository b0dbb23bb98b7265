package mirror

import (
	"context"

	"github.com/distledger/ledger-go/ids"
)

// TokenAllowancePage is one page of `/accounts/{id}/allowances/tokens`.
type TokenAllowancePage struct {
	Allowances []TokenAllowance `json:"allowances"`
	Links      pageLinks        `json:"links"`
}

type TokenAllowance struct {
	Owner   string     `json:"owner"`
	Spender string     `json:"spender"`
	TokenID string     `json:"token_id"`
	Amount  flexUint64 `json:"amount"`
}

// CryptoAllowancePage is one page of `/accounts/{id}/allowances/crypto`.
type CryptoAllowancePage struct {
	Allowances []CryptoAllowance `json:"allowances"`
	Links      pageLinks         `json:"links"`
}

type CryptoAllowance struct {
	Owner   string     `json:"owner"`
	Spender string     `json:"spender"`
	Amount  flexUint64 `json:"amount"`
}

// NftAllowancePage is one page of `/accounts/{id}/allowances/nfts`.
type NftAllowancePage struct {
	Allowances []NftAllowance `json:"allowances"`
	Links      pageLinks      `json:"links"`
}

type NftAllowance struct {
	Owner          string `json:"owner"`
	Spender        string `json:"spender"`
	TokenID        string `json:"token_id"`
	ApprovedForAll bool   `json:"approved_for_all"`
}

// ListOptions is the shared pagination input: either a cursor from a
// prior page's Links.Next, or filter fields interpreted by the server.
// Exactly one of Cursor or (Limit/TokenID/SpenderID) is normally set.
type ListOptions struct {
	Cursor    string
	Limit     int
	TokenID   string
	SpenderID string
}

// GetAccountTokenAllowances reads one page of id's granted token
// allowances. REST-only: allowance reads have no RPC-parity wire shape
// named by the spec.
func (c *Client) GetAccountTokenAllowances(ctx context.Context, id ids.EntityID, opts ListOptions) (TokenAllowancePage, error) {
	url := c.allowancesURL(id, "tokens", opts)
	var out TokenAllowancePage
	if err := getJSON(ctx, c, "account-token-allowances", url, &out); err != nil {
		return TokenAllowancePage{}, err
	}
	return out, nil
}

// GetAccountCryptoAllowances reads one page of id's granted hbar
// allowances.
func (c *Client) GetAccountCryptoAllowances(ctx context.Context, id ids.EntityID, opts ListOptions) (CryptoAllowancePage, error) {
	url := c.allowancesURL(id, "crypto", opts)
	var out CryptoAllowancePage
	if err := getJSON(ctx, c, "account-crypto-allowances", url, &out); err != nil {
		return CryptoAllowancePage{}, err
	}
	return out, nil
}

// GetAccountNftAllowances reads one page of id's granted NFT allowances.
func (c *Client) GetAccountNftAllowances(ctx context.Context, id ids.EntityID, opts ListOptions) (NftAllowancePage, error) {
	url := c.allowancesURL(id, "nfts", opts)
	var out NftAllowancePage
	if err := getJSON(ctx, c, "account-nft-allowances", url, &out); err != nil {
		return NftAllowancePage{}, err
	}
	return out, nil
}

func (c *Client) allowancesURL(id ids.EntityID, kind string, opts ListOptions) string {
	if opts.Cursor != "" {
		return resolveNext(c.BaseURL, opts.Cursor)
	}
	path := "/accounts/" + id.String() + "/allowances/" + kind
	query := []queryParam{}
	if v := fmtLimit(opts.Limit); v != "" {
		query = append(query, queryParam{Key: "limit", Value: v})
	}
	if opts.TokenID != "" {
		query = append(query, queryParam{Key: "token.id", Value: opts.TokenID})
	}
	if opts.SpenderID != "" {
		query = append(query, queryParam{Key: "spender.id", Value: opts.SpenderID})
	}
	return buildURL(c.BaseURL, path, query)
}
